package maintenance

import (
	"regexp"
	"strings"
)

// Placeholder is substituted with the configured message at render time.
const Placeholder = "{{mmfse_message}}"

// MinimalLayout is the layout used when no usable reference layout exists.
const MinimalLayout = "<!-- wp:paragraph --><p>" + Placeholder + "</p><!-- /wp:paragraph -->"

var mainContentMarker = regexp.MustCompile(`(?s)<!-- wp:post-content.*?/-->`)

// Derive builds the maintenance layout from a reference page layout by replacing the
// first main content block with a paragraph holding Placeholder. The result always
// contains exactly one placeholder.
func Derive(referenceMarkup string) string {
	if strings.TrimSpace(referenceMarkup) == "" {
		return MinimalLayout
	}

	loc := mainContentMarker.FindStringIndex(referenceMarkup)
	if loc == nil {
		return MinimalLayout
	}

	derived := referenceMarkup[:loc[0]] + MinimalLayout + referenceMarkup[loc[1]:]
	if CountPlaceholders(derived) != 1 {
		// the reference already carried the token somewhere else
		return MinimalLayout
	}
	return derived
}

// CountPlaceholders returns how many times Placeholder appears in markup.
func CountPlaceholders(markup string) int {
	return strings.Count(markup, Placeholder)
}
