package maintenance

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var messagePolicy = bluemonday.UGCPolicy()

// Render substitutes the sanitized message into a template's single placeholder.
// Only the first occurrence is replaced, so text coming from the message is never
// substituted a second time.
func Render(markup, message string) string {
	safe := messagePolicy.Sanitize(strings.TrimSpace(message))
	safe = strings.ReplaceAll(safe, "\r\n", "\n")
	safe = strings.ReplaceAll(safe, "\n", "<br/>")
	return strings.Replace(markup, Placeholder, safe, 1)
}
