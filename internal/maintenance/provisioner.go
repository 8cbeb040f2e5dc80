package maintenance

import (
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Provisioner creates the maintenance page and template on activation.
type Provisioner struct {
	content   ContentRepository
	pageTitle string
	theme     string
	newGUID   func() string
}

// NewProvisioner returns a Provisioner. pageTitle is the localized title used when the
// page has to be created; theme is recorded on a newly created template.
func NewProvisioner(content ContentRepository, pageTitle, theme string) *Provisioner {
	if pageTitle == "" {
		pageTitle = "Maintenance"
	}
	return &Provisioner{
		content:   content,
		pageTitle: pageTitle,
		theme:     theme,
		newGUID:   uuid.NewString,
	}
}

// Provision ensures the page, ensures the template, then links them. It is safe to run
// repeatedly: existing entities are reused and the link is rewritten to the same value.
func (p *Provisioner) Provision() error {
	pageID, err := p.ensurePage()
	if err != nil {
		return err
	}

	if err := p.ensureTemplate(); err != nil {
		return err
	}

	if err := p.content.SetAttribute(KindPage, pageID, AttrTemplate, TemplateSlug); err != nil {
		return fmt.Errorf("%w: link page %d to %s: %w", ErrRepositoryUnavailable, pageID, TemplateSlug, err)
	}
	return nil
}

func (p *Provisioner) ensurePage() (uint, error) {
	page, err := p.content.FindBySlug(PageSlug, KindPage)
	if err != nil {
		return 0, fmt.Errorf("%w: find page %s: %w", ErrRepositoryUnavailable, PageSlug, err)
	}
	if page != nil {
		return page.ID, nil
	}

	id, err := p.content.Create(Entity{
		Kind:   KindPage,
		Slug:   PageSlug,
		Title:  p.pageTitle,
		Status: StatusPublish,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: create page %s: %w", ErrRepositoryUnavailable, PageSlug, err)
	}
	log.Printf("[ACTIVATE] created maintenance page id=%d", id)
	return id, nil
}

func (p *Provisioner) ensureTemplate() error {
	existing, err := p.content.FindBySlug(TemplateSlug, KindTemplate)
	if err != nil {
		return fmt.Errorf("%w: find template %s: %w", ErrRepositoryUnavailable, TemplateSlug, err)
	}
	if existing != nil {
		return nil
	}

	reference, err := p.content.FindBySlug(ReferenceTemplateSlug, KindTemplate)
	if err != nil {
		return fmt.Errorf("%w: find template %s: %w", ErrRepositoryUnavailable, ReferenceTemplateSlug, err)
	}
	var referenceMarkup string
	if reference != nil {
		referenceMarkup = reference.Content
	}

	markup := Derive(referenceMarkup)
	if n := CountPlaceholders(markup); n != 1 {
		return fmt.Errorf("%w: found %d", ErrTemplateInvariant, n)
	}

	id, err := p.content.Create(Entity{
		Kind:    KindTemplate,
		Slug:    TemplateSlug,
		Title:   TemplateTitle,
		Content: markup,
		Status:  StatusPublish,
		Excerpt: TemplateExcerpt,
		GUID:    p.newGUID(),
		Theme:   p.theme,
	})
	if err != nil {
		return fmt.Errorf("%w: create template %s: %w", ErrRepositoryUnavailable, TemplateSlug, err)
	}
	log.Printf("[ACTIVATE] created maintenance template id=%d derived_from_reference=%t", id, reference != nil)
	return nil
}
