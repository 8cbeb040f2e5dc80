package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/maintenance"
	"gorm.io/gorm"
)

var (
	ErrUnknownKind      = errors.New("unknown content kind")
	ErrUnknownAttribute = errors.New("unknown content attribute")
	ErrContentNotFound  = errors.New("content not found")
)

var attributeColumns = map[string]string{
	maintenance.AttrTitle:    "title",
	maintenance.AttrContent:  "content",
	maintenance.AttrStatus:   "status",
	maintenance.AttrTemplate: "template_slug",
}

// ContentStore implements maintenance.ContentRepository on top of the pages and
// templates tables.
type ContentStore struct {
	db      *gorm.DB
	baseURL string
}

// NewContentStore returns a ContentStore. baseURL prefixes page permalinks.
func NewContentStore(gdb *gorm.DB, baseURL string) *ContentStore {
	return &ContentStore{db: gdb, baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// FindBySlug returns nil without error when no entity matches.
func (s *ContentStore) FindBySlug(slug string, kind maintenance.Kind) (*maintenance.Entity, error) {
	switch kind {
	case maintenance.KindPage:
		var page db.Page
		if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		entity := pageEntity(page)
		return &entity, nil
	case maintenance.KindTemplate:
		var tmpl db.Template
		if err := s.db.Where("slug = ?", slug).First(&tmpl).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		entity := templateEntity(tmpl)
		return &entity, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// Create inserts a page or template and returns its id.
func (s *ContentStore) Create(entity maintenance.Entity) (uint, error) {
	switch entity.Kind {
	case maintenance.KindPage:
		page := db.Page{
			Slug:         entity.Slug,
			Title:        entity.Title,
			Content:      entity.Content,
			Status:       entity.Status,
			TemplateSlug: entity.TemplateSlug,
		}
		if err := s.db.Create(&page).Error; err != nil {
			return 0, err
		}
		return page.ID, nil
	case maintenance.KindTemplate:
		tmpl := db.Template{
			Slug:    entity.Slug,
			Title:   entity.Title,
			Content: entity.Content,
			Excerpt: entity.Excerpt,
			Status:  entity.Status,
			GUID:    entity.GUID,
			Theme:   entity.Theme,
		}
		if err := s.db.Create(&tmpl).Error; err != nil {
			return 0, err
		}
		return tmpl.ID, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownKind, entity.Kind)
	}
}

// SetAttribute updates one whitelisted attribute of a page or template.
func (s *ContentStore) SetAttribute(kind maintenance.Kind, id uint, key, value string) error {
	column, ok := attributeColumns[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, key)
	}

	var model interface{}
	switch kind {
	case maintenance.KindPage:
		model = &db.Page{}
	case maintenance.KindTemplate:
		if key == maintenance.AttrTemplate {
			return fmt.Errorf("%w: %s on %s", ErrUnknownAttribute, key, kind)
		}
		model = &db.Template{}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	result := s.db.Model(model).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", ErrContentNotFound, kind, id)
	}
	return nil
}

// Permalink returns the public URL of a page, or the site editor URL of a template.
func (s *ContentStore) Permalink(kind maintenance.Kind, id uint) (string, error) {
	switch kind {
	case maintenance.KindPage:
		var page db.Page
		if err := s.db.Select("id", "slug").First(&page, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("%w: %s %d", ErrContentNotFound, kind, id)
			}
			return "", err
		}
		return s.baseURL + "/" + url.PathEscape(page.Slug), nil
	case maintenance.KindTemplate:
		var tmpl db.Template
		if err := s.db.Select("id", "slug").First(&tmpl, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("%w: %s %d", ErrContentNotFound, kind, id)
			}
			return "", err
		}
		return s.baseURL + "/admin/site-editor?postType=template&slug=" + url.QueryEscape(tmpl.Slug), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

func pageEntity(page db.Page) maintenance.Entity {
	return maintenance.Entity{
		ID:           page.ID,
		Kind:         maintenance.KindPage,
		Slug:         page.Slug,
		Title:        page.Title,
		Content:      page.Content,
		Status:       page.Status,
		TemplateSlug: page.TemplateSlug,
	}
}

func templateEntity(tmpl db.Template) maintenance.Entity {
	return maintenance.Entity{
		ID:      tmpl.ID,
		Kind:    maintenance.KindTemplate,
		Slug:    tmpl.Slug,
		Title:   tmpl.Title,
		Content: tmpl.Content,
		Status:  tmpl.Status,
		Excerpt: tmpl.Excerpt,
		GUID:    tmpl.GUID,
		Theme:   tmpl.Theme,
	}
}
