package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/maintenance"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound       = errors.New("page not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrPageContentMissing = errors.New("page content is required")
)

// defaultTemplateTitle 是未指定模板的页面在后台列表中显示的名称。
const defaultTemplateTitle = "Default template"

// PageListItem is a page row in the admin listing.
type PageListItem struct {
	ID            uint
	Slug          string
	Title         string
	Status        string
	TemplateSlug  string
	TemplateTitle string
	States        []string
}

// PageService provides access to pages and their display templates.
type PageService struct {
	db *gorm.DB
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetTemplate fetches a display template for a given slug.
func (s *PageService) GetTemplate(slug string) (*db.Template, error) {
	var tmpl db.Template
	if err := s.db.Where("slug = ?", slug).First(&tmpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &tmpl, nil
}

// ListPages returns every page with its admin labels, ordered by slug.
func (s *PageService) ListPages() ([]PageListItem, error) {
	var pages []db.Page
	if err := s.db.Order("slug ASC").Find(&pages).Error; err != nil {
		return nil, err
	}

	titles, err := s.templateTitles()
	if err != nil {
		return nil, err
	}

	items := make([]PageListItem, 0, len(pages))
	for _, page := range pages {
		fallback := defaultTemplateTitle
		if title, ok := titles[page.TemplateSlug]; ok && strings.TrimSpace(title) != "" {
			fallback = title
		}
		items = append(items, PageListItem{
			ID:            page.ID,
			Slug:          page.Slug,
			Title:         page.Title,
			Status:        page.Status,
			TemplateSlug:  page.TemplateSlug,
			TemplateTitle: maintenance.TemplateTitleFor(page.Slug, fallback),
			States:        maintenance.PageStates(page.Slug),
		})
	}
	return items, nil
}

func (s *PageService) templateTitles() (map[string]string, error) {
	var templates []db.Template
	if err := s.db.Select("slug", "title").Find(&templates).Error; err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(templates))
	for _, tmpl := range templates {
		titles[tmpl.Slug] = tmpl.Title
	}
	return titles, nil
}

// EnsureReferenceLayout stores markup as the theme's page layout unless one already
// exists. It reports whether a layout was created.
func (s *PageService) EnsureReferenceLayout(markup, theme string) (bool, error) {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return false, ErrPageContentMissing
	}

	var existing db.Template
	err := s.db.Where("slug = ?", maintenance.ReferenceTemplateSlug).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	tmpl := db.Template{
		Slug:    maintenance.ReferenceTemplateSlug,
		Title:   "Pages",
		Content: trimmed,
		Status:  maintenance.StatusPublish,
		GUID:    uuid.NewString(),
		Theme:   theme,
	}
	if err := s.db.Create(&tmpl).Error; err != nil {
		return false, err
	}
	return true, nil
}
