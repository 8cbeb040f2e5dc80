package service

import (
	"errors"
	"testing"

	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/maintenance"
)

func TestGetBySlugMissing(t *testing.T) {
	gdb := setupServiceTestDB(t)

	if _, err := NewPageService(gdb).GetBySlug("about"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	if _, err := NewPageService(gdb).GetTemplate("page"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestListPagesLabelsMaintenancePage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	seed := []db.Page{
		{Slug: "about", Title: "About", Status: maintenance.StatusPublish},
		{Slug: maintenance.PageSlug, Title: "Maintenance", Status: maintenance.StatusPublish, TemplateSlug: maintenance.TemplateSlug},
	}
	if err := gdb.Create(&seed).Error; err != nil {
		t.Fatalf("seed pages: %v", err)
	}

	items, err := NewPageService(gdb).ListPages()
	if err != nil {
		t.Fatalf("ListPages returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(items))
	}

	about, maint := items[0], items[1]
	if about.Slug != "about" || len(about.States) != 0 || about.TemplateTitle != defaultTemplateTitle {
		t.Fatalf("unexpected about item %+v", about)
	}
	if maint.Slug != maintenance.PageSlug {
		t.Fatalf("unexpected ordering %+v", items)
	}
	if len(maint.States) != 1 || maint.States[0] != maintenance.PageStateLabel {
		t.Fatalf("expected maintenance label, got %v", maint.States)
	}
	if maint.TemplateTitle != maintenance.TemplateTitle {
		t.Fatalf("expected maintenance template title, got %q", maint.TemplateTitle)
	}
}

func TestEnsureReferenceLayout(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPageService(gdb)

	if _, err := svc.EnsureReferenceLayout("  ", "theme"); !errors.Is(err, ErrPageContentMissing) {
		t.Fatalf("expected ErrPageContentMissing, got %v", err)
	}

	created, err := svc.EnsureReferenceLayout("<!-- wp:post-content /-->", "theme")
	if err != nil || !created {
		t.Fatalf("expected layout to be created, got created=%t err=%v", created, err)
	}

	created, err = svc.EnsureReferenceLayout("<main/>", "theme")
	if err != nil || created {
		t.Fatalf("expected existing layout to be kept, got created=%t err=%v", created, err)
	}

	tmpl, err := svc.GetTemplate(maintenance.ReferenceTemplateSlug)
	if err != nil {
		t.Fatalf("GetTemplate returned error: %v", err)
	}
	if tmpl.Content != "<!-- wp:post-content /-->" {
		t.Fatalf("reference layout was overwritten: %s", tmpl.Content)
	}
}
