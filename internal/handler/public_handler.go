package handler

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/locale"
	"github.com/sitemaint/internal/maintenance"
	"github.com/sitemaint/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const homePageSlug = "home"

// ShowHome renders the front page. A page with slug "home" is used when present.
func (a *API) ShowHome(c *gin.Context) {
	page, err := a.pages.GetBySlug(homePageSlug)
	if err != nil {
		if !errors.Is(err, service.ErrPageNotFound) {
			a.renderError(c, http.StatusInternalServerError, err)
			return
		}
		pref := a.requestLocale(c)
		a.renderHTML(c, http.StatusOK, "page.html", gin.H{
			"slug":  homePageSlug,
			"title": locale.Pick(pref.Language, "Welcome", "Bienvenue"),
			"body":  template.HTML(""),
		})
		return
	}
	a.renderPage(c, page)
}

// ShowPage renders a published page by slug.
func (a *API) ShowPage(c *gin.Context) {
	slug := requestSlug(c)
	page, err := a.pages.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			a.renderNotFound(c, slug)
			return
		}
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	if page.Status != maintenance.StatusPublish && !isPrivileged(c) {
		a.renderNotFound(c, slug)
		return
	}

	if page.Slug == maintenance.PageSlug {
		a.renderMaintenancePage(c, page)
		return
	}
	a.renderPage(c, page)
}

// ShowNotFound answers front-end URLs no route matched.
func (a *API) ShowNotFound(c *gin.Context) {
	a.renderNotFound(c, requestSlug(c))
}

func (a *API) renderNotFound(c *gin.Context, slug string) {
	a.renderHTML(c, http.StatusNotFound, "page.html", gin.H{
		"slug":  slug,
		"title": locale.Pick(a.requestLocale(c).Language, "Page not found", "Page introuvable"),
		"body":  template.HTML(""),
	})
}

func (a *API) renderPage(c *gin.Context, page *db.Page) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(page.Content), &buf); err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "page.html", gin.H{
		"slug":  page.Slug,
		"title": page.Title,
		"body":  template.HTML(sanitizer.SanitizeBytes(buf.Bytes())),
	})
}

func (a *API) renderMaintenancePage(c *gin.Context, page *db.Page) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		a.renderError(c, http.StatusInternalServerError, err)
		return
	}

	markup := maintenance.MinimalLayout
	templateSlug := page.TemplateSlug
	if templateSlug != "" {
		tmpl, err := a.pages.GetTemplate(templateSlug)
		switch {
		case err == nil:
			markup = tmpl.Content
		case errors.Is(err, service.ErrTemplateNotFound):
			log.Printf("[MAINTENANCE] template %q missing, using minimal layout", templateSlug)
		default:
			a.renderError(c, http.StatusInternalServerError, err)
			return
		}
	}

	c.Header("Cache-Control", "no-store")
	a.renderHTML(c, http.StatusOK, "maintenance.html", gin.H{
		"title":        page.Title,
		"templateSlug": templateSlug,
		"body":         template.HTML(maintenance.Render(markup, settings.Message)),
	})
}

func (a *API) renderError(c *gin.Context, status int, err error) {
	c.Error(err)
	log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(status, http.StatusText(status))
}
