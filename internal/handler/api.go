package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitemaint/internal/maintenance"
	"github.com/sitemaint/internal/service"
	"gorm.io/gorm"
)

// Options carries site-level values the handlers need.
type Options struct {
	SiteBaseURL string
	HomeURL     string
	Language    string
	Theme       string
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	pages       *service.PageService
	settings    *service.MaintenanceSettingService
	content     maintenance.ContentRepository
	guard       *maintenance.Guard
	provisioner *maintenance.Provisioner
	baseURL     string
	language    string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, opts Options) *API {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.SiteBaseURL), "/")
	settings := service.NewMaintenanceSettingService(db, opts.Language)
	content := service.NewContentStore(db, baseURL)

	return &API{
		db:          db,
		pages:       service.NewPageService(db),
		settings:    settings,
		content:     content,
		guard:       maintenance.NewGuard(settings.Store(), content, opts.HomeURL, settings.DefaultMessage()),
		provisioner: maintenance.NewProvisioner(content, service.MaintenancePageTitle(opts.Language), opts.Theme),
		baseURL:     baseURL,
		language:    opts.Language,
	}
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["htmlLang"]; !exists {
		payload["htmlLang"] = a.requestLocale(c).HTMLLang
	}
	c.HTML(status, template, payload)
}
