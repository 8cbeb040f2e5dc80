package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitemaint/internal/maintenance"
	"github.com/sitemaint/internal/service"
)

// MaintenanceRedirect 在公开路由上执行维护模式跳转。发生跳转时中止后续处理，页面不会被渲染。
func (a *API) MaintenanceRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/admin/") {
			c.Next()
			return
		}

		decision, err := a.guard.Check(requestSlug(c), isPrivileged(c))
		if err != nil {
			log.Printf("[MAINTENANCE] configuration unavailable for %s: %v", c.Request.URL.Path, err)
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}

		if decision.Action.IsRedirect() {
			c.Header("Cache-Control", "no-store")
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestSlug 返回当前请求对应的页面 slug，维护判断与页面查询共用同一个值。
// 未匹配路由没有 slug 参数，使用去掉首尾斜杠的路径。
func requestSlug(c *gin.Context) string {
	if slug := c.Param("slug"); slug != "" {
		return strings.TrimSpace(slug)
	}
	return strings.TrimSpace(strings.Trim(c.Request.URL.Path, "/"))
}

type maintenanceSettingsRequest struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

// GetMaintenanceSettings 返回维护设置、后台提示以及模板编辑地址。
func (a *API) GetMaintenanceSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Impossible de charger les réglages de maintenance")
		return
	}

	c.JSON(http.StatusOK, a.maintenancePayload(settings))
}

// UpdateMaintenanceSettings 保存维护设置。
func (a *API) UpdateMaintenanceSettings(c *gin.Context) {
	var payload maintenanceSettingsRequest
	if !bindJSON(c, &payload, "Réglages de maintenance invalides") {
		return
	}

	settings, err := a.settings.UpdateSettings(service.MaintenanceSettingsInput{
		Enabled: payload.Enabled,
		Message: payload.Message,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Impossible d'enregistrer les réglages de maintenance")
		return
	}

	body := a.maintenancePayload(settings)
	body["message"] = "Réglages enregistrés"
	c.JSON(http.StatusOK, body)
}

// ProvisionMaintenance 重新执行激活流程，可重复调用。
func (a *API) ProvisionMaintenance(c *gin.Context) {
	if err := a.provisioner.Provision(); err != nil {
		log.Printf("[ACTIVATE] provisioning failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, maintenance.ErrRepositoryUnavailable) {
			status = http.StatusServiceUnavailable
		}
		respondError(c, status, "Échec de la création de la page de maintenance")
		return
	}

	page, err := a.pages.GetBySlug(maintenance.PageSlug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Page de maintenance introuvable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Page de maintenance prête",
		"page": gin.H{
			"id":           page.ID,
			"slug":         page.Slug,
			"templateSlug": page.TemplateSlug,
		},
		"templateEditUrl": a.templateEditURL(page.ID),
	})
}

// ListPages 返回后台页面列表，维护页带有特殊标签。
func (a *API) ListPages(c *gin.Context) {
	items, err := a.pages.ListPages()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Impossible de charger les pages")
		return
	}

	pages := make([]gin.H, 0, len(items))
	for _, item := range items {
		states := item.States
		if states == nil {
			states = []string{}
		}
		pages = append(pages, gin.H{
			"id":            item.ID,
			"slug":          item.Slug,
			"title":         item.Title,
			"status":        item.Status,
			"templateSlug":  item.TemplateSlug,
			"templateTitle": item.TemplateTitle,
			"states":        states,
		})
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (a *API) maintenancePayload(settings service.MaintenanceSettings) gin.H {
	body := gin.H{
		"settings": gin.H{
			"enabled": settings.Enabled,
			"message": settings.Message,
		},
		"notice": maintenance.Notice(maintenance.Config{Enabled: settings.Enabled, Message: settings.Message}),
	}

	page, err := a.pages.GetBySlug(maintenance.PageSlug)
	switch {
	case err == nil:
		body["templateEditUrl"] = a.templateEditURL(page.ID)
	case !errors.Is(err, service.ErrPageNotFound):
		log.Printf("[MAINTENANCE] lookup of %q failed: %v", maintenance.PageSlug, err)
	}
	return body
}

func (a *API) templateEditURL(pageID uint) string {
	return fmt.Sprintf("%s/admin/site-editor?postId=%d&postType=page", a.baseURL, pageID)
}
