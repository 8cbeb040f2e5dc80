package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sitemaint/internal/handler"
	"github.com/sitemaint/internal/view"
)

const sessionName = "sitemaint_session"

// SetupRouter 配置 Gin 引擎和路由，是中间件与处理器唯一的装配点。
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.SetHTMLTemplate(view.MustTemplates())

	r.GET("/healthz", api.HealthCheck)

	// 后台管理路由，不受维护跳转影响
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(handler.AuthRequired(), handler.AdminRequired())
		{
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/maintenance", api.GetMaintenanceSettings)
				apiGroup.PUT("/maintenance", api.UpdateMaintenanceSettings)
				apiGroup.POST("/maintenance/provision", api.ProvisionMaintenance)
				apiGroup.GET("/pages", api.ListPages)
			}
		}
	}

	// 前台路由，先判断维护跳转再渲染页面
	public := r.Group("")
	public.Use(api.LocaleMiddleware(), api.MaintenanceRedirect())
	{
		public.GET("/", api.ShowHome)
		public.GET("/:slug", api.ShowPage)
	}
	r.NoRoute(api.LocaleMiddleware(), api.MaintenanceRedirect(), api.ShowNotFound)

	return r
}
