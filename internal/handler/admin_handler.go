package handler

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/locale"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionKeyUserID   = "user_id"
	sessionKeyUsername = "username"
	sessionKeyRole     = "role"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": a.loginTitle(c),
	})
}

// Login 处理用户登录请求
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var user db.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{"title": a.loginTitle(c), "error": "Identifiant ou mot de passe incorrect"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{"title": a.loginTitle(c), "error": "Identifiant ou mot de passe incorrect"})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyUserID, user.ID)
	session.Set(sessionKeyUsername, user.Username)
	session.Set(sessionKeyRole, user.Role)
	if err := session.Save(); err != nil {
		log.Printf("[ERROR] save session for %s: %v", user.Username, err)
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{"title": a.loginTitle(c), "error": "Impossible d'enregistrer la session"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/api/maintenance")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("[ERROR] clear session: %v", err)
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// AuthRequired 要求已登录的会话，否则跳转到登录页。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(sessionKeyUserID)
		if userID == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired 仅允许拥有站点设置权限的用户继续。
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isPrivileged(c) {
			respondError(c, http.StatusForbidden, "Accès réservé aux administrateurs")
			c.Abort()
			return
		}
		c.Next()
	}
}

// isPrivileged 判断当前会话是否为已登录的管理员。
func isPrivileged(c *gin.Context) bool {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return false
	}
	session := sessions.Default(c)
	if session.Get(sessionKeyUserID) == nil {
		return false
	}
	role, _ := session.Get(sessionKeyRole).(string)
	return (db.User{Role: role}).CanManageOptions()
}

func (a *API) loginTitle(c *gin.Context) string {
	return locale.Pick(a.requestLocale(c).Language, "Admin login", "Connexion administrateur")
}
