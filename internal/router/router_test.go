package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitemaint/internal/db"
	"github.com/sitemaint/internal/handler"
	"github.com/sitemaint/internal/maintenance"
	"github.com/sitemaint/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouterTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
		db.DB = nil
	})

	db.DB = gdb
	if err := db.EnsureUser("admin", "s3cret"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	api := handler.NewAPI(gdb, handler.Options{
		SiteBaseURL: "https://example.com",
		HomeURL:     "https://example.com/",
		Language:    "fr",
		Theme:       "twentytwentyfour",
	})
	return SetupRouter(api, "test-secret"), gdb
}

func provision(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	store := service.NewContentStore(gdb, "https://example.com")
	if err := maintenance.NewProvisioner(store, "Maintenance", "twentytwentyfour").Provision(); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if err := gdb.Create(&db.Page{Slug: "home", Title: "Accueil", Content: "# Bonjour", Status: maintenance.StatusPublish}).Error; err != nil {
		t.Fatalf("seed home page: %v", err)
	}
}

func setMaintenance(t *testing.T, gdb *gorm.DB, enabled bool, message string) {
	t.Helper()
	svc := service.NewMaintenanceSettingService(gdb, "fr")
	if _, err := svc.UpdateSettings(service.MaintenanceSettingsInput{Enabled: enabled, Message: message}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
}

func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {"s3cret"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d: %s", rr.Code, rr.Body.String())
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	return cookies
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestVisitorRedirectedToMaintenancePage(t *testing.T) {
	r, gdb := setupRouterTest(t)
	provision(t, gdb)
	setMaintenance(t, gdb, true, "Back soon")

	rr := get(r, "/home", nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://example.com/maintenance" {
		t.Fatalf("unexpected location %q", loc)
	}
	if strings.Contains(rr.Body.String(), "Bonjour") {
		t.Fatal("redirect response must not contain the page render")
	}

	front := get(r, "/", nil)
	if front.Code != http.StatusFound {
		t.Fatalf("expected front page redirect, got %d", front.Code)
	}
}

func TestMaintenancePageShowsMessage(t *testing.T) {
	r, gdb := setupRouterTest(t)
	provision(t, gdb)
	setMaintenance(t, gdb, true, "Back soon")

	rr := get(r, "/maintenance", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<p>Back soon</p>") {
		t.Fatalf("expected message in body, got %s", body)
	}
	if strings.Contains(body, maintenance.Placeholder) {
		t.Fatalf("placeholder left unsubstituted: %s", body)
	}
}

func TestMaintenancePageRedirectsHomeWhenDisabled(t *testing.T) {
	r, gdb := setupRouterTest(t)
	provision(t, gdb)

	rr := get(r, "/maintenance", nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://example.com/" {
		t.Fatalf("unexpected location %q", loc)
	}

	home := get(r, "/home", nil)
	if home.Code != http.StatusOK || !strings.Contains(home.Body.String(), "Bonjour") {
		t.Fatalf("expected home page to render, got %d", home.Code)
	}
}

func TestEnabledWithoutMaintenancePageServesSite(t *testing.T) {
	r, gdb := setupRouterTest(t)
	if err := gdb.Create(&db.Page{Slug: "home", Title: "Accueil", Content: "Bonjour", Status: maintenance.StatusPublish}).Error; err != nil {
		t.Fatalf("seed home page: %v", err)
	}
	setMaintenance(t, gdb, true, "")

	rr := get(r, "/home", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200, got %d", rr.Code)
	}
}

func TestAdministratorBrowsesDuringMaintenance(t *testing.T) {
	r, gdb := setupRouterTest(t)
	provision(t, gdb)
	setMaintenance(t, gdb, true, "Back soon")
	cookies := login(t, r)

	if rr := get(r, "/home", cookies); rr.Code != http.StatusOK {
		t.Fatalf("expected administrator to see home page, got %d", rr.Code)
	}

	setMaintenance(t, gdb, false, "")
	if rr := get(r, "/maintenance", cookies); rr.Code != http.StatusOK {
		t.Fatalf("expected administrator to see maintenance page, got %d", rr.Code)
	}
}

func TestAdminAPIRequiresSession(t *testing.T) {
	r, _ := setupRouterTest(t)

	rr := get(r, "/admin/api/maintenance", nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect to login, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("unexpected location %q", loc)
	}

	if login := get(r, "/admin/login", nil); login.Code != http.StatusOK {
		t.Fatalf("expected login page, got %d", login.Code)
	}
}

func TestAdminRoutesIgnoreMaintenance(t *testing.T) {
	r, gdb := setupRouterTest(t)
	provision(t, gdb)
	setMaintenance(t, gdb, true, "Back soon")

	if rr := get(r, "/admin/login", nil); rr.Code != http.StatusOK {
		t.Fatalf("expected login page during maintenance, got %d", rr.Code)
	}
	if rr := get(r, "/healthz", nil); rr.Code != http.StatusOK {
		t.Fatalf("expected health check during maintenance, got %d", rr.Code)
	}
}

func TestPaddedMaintenanceSlugRedirectsHomeWhenDisabled(t *testing.T) {
	r, gdb := setupRouterTest(t)
	provision(t, gdb)

	rr := get(r, "/maintenance%20", nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d: %s", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "https://example.com/" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestUnmatchedRoutesRedirectDuringMaintenance(t *testing.T) {
	r, gdb := setupRouterTest(t)
	provision(t, gdb)
	setMaintenance(t, gdb, true, "Back soon")

	for _, path := range []string{"/a/b", "/blog/post"} {
		rr := get(r, path, nil)
		if rr.Code != http.StatusFound {
			t.Fatalf("%s: expected status 302, got %d", path, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "https://example.com/maintenance" {
			t.Fatalf("%s: unexpected location %q", path, loc)
		}
	}

	if rr := get(r, "/admin/unknown", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected admin paths to skip maintenance, got %d", rr.Code)
	}
}

func TestUnmatchedRoutesNotFoundWhenDisabled(t *testing.T) {
	r, gdb := setupRouterTest(t)
	provision(t, gdb)

	rr := get(r, "/a/b", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Page introuvable") {
		t.Fatalf("expected not found page, got %s", rr.Body.String())
	}
}
