package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dujiao-next/cardshop-admin/internal/authz"
	"github.com/dujiao-next/cardshop-admin/internal/config"
	"github.com/dujiao-next/cardshop-admin/internal/models"
	"github.com/dujiao-next/cardshop-admin/internal/repository"
	"github.com/dujiao-next/cardshop-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openMiddlewareDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:mw_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp.StatusCode
}

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name        string
		origin      string
		allowed     []string
		credentials bool
		want        string
	}{
		{name: "wildcard", origin: "https://example.com", allowed: []string{"*"}, want: "*"},
		{name: "wildcard with credentials echoes", origin: "https://example.com", allowed: []string{"*"}, credentials: true, want: "https://example.com"},
		{name: "allow-list match", origin: "https://a.example.com", allowed: []string{"https://a.example.com", "https://b.example.com"}, want: "https://a.example.com"},
		{name: "allow-list case insensitive", origin: "https://A.example.com", allowed: []string{"https://a.example.com"}, want: "https://A.example.com"},
		{name: "unmatched", origin: "https://x.example.com", allowed: []string{"https://a.example.com"}, want: ""},
		{name: "no origin", origin: "", allowed: []string{"https://a.example.com"}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveAllowedOrigin(tc.origin, tc.allowed, tc.credentials); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://admin.example.com"}, MaxAge: 600}))
	r.POST("/api/v1/admin/orders/batch-delete", func(c *gin.Context) {
		t.Fatalf("preflight should not reach handler")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/orders/batch-delete", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status want 204 got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
		t.Fatalf("allow origin got %q", got)
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Fatalf("max age got %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
		t.Fatalf("default headers should include Authorization")
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req2.Header.Set(requestIDHeader, strings.Repeat("x", 100))
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" || len(generated) > 64 {
		t.Fatalf("oversized request id should be replaced, got %q", generated)
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware(nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestJWTAuthMiddlewareSetsPrincipalAndRejectsRevoked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openMiddlewareDB(t)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "middleware-secret"
	adminRepo := repository.NewAdminRepository(db)
	auth := service.NewAuthService(cfg, adminRepo)

	admin := &models.Admin{Username: "ops", PasswordHash: "x", TokenVersion: 1}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	token, _, err := auth.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware(auth))
	r.GET("/admin/me", func(c *gin.Context) {
		principal, ok := service.AdminFromContext(c.Request.Context())
		if !ok {
			t.Fatalf("principal missing from request context")
		}
		c.JSON(http.StatusOK, gin.H{"status_code": 0, "admin_id": principal.AdminID, "username": principal.Username})
	})

	call := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	w := call("Bearer " + token)
	if code := decodeStatusCode(t, w); code != 0 {
		t.Fatalf("valid token status_code want 0 got %d", code)
	}
	if !strings.Contains(w.Body.String(), `"username":"ops"`) {
		t.Fatalf("principal username not propagated: %s", w.Body.String())
	}

	if code := decodeStatusCode(t, call("Token "+token)); code != 401 {
		t.Fatalf("malformed header status_code want 401 got %d", code)
	}

	if err := db.Model(&models.Admin{}).Where("id = ?", admin.ID).Update("token_version", 2).Error; err != nil {
		t.Fatalf("bump token version failed: %v", err)
	}
	if code := decodeStatusCode(t, call("Bearer "+token)); code != 401 {
		t.Fatalf("revoked token status_code want 401 got %d", code)
	}
}

func TestAdminRBACMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authzService, err := authz.NewService(openMiddlewareDB(t))
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if _, err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	if err := authzService.SetAdminRoles(7, []string{authz.RoleReadonlyAuditor}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}

	build := func(adminID uint, isSuper bool) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(adminIDContextKey, adminID)
			c.Set(adminIsSuperContextKey, isSuper)
		}, AdminRBACMiddleware(authzService))
		ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status_code": 0}) }
		r.GET("/api/v1/admin/orders", ok)
		r.POST("/api/v1/admin/orders/batch-delete", ok)
		return r
	}
	call := func(r *gin.Engine, method, path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return decodeStatusCode(t, w)
	}

	auditor := build(7, false)
	if code := call(auditor, http.MethodGet, "/api/v1/admin/orders"); code != 0 {
		t.Fatalf("auditor read want 0 got %d", code)
	}
	if code := call(auditor, http.MethodPost, "/api/v1/admin/orders/batch-delete"); code != 403 {
		t.Fatalf("auditor delete want 403 got %d", code)
	}
	if code := call(build(8, false), http.MethodGet, "/api/v1/admin/orders"); code != 403 {
		t.Fatalf("admin without roles want 403 got %d", code)
	}
	if code := call(build(9, true), http.MethodPost, "/api/v1/admin/orders/batch-delete"); code != 0 {
		t.Fatalf("super admin want 0 got %d", code)
	}
	if code := call(build(0, false), http.MethodGet, "/api/v1/admin/orders"); code != 401 {
		t.Fatalf("missing admin id want 401 got %d", code)
	}
}
