package router

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/authz"
	"github.com/dujiao-next/cardshop-admin/internal/config"
	handlershared "github.com/dujiao-next/cardshop-admin/internal/http/handlers/shared"
	"github.com/dujiao-next/cardshop-admin/internal/http/response"
	"github.com/dujiao-next/cardshop-admin/internal/i18n"
	"github.com/dujiao-next/cardshop-admin/internal/logger"
	"github.com/dujiao-next/cardshop-admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey           = handlershared.RequestIDKey
	requestIDHeader        = "X-Request-ID"
	adminIsSuperContextKey = handlershared.AdminIsSuperKey
	adminIDContextKey      = handlershared.AdminIDKey
)

var defaultCORSHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Accept-Encoding",
	"Accept-Language",
	"Authorization",
	"Cache-Control",
	"X-Requested-With",
	"X-Locale",
	requestIDHeader,
}

// CORSMiddleware 跨域中间件，预检请求直接返回 204
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}
	methodsHeader := strings.Join(methods, ", ")
	headersHeader := strings.Join(headers, ", ")
	maxAge := ""
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(cfg.MaxAge)
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		if allowed := resolveAllowedOrigin(c.GetHeader("Origin"), origins, cfg.AllowCredentials); allowed != "" {
			h.Set("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				h.Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		h.Set("Access-Control-Allow-Headers", headersHeader)
		h.Set("Access-Control-Allow-Methods", methodsHeader)
		h.Set("Access-Control-Expose-Headers", requestIDHeader)
		if maxAge != "" {
			h.Set("Access-Control-Max-Age", maxAge)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// resolveAllowedOrigin 通配且允许凭证时回显请求来源，浏览器不接受 * 搭配凭证
func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	wildcard := false
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			wildcard = true
			continue
		}
		if origin != "" && strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	if !wildcard {
		return ""
	}
	if allowCredentials && origin != "" {
		return origin
	}
	return "*"
}

// RequestIDMiddleware 透传或生成请求 ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化访问日志，已鉴权请求附带管理员 ID
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if adminID, ok := adminIDFrom(c); ok {
			fields = append(fields, "admin_id", adminID)
		}
		if len(c.Errors) > 0 {
			sugar.Errorw("request", append(fields, "errors", c.Errors.String())...)
			return
		}
		sugar.Infow("request", fields...)
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func adminIDFrom(c *gin.Context) (uint, bool) {
	identity, ok := handlershared.CurrentAdmin(c)
	return identity.ID, ok
}

// JWTAuthMiddleware 管理员 JWT 鉴权中间件，通过后把管理员身份写入请求 context
func JWTAuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.ResolveLocale(c)
		if authService == nil || !authService.HasSecret() {
			response.Unauthorized(c, i18n.T(locale, "error.jwt_secret_missing"))
			c.Abort()
			return
		}
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Unauthorized(c, i18n.T(locale, "error.auth_header_missing"))
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			response.Unauthorized(c, i18n.T(locale, "error.auth_header_invalid"))
			c.Abort()
			return
		}

		claims, err := authService.ParseJWT(strings.TrimSpace(parts[1]))
		if err != nil || claims.AdminID == 0 {
			response.Unauthorized(c, i18n.T(locale, "error.token_invalid"))
			c.Abort()
			return
		}

		state, err := authService.ResolveAuthState(c.Request.Context(), claims.AdminID)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				logger.Errorw("admin_auth_state_resolve_failed", "admin_id", claims.AdminID, "error", err)
			}
			response.Unauthorized(c, i18n.T(locale, "error.token_invalid"))
			c.Abort()
			return
		}
		if claims.TokenVersion != state.TokenVersion {
			response.Unauthorized(c, i18n.T(locale, "error.token_revoked"))
			c.Abort()
			return
		}

		handlershared.SetCurrentAdmin(c, handlershared.AdminIdentity{
			ID:       claims.AdminID,
			Username: state.Username,
			IsSuper:  state.IsSuper,
		})
		c.Request = c.Request.WithContext(service.WithAdmin(c.Request.Context(), service.AdminPrincipal{
			AdminID:  claims.AdminID,
			Username: state.Username,
		}))
		c.Next()
	}
}

// AdminRBACMiddleware 按路由模板与方法做 casbin 授权，超级管理员直接放行
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.ResolveLocale(c)
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			response.Unauthorized(c, i18n.T(locale, "error.unauthorized"))
			c.Abort()
			return
		}
		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}
		adminID, ok := adminIDFrom(c)
		if !ok {
			response.Unauthorized(c, i18n.T(locale, "error.unauthorized"))
			c.Abort()
			return
		}

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceAdmin(adminID, route, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"route", route,
				"error", err,
			)
			response.Unauthorized(c, i18n.T(locale, "error.unauthorized"))
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(route),
			)
			response.Forbidden(c, i18n.T(locale, "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}
