package router

import (
	"sort"
	"strings"

	"github.com/dujiao-next/cardshop-admin/internal/authz"
	"github.com/dujiao-next/cardshop-admin/internal/http/response"
	"github.com/dujiao-next/cardshop-admin/internal/i18n"
	"github.com/dujiao-next/cardshop-admin/internal/logger"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// PermissionEntry 一条可授权的管理端路由
type PermissionEntry struct {
	Module     string   `json:"module"`
	Method     string   `json:"method"`
	Object     string   `json:"object"`
	Permission string   `json:"permission"`
	Roles      []string `json:"roles"`
}

// permissionCatalogHandler 列出全部需鉴权的管理端路由，附带当前能访问它的角色
func permissionCatalogHandler(engine *gin.Engine, authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries := permissionEntries(engine.Routes())
		for i := range entries {
			roles, err := authzService.RolesGranting(entries[i].Object, entries[i].Method)
			if err != nil {
				logger.Errorw("admin_permission_catalog_roles_failed", "permission", entries[i].Permission, "error", err)
				response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.authz_unavailable"))
				return
			}
			entries[i].Roles = roles
		}
		response.Success(c, entries)
	}
}

func permissionEntries(routes gin.RoutesInfo) []PermissionEntry {
	entries := make([]PermissionEntry, 0, len(routes))
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		if !isGuardedAdminRoute(route.Method, route.Path) {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := route.Method + ":" + object
		if seen[permission] {
			continue
		}
		seen[permission] = true
		entries = append(entries, PermissionEntry{
			Module:     permissionModule(object),
			Method:     route.Method,
			Object:     object,
			Permission: permission,
			Roles:      []string{},
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return entries
}

func isGuardedAdminRoute(method, path string) bool {
	switch method {
	case "", "OPTIONS", "HEAD":
		return false
	}
	return strings.HasPrefix(path, adminRoutePrefix) && path != adminRoutePrefix+"login"
}

// permissionModule /admin/{module}/... 取 module 段
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	switch {
	case segments[0] == "":
		return "system"
	case segments[0] == "admin" && len(segments) > 1:
		return segments[1]
	default:
		return segments[0]
	}
}
