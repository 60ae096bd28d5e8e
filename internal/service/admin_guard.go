package service

import (
	"context"
	"fmt"

	"github.com/dujiao-next/cardshop-admin/internal/repository"
)

// AdminPrincipal 当前请求的管理员身份
type AdminPrincipal struct {
	AdminID  uint
	Username string
}

type adminContextKey struct{}

// WithAdmin 将管理员身份写入上下文
func WithAdmin(ctx context.Context, principal AdminPrincipal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, adminContextKey{}, principal)
}

// AdminFromContext 读取上下文中的管理员身份
func AdminFromContext(ctx context.Context) (AdminPrincipal, bool) {
	if ctx == nil {
		return AdminPrincipal{}, false
	}
	principal, ok := ctx.Value(adminContextKey{}).(AdminPrincipal)
	if !ok || principal.AdminID == 0 {
		return AdminPrincipal{}, false
	}
	return principal, true
}

// AdminGuard 管理员校验，每个后台操作入口都需要调用
type AdminGuard interface {
	RequireAdmin(ctx context.Context) (*AdminPrincipal, error)
}

// RepositoryAdminGuard 基于管理员表的校验实现
type RepositoryAdminGuard struct {
	adminRepo repository.AdminRepository
}

// NewAdminGuard 创建管理员校验器
func NewAdminGuard(adminRepo repository.AdminRepository) *RepositoryAdminGuard {
	return &RepositoryAdminGuard{adminRepo: adminRepo}
}

// RequireAdmin 确认上下文中的管理员仍然存在，否则返回 ErrUnauthorized
func (g *RepositoryAdminGuard) RequireAdmin(ctx context.Context) (*AdminPrincipal, error) {
	principal, ok := AdminFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	admin, err := g.adminRepo.GetByID(principal.AdminID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdminFetchFailed, err)
	}
	if admin == nil {
		return nil, ErrUnauthorized
	}
	return &AdminPrincipal{AdminID: admin.ID, Username: admin.Username}, nil
}
