package shared

import "github.com/gin-gonic/gin"

// 鉴权中间件与处理器共用的 gin 上下文键
const (
	RequestIDKey     = "request_id"
	AdminIDKey       = "admin_id"
	AdminUsernameKey = "username"
	AdminIsSuperKey  = "admin_is_super"
)

// AdminIdentity JWT 中间件写入上下文的管理员身份
type AdminIdentity struct {
	ID       uint
	Username string
	IsSuper  bool
}

// CurrentAdmin 读取当前管理员；ID 缺失或为零时返回 false
func CurrentAdmin(c *gin.Context) (AdminIdentity, bool) {
	if c == nil {
		return AdminIdentity{}, false
	}
	id, ok := c.Get(AdminIDKey)
	if !ok {
		return AdminIdentity{}, false
	}
	adminID, ok := id.(uint)
	if !ok || adminID == 0 {
		return AdminIdentity{}, false
	}
	return AdminIdentity{
		ID:       adminID,
		Username: c.GetString(AdminUsernameKey),
		IsSuper:  c.GetBool(AdminIsSuperKey),
	}, true
}

// SetCurrentAdmin 写入当前管理员
func SetCurrentAdmin(c *gin.Context, identity AdminIdentity) {
	c.Set(AdminIDKey, identity.ID)
	c.Set(AdminUsernameKey, identity.Username)
	c.Set(AdminIsSuperKey, identity.IsSuper)
}
