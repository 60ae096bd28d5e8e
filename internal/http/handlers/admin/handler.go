package admin

import (
	handlershared "github.com/dujiao-next/cardshop-admin/internal/http/handlers/shared"
	"github.com/dujiao-next/cardshop-admin/internal/http/response"
	"github.com/dujiao-next/cardshop-admin/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 管理端 API，所有依赖来自 provider 容器
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// currentAdmin 取当前管理员，缺失时已写出 401
func currentAdmin(c *gin.Context) (handlershared.AdminIdentity, bool) {
	identity, ok := handlershared.CurrentAdmin(c)
	if !ok {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	}
	return identity, ok
}
