package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/models"
)

// AdminAuthStateTTL 鉴权快照有效期，过期后回源数据库
const AdminAuthStateTTL = 10 * time.Minute

// AdminAuthState JWT 校验所需的管理员快照
type AdminAuthState struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	IsSuper      bool   `json:"is_super"`
	CachedAt     int64  `json:"cached_at"`
}

func authStateKey(adminID uint) string {
	return "admin_auth:" + strconv.FormatUint(uint64(adminID), 10)
}

// AdminAuthStateFrom 由管理员记录生成快照
func AdminAuthStateFrom(admin *models.Admin) *AdminAuthState {
	if admin == nil || admin.ID == 0 {
		return nil
	}
	return &AdminAuthState{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
		CachedAt:     time.Now().Unix(),
	}
}

// LoadAdminAuthState 读取快照，未启用缓存时视为未命中
func LoadAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	if adminID == 0 {
		return nil, false, nil
	}
	state := &AdminAuthState{}
	hit, err := GetJSON(ctx, authStateKey(adminID), state)
	if err != nil || !hit || state.AdminID != adminID {
		return nil, false, err
	}
	return state, true, nil
}

// StoreAdminAuthState 写入快照
func StoreAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(state.AdminID), state, AdminAuthStateTTL)
}
