package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const orderViewVersionKey = "admin:orders:version"

// OrderViewStore 管理端订单列表缓存，通过版本号整体失效
type OrderViewStore struct {
	ttl time.Duration
}

// NewOrderViewStore 创建订单列表缓存，ttl <= 0 时仅保留失效能力
func NewOrderViewStore(ttl time.Duration) *OrderViewStore {
	return &OrderViewStore{ttl: ttl}
}

// Enabled 是否启用列表缓存
func (s *OrderViewStore) Enabled() bool {
	return s != nil && s.ttl > 0 && Enabled()
}

// Version 读取当前列表缓存版本
func (s *OrderViewStore) Version(ctx context.Context) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	return GetInt64(ctx, orderViewVersionKey)
}

// Get 读取指定版本下的列表缓存
func (s *OrderViewStore) Get(ctx context.Context, version int64, fingerprint string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	return GetJSON(ctx, orderViewKey(version, fingerprint), dest)
}

// Set 写入指定版本下的列表缓存
func (s *OrderViewStore) Set(ctx context.Context, version int64, fingerprint string, value interface{}) error {
	if !s.Enabled() {
		return nil
	}
	return SetJSON(ctx, orderViewKey(version, fingerprint), value, s.ttl)
}

// Invalidate 使所有已缓存的订单列表失效，旧版本 key 依赖 TTL 自然过期
func (s *OrderViewStore) Invalidate(ctx context.Context) error {
	if !Enabled() {
		return nil
	}
	_, err := Incr(ctx, orderViewVersionKey)
	return err
}

func orderViewKey(version int64, fingerprint string) string {
	return fmt.Sprintf("admin:orders:v%d:%s", version, strings.TrimSpace(fingerprint))
}
