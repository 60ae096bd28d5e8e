package cache

import (
	"context"
	"testing"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/config"
	"github.com/dujiao-next/cardshop-admin/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	ctx := context.Background()
	store := NewOrderViewStore(time.Minute)
	if store.Enabled() {
		t.Fatalf("order view store should be disabled without redis")
	}
	version, err := store.Version(ctx)
	if err != nil || version != 0 {
		t.Fatalf("want version 0 got %d err=%v", version, err)
	}
	var dest map[string]interface{}
	hit, err := store.Get(ctx, version, "abc", &dest)
	if err != nil || hit {
		t.Fatalf("want cache miss got hit=%v err=%v", hit, err)
	}
	if err := store.Set(ctx, version, "abc", map[string]int{"a": 1}); err != nil {
		t.Fatalf("set on disabled store failed: %v", err)
	}
	if err := store.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate on disabled store failed: %v", err)
	}
	if _, hit, err := LoadAdminAuthState(ctx, 1); hit || err != nil {
		t.Fatalf("auth state should miss on disabled cache")
	}
}

func TestKeysArePrefixed(t *testing.T) {
	redisPrefix = "cs"
	if got := buildKey(orderViewKey(3, " fp ")); got != "cs:admin:orders:v3:fp" {
		t.Fatalf("unexpected order view key: %s", got)
	}
	if got := buildKey(authStateKey(9)); got != "cs:admin_auth:9" {
		t.Fatalf("unexpected auth key: %s", got)
	}
	if got := buildKey("  "); got != "cs" {
		t.Fatalf("blank key should fall back to prefix, got %s", got)
	}
}

func TestAdminAuthStateFrom(t *testing.T) {
	if AdminAuthStateFrom(nil) != nil || AdminAuthStateFrom(&models.Admin{}) != nil {
		t.Fatalf("nil or unsaved admin should build nil state")
	}
	state := AdminAuthStateFrom(&models.Admin{ID: 5, Username: "ops", TokenVersion: 2, IsSuper: true})
	if state.AdminID != 5 || state.TokenVersion != 2 || !state.IsSuper {
		t.Fatalf("unexpected auth state: %+v", state)
	}
}
