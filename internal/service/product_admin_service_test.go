package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/models"

	"gorm.io/gorm"
)

func newProductAdminFixture(t *testing.T) (*ProductAdminService, *gorm.DB, *fakeGuard) {
	t.Helper()
	db := setupServiceTestDB(t)
	repos := newTestRepos(db)
	guard := &fakeGuard{}
	return NewProductAdminService(guard, repos.uow, repos.products, repos.cards), db, guard
}

func TestBulkUpdateStatus(t *testing.T) {
	svc, db, _ := newProductAdminFixture(t)
	p1 := createTestProduct(t, db, "A", "a", true)
	p2 := createTestProduct(t, db, "B", "b", true)

	result := svc.BulkUpdateStatus(context.Background(), []uint{p1.ID, p2.ID, p1.ID, 0}, constants.ProductBulkDeactivate)
	if !result.Success || result.Affected != 2 || result.Message != "已下架 2 个商品" {
		t.Fatalf("unexpected result: %+v", result)
	}
	var active int64
	db.Model(&models.Product{}).Where("is_active = ?", true).Count(&active)
	if active != 0 {
		t.Fatalf("want all inactive got %d active", active)
	}

	result = svc.BulkUpdateStatus(context.Background(), []uint{p2.ID}, constants.ProductBulkActivate)
	if !result.Success || result.Message != "已上架 1 个商品" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestBulkUpdateStatusValidation(t *testing.T) {
	svc, _, guard := newProductAdminFixture(t)

	if result := svc.BulkUpdateStatus(context.Background(), []uint{1}, "archive"); result.Success || result.Message != "无效的操作类型" {
		t.Fatalf("unexpected result for bad action: %+v", result)
	}
	if result := svc.BulkUpdateStatus(context.Background(), nil, constants.ProductBulkActivate); result.Success || result.Message != "未选择任何商品" {
		t.Fatalf("unexpected result for empty ids: %+v", result)
	}
	ids := make([]uint, 0, 201)
	for i := 1; i <= 201; i++ {
		ids = append(ids, uint(i))
	}
	if result := svc.BulkUpdateStatus(context.Background(), ids, constants.ProductBulkActivate); result.Success || result.Message != "单次最多操作 200 个商品" {
		t.Fatalf("unexpected result for oversized batch: %+v", result)
	}

	guard.err = ErrUnauthorized
	if result := svc.BulkUpdateStatus(context.Background(), []uint{1}, constants.ProductBulkActivate); result.Success || result.Message != "需要管理员权限" || result.Reason != BulkFailureUnauthorized {
		t.Fatalf("unexpected result for non-admin: %+v", result)
	}
}

func TestBulkDeleteSkipsProductsWithLockedCards(t *testing.T) {
	svc, db, _ := newProductAdminFixture(t)
	free := createTestProduct(t, db, "Free", "free", true)
	busy := createTestProduct(t, db, "Busy", "busy", true)
	createTestCards(t, db, free.ID, constants.CardStatusAvailable, 3)
	createTestCards(t, db, free.ID, constants.CardStatusSold, 1)
	createTestCards(t, db, busy.ID, constants.CardStatusAvailable, 2)
	createTestOrder(t, db, testOrder{ID: "lock-1", Status: constants.OrderStatusPending})
	createTestLockedCard(t, db, busy.ID, "lock-1")

	result := svc.BulkDelete(context.Background(), []uint{free.ID, busy.ID})
	if !result.Success || result.Affected != 1 || len(result.SkippedIDs) != 1 || result.SkippedIDs[0] != busy.ID {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Message != "已删除 1 个商品（跳过 1 个存在锁定卡密的商品）" {
		t.Fatalf("unexpected message: %s", result.Message)
	}

	var remaining int64
	db.Model(&models.Product{}).Where("id = ?", free.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("free product should be soft deleted")
	}
	var softDeleted int64
	db.Unscoped().Model(&models.Product{}).Where("id = ? AND deleted_at IS NOT NULL", free.ID).Count(&softDeleted)
	if softDeleted != 1 {
		t.Fatalf("free product should remain as soft-deleted row")
	}

	var freeCards []models.Card
	db.Where("product_id = ?", free.ID).Find(&freeCards)
	if len(freeCards) != 1 || freeCards[0].Status != constants.CardStatusSold {
		t.Fatalf("only sold cards should remain for deleted product, got %+v", freeCards)
	}
	var busyCards int64
	db.Model(&models.Card{}).Where("product_id = ?", busy.ID).Count(&busyCards)
	if busyCards != 3 {
		t.Fatalf("busy product cards must be untouched, got %d", busyCards)
	}
}

func TestBulkDeleteAllLocked(t *testing.T) {
	svc, db, _ := newProductAdminFixture(t)
	busy := createTestProduct(t, db, "Busy", "busy", true)
	createTestOrder(t, db, testOrder{ID: "lock-2", Status: constants.OrderStatusPending})
	createTestLockedCard(t, db, busy.ID, "lock-2")

	result := svc.BulkDelete(context.Background(), []uint{busy.ID})
	if result.Success || result.Message != "所选商品均存在锁定卡密，无法删除" || result.Reason != BulkFailureAllLocked {
		t.Fatalf("unexpected result: %+v", result)
	}

	result = svc.BulkDelete(context.Background(), []uint{})
	if result.Success || result.Message != "未选择任何商品" {
		t.Fatalf("unexpected result for empty ids: %+v", result)
	}
}

func TestListProductsWithStock(t *testing.T) {
	svc, db, _ := newProductAdminFixture(t)
	stocked := createTestProduct(t, db, "Steam 充值卡", "steam-card", true)
	empty := createTestProduct(t, db, "Netflix 会员", "netflix", true)
	hidden := createTestProduct(t, db, "Spotify", "spotify", false)
	createTestCards(t, db, stocked.ID, constants.CardStatusAvailable, 4)
	createTestCards(t, db, stocked.ID, constants.CardStatusSold, 2)
	createTestCards(t, db, empty.ID, constants.CardStatusSold, 5)
	createTestCards(t, db, hidden.ID, constants.CardStatusAvailable, 1)

	page, err := svc.ListProducts(context.Background(), ProductListInput{})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if page.Total != 3 || page.PageSize != 20 {
		t.Fatalf("unexpected page: total=%d size=%d", page.Total, page.PageSize)
	}
	for _, item := range page.Items {
		if item.ID == stocked.ID && (item.Stock != 4 || item.SalesCount != 2) {
			t.Fatalf("unexpected stock for stocked product: %+v", item)
		}
	}

	outOfStock, err := svc.ListProducts(context.Background(), ProductListInput{Status: constants.ProductFilterOutOfStock})
	if err != nil {
		t.Fatalf("list out of stock failed: %v", err)
	}
	if outOfStock.Total != 1 || outOfStock.Items[0].ID != empty.ID || outOfStock.Items[0].SalesCount != 5 {
		t.Fatalf("unexpected out of stock page: %+v", outOfStock)
	}

	inactive, err := svc.ListProducts(context.Background(), ProductListInput{Status: constants.ProductFilterInactive})
	if err != nil || inactive.Total != 1 || inactive.Items[0].ID != hidden.ID {
		t.Fatalf("unexpected inactive page: %+v err=%v", inactive, err)
	}

	search, err := svc.ListProducts(context.Background(), ProductListInput{Query: "STEAM"})
	if err != nil || search.Total != 1 || search.Items[0].ID != stocked.ID {
		t.Fatalf("unexpected search page: %+v err=%v", search, err)
	}

	if _, err := svc.ListProducts(context.Background(), ProductListInput{Status: "archived"}); !errors.Is(err, ErrProductFilterInvalid) {
		t.Fatalf("want ErrProductFilterInvalid got %v", err)
	}
}

func TestProductSuggestCopySlug(t *testing.T) {
	svc, db, _ := newProductAdminFixture(t)
	product := createTestProduct(t, db, "Steam", "Steam_Card", true)
	now := time.UnixMilli(slugTestNowMs)
	svc.now = func() time.Time { return now }

	slug, err := svc.SuggestCopySlug(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("suggest slug failed: %v", err)
	}
	if !strings.HasPrefix(slug, "steam-card-copy-") || !strings.HasSuffix(slug, strconv.FormatInt(slugTestNowMs, 36)) {
		t.Fatalf("unexpected slug: %s", slug)
	}

	// 建议值已被占用时顺延时间戳
	createTestProduct(t, db, "Steam copy", slug, true)
	next, err := svc.SuggestCopySlug(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("suggest slug failed: %v", err)
	}
	if next == slug || !strings.HasSuffix(next, strconv.FormatInt(slugTestNowMs+1, 36)) {
		t.Fatalf("want shifted slug got %s", next)
	}

	if _, err := svc.SuggestCopySlug(context.Background(), 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}
