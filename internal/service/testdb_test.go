package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/models"
	"github.com/dujiao-next/cardshop-admin/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

type testRepos struct {
	orders   *repository.GormOrderRepository
	cards    *repository.GormCardRepository
	products *repository.GormProductRepository
	uow      *repository.GormUnitOfWork
}

func newTestRepos(db *gorm.DB) testRepos {
	orders := repository.NewOrderRepository(db)
	cards := repository.NewCardRepository(db)
	products := repository.NewProductRepository(db)
	return testRepos{
		orders:   orders,
		cards:    cards,
		products: products,
		uow:      repository.NewUnitOfWork(db, orders, cards, products),
	}
}

type fakeGuard struct {
	err   error
	calls int
}

func (g *fakeGuard) RequireAdmin(ctx context.Context) (*AdminPrincipal, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &AdminPrincipal{AdminID: 1, Username: "admin"}, nil
}

// countingUnitOfWork 记录事务调用次数
type countingUnitOfWork struct {
	inner repository.UnitOfWork
	calls int
}

func (u *countingUnitOfWork) Do(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	u.calls++
	return u.inner.Do(ctx, fn)
}

// faultingUnitOfWork 在删除订单步骤注入故障
type faultingUnitOfWork struct {
	inner     repository.UnitOfWork
	deleteErr error
}

func (u *faultingUnitOfWork) Do(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	return u.inner.Do(ctx, func(repos repository.TxRepositories) error {
		repos.Orders = failingDeleteOrders{OrderRepository: repos.Orders, err: u.deleteErr}
		return fn(repos)
	})
}

type failingDeleteOrders struct {
	repository.OrderRepository
	err error
}

func (r failingDeleteOrders) DeleteByIDs(ids []string) (int64, error) {
	return 0, r.err
}

type recordingNotifier struct {
	notices []OrdersDeletedNotice
}

func (n *recordingNotifier) OrdersDeleted(ctx context.Context, notice OrdersDeletedNotice) {
	n.notices = append(n.notices, notice)
}

// memoryOrderViewStore 内存版订单列表缓存
type memoryOrderViewStore struct {
	mu      sync.Mutex
	version int64
	entries map[string][]byte
	sets    int
}

func newMemoryOrderViewStore() *memoryOrderViewStore {
	return &memoryOrderViewStore{entries: map[string][]byte{}}
}

func (s *memoryOrderViewStore) Version(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version, nil
}

func (s *memoryOrderViewStore) Get(ctx context.Context, version int64, fingerprint string, dest interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.entries[fmt.Sprintf("%d:%s", version, fingerprint)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *memoryOrderViewStore) Set(ctx context.Context, version int64, fingerprint string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[fmt.Sprintf("%d:%s", version, fingerprint)] = raw
	s.sets++
	return nil
}

func (s *memoryOrderViewStore) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	return nil
}

type testOrder struct {
	ID            string
	Status        string
	PaymentMethod string
	ProductName   string
	Email         string
	Username      string
	CreatedAt     time.Time
}

func createTestOrder(t *testing.T, db *gorm.DB, o testOrder) *models.Order {
	t.Helper()
	if o.PaymentMethod == "" {
		o.PaymentMethod = constants.PaymentMethodAlipay
	}
	if o.ProductName == "" {
		o.ProductName = "测试商品"
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	order := &models.Order{
		ID:            o.ID,
		OrderNo:       "NO-" + o.ID,
		ProductName:   o.ProductName,
		Quantity:      1,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
	if o.Email != "" {
		email := o.Email
		order.Email = &email
	}
	if o.Username != "" {
		username := o.Username
		order.Username = &username
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order %s failed: %v", o.ID, err)
	}
	return order
}

func createTestLockedCard(t *testing.T, db *gorm.DB, productID uint, orderID string) *models.Card {
	t.Helper()
	now := time.Now()
	card := &models.Card{
		ProductID: productID,
		Secret:    "CARD-" + orderID,
		Status:    constants.CardStatusLocked,
		OrderID:   &orderID,
		LockedAt:  &now,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("create locked card failed: %v", err)
	}
	return card
}

func createTestCards(t *testing.T, db *gorm.DB, productID uint, status string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		card := &models.Card{
			ProductID: productID,
			Secret:    fmt.Sprintf("CARD-%d-%s-%d", productID, status, i),
			Status:    status,
		}
		if err := db.Create(card).Error; err != nil {
			t.Fatalf("create card failed: %v", err)
		}
	}
}

func createTestProduct(t *testing.T, db *gorm.DB, name, slug string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Slug:     slug,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	if !active {
		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product %s failed: %v", slug, err)
		}
		product.IsActive = false
	}
	return product
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var total int64
	if err := db.Model(model).Count(&total).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	return total
}
