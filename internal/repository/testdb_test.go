package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
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

func strPtr(v string) *string {
	return &v
}

type orderFixture struct {
	ID            string
	OrderNo       string
	Status        string
	PaymentMethod string
	ProductName   string
	Email         *string
	Username      *string
	UserID        *string
	TradeNo       *string
	CreatedAt     time.Time
}

func createOrderFixture(t *testing.T, db *gorm.DB, f orderFixture) *models.Order {
	t.Helper()
	if f.PaymentMethod == "" {
		f.PaymentMethod = constants.PaymentMethodAlipay
	}
	if f.ProductName == "" {
		f.ProductName = "测试商品"
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	order := &models.Order{
		ID:            f.ID,
		OrderNo:       f.OrderNo,
		ProductName:   f.ProductName,
		Quantity:      1,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		PaymentMethod: f.PaymentMethod,
		Email:         f.Email,
		Username:      f.Username,
		UserID:        f.UserID,
		Status:        f.Status,
		TradeNo:       f.TradeNo,
		CreatedAt:     f.CreatedAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order %s failed: %v", f.OrderNo, err)
	}
	return order
}

func createLockedCard(t *testing.T, db *gorm.DB, productID uint, orderID string) *models.Card {
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

func createCards(t *testing.T, db *gorm.DB, productID uint, status string, count int) {
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
