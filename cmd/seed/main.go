package main

import (
	"fmt"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/config"
	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/logger"
	"github.com/dujiao-next/cardshop-admin/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	Name     string
	Slug     string
	Category string
	Price    string
	Active   bool
	Cards    int
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categoryIDs, err := seedCategories(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to seed categories: %v", err)
	}

	products := []seedProduct{
		{Name: "Steam 充值卡 100", Slug: "steam-100", Category: "game-cards", Price: "98.00", Active: true, Cards: 20},
		{Name: "PSN 点卡 200", Slug: "psn-200", Category: "game-cards", Price: "189.00", Active: true, Cards: 10},
		{Name: "视频会员月卡", Slug: "video-vip-month", Category: "memberships", Price: "19.90", Active: true, Cards: 50},
		{Name: "音乐会员年卡", Slug: "music-vip-year", Category: "memberships", Price: "128.00", Active: false, Cards: 5},
		{Name: "云盘扩容码", Slug: "cloud-storage-1t", Category: "software", Price: "45.00", Active: true, Cards: 0},
	}
	for _, item := range products {
		product, created, err := seedProductWithCards(models.DB, item, categoryIDs[item.Category])
		if err != nil {
			stdLog.Printf("Failed to seed product %s: %v", item.Slug, err)
			continue
		}
		if !created {
			stdLog.Printf("Product already exists: %s", item.Slug)
			continue
		}
		stdLog.Printf("Created product %s with %d cards", product.Slug, item.Cards)
		if err := seedOrders(models.DB, product); err != nil {
			stdLog.Printf("Failed to seed orders for %s: %v", product.Slug, err)
		}
	}
	stdLog.Printf("Seed finished")
}

func seedCategories(db *gorm.DB) (map[string]uint, error) {
	categories := []models.Category{
		{Name: "游戏点卡", Slug: "game-cards", SortOrder: 30},
		{Name: "会员充值", Slug: "memberships", SortOrder: 20},
		{Name: "软件激活", Slug: "software", SortOrder: 10},
	}
	ids := make(map[string]uint, len(categories))
	for _, cat := range categories {
		category := cat
		if err := db.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error; err != nil {
			return nil, err
		}
		ids[category.Slug] = category.ID
	}
	return ids, nil
}

func seedProductWithCards(db *gorm.DB, item seedProduct, categoryID uint) (*models.Product, bool, error) {
	var existing int64
	if err := db.Model(&models.Product{}).Where("slug = ?", item.Slug).Count(&existing).Error; err != nil {
		return nil, false, err
	}
	if existing > 0 {
		return nil, false, nil
	}

	product := &models.Product{
		Name:     item.Name,
		Slug:     item.Slug,
		Price:    models.NewMoneyFromDecimal(decimal.RequireFromString(item.Price)),
		IsActive: item.Active,
	}
	if categoryID > 0 {
		product.CategoryID = &categoryID
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		if item.Cards == 0 {
			return nil
		}
		cards := make([]models.Card, 0, item.Cards)
		for i := 0; i < item.Cards; i++ {
			cards = append(cards, models.Card{
				ProductID: product.ID,
				Secret:    fmt.Sprintf("%s-%s", item.Slug, uuid.NewString()[:8]),
				Status:    constants.CardStatusAvailable,
			})
		}
		return tx.Create(&cards).Error
	})
	if err != nil {
		return nil, false, err
	}
	return product, true, nil
}

// seedOrders 每个商品生成一组覆盖各状态的订单，待支付订单锁定一张卡密
func seedOrders(db *gorm.DB, product *models.Product) error {
	statuses := []string{
		constants.OrderStatusPending,
		constants.OrderStatusPaid,
		constants.OrderStatusCompleted,
		constants.OrderStatusExpired,
		constants.OrderStatusRefundPending,
	}
	methods := constants.PaymentMethods()
	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		for i, status := range statuses {
			email := fmt.Sprintf("buyer%d@example.com", i+1)
			order := &models.Order{
				OrderNo:       fmt.Sprintf("CS%s%03d", now.Format("20060102150405"), int(product.ID)*10+i),
				ProductID:     product.ID,
				ProductName:   product.Name,
				Quantity:      1,
				TotalAmount:   product.Price,
				PaymentMethod: methods[i%len(methods)],
				Email:         &email,
				Status:        status,
				CreatedAt:     now.Add(-time.Duration(i) * time.Hour),
			}
			if err := tx.Create(order).Error; err != nil {
				return err
			}
			if status != constants.OrderStatusPending {
				continue
			}
			lockedAt := now
			if err := tx.Model(&models.Card{}).
				Where("id = (?)", tx.Model(&models.Card{}).Select("id").
					Where("product_id = ? AND status = ?", product.ID, constants.CardStatusAvailable).Limit(1)).
				Updates(map[string]interface{}{
					"status":    constants.CardStatusLocked,
					"order_id":  order.ID,
					"locked_at": lockedAt,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
