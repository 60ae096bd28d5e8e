package repository

import (
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/models"

	"gorm.io/gorm"
)

// CardRepository 卡密库存数据访问接口
type CardRepository interface {
	CreateBatch(cards []models.Card) error
	ListByOrder(orderID string) ([]models.Card, error)
	ReleaseLockedByOrders(orderIDs []string, releasedAt time.Time) (int64, error)
	CountStockByProductIDs(productIDs []uint) (map[uint]CardStockCount, error)
	ProductIDsWithLocked(productIDs []uint) ([]uint, error)
	DeleteAvailableByProducts(productIDs []uint) (int64, error)
}

// GormCardRepository GORM 实现
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository 创建卡密仓库
func NewCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCardRepository) WithTx(tx *gorm.DB) *GormCardRepository {
	if tx == nil {
		return r
	}
	return &GormCardRepository{db: tx}
}

// CreateBatch 批量创建卡密
func (r *GormCardRepository) CreateBatch(cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	return r.db.Create(&cards).Error
}

// ListByOrder 获取订单关联的卡密
func (r *GormCardRepository) ListByOrder(orderID string) ([]models.Card, error) {
	cards := make([]models.Card, 0)
	if orderID == "" {
		return cards, nil
	}
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ReleaseLockedByOrders 释放订单锁定的卡密，状态、订单关联与锁定时间在同一语句中清理
func (r *GormCardRepository) ReleaseLockedByOrders(orderIDs []string, releasedAt time.Time) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Card{}).
		Where("status = ? AND order_id IN ?", constants.CardStatusLocked, orderIDs).
		Updates(map[string]interface{}{
			"status":     constants.CardStatusAvailable,
			"order_id":   nil,
			"locked_at":  nil,
			"updated_at": releasedAt,
		})
	return result.RowsAffected, result.Error
}

// CountStockByProductIDs 批量统计商品各状态卡密数量
func (r *GormCardRepository) CountStockByProductIDs(productIDs []uint) (map[uint]CardStockCount, error) {
	result := make(map[uint]CardStockCount, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ProductID uint
		Status    string
		Total     int64
	}
	if err := r.db.Model(&models.Card{}).
		Select("product_id, status, COUNT(*) AS total").
		Where("product_id IN ?", productIDs).
		Group("product_id, status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		stock := result[row.ProductID]
		switch row.Status {
		case constants.CardStatusAvailable:
			stock.Available += row.Total
		case constants.CardStatusLocked:
			stock.Locked += row.Total
		case constants.CardStatusSold:
			stock.Sold += row.Total
		}
		result[row.ProductID] = stock
	}
	return result, nil
}

// ProductIDsWithLocked 返回存在锁定卡密的商品 ID
func (r *GormCardRepository) ProductIDsWithLocked(productIDs []uint) ([]uint, error) {
	ids := make([]uint, 0)
	if len(productIDs) == 0 {
		return ids, nil
	}
	if err := r.db.Model(&models.Card{}).
		Distinct("product_id").
		Where("product_id IN ? AND status = ?", productIDs, constants.CardStatusLocked).
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteAvailableByProducts 删除商品下未售出的可用卡密
func (r *GormCardRepository) DeleteAvailableByProducts(productIDs []uint) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	result := r.db.
		Where("product_id IN ? AND status = ?", productIDs, constants.CardStatusAvailable).
		Delete(&models.Card{})
	return result.RowsAffected, result.Error
}
