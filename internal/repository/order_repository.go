package repository

import (
	"strings"

	"github.com/dujiao-next/cardshop-admin/internal/models"

	"gorm.io/gorm"
)

// orderSearchColumns 关键词同时匹配的订单列
var orderSearchColumns = []string{"order_no", "email", "username", "user_id", "trade_no", "product_name"}

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	ListAdmin(filter OrderAdminFilter) ([]models.Order, int64, error)
	CountByStatus(filter OrderAdminFilter) (map[string]int64, error)
	ListStatusByIDs(ids []string) ([]OrderStatusRow, error)
	DeleteByIDs(ids []string) (int64, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id string) (*models.Order, error) {
	return firstOrNil[models.Order](r.db.Where("id = ?", id))
}

func (r *GormOrderRepository) adminQuery(filter OrderAdminFilter) *gorm.DB {
	query := r.db.Model(&models.Order{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if method := strings.TrimSpace(filter.PaymentMethod); method != "" {
		query = query.Where("payment_method = ?", method)
	}
	if keyword := strings.TrimSpace(filter.Query); keyword != "" {
		condition, argCount := buildInsensitiveLikeCondition(r.db, orderSearchColumns)
		query = query.Where(condition, repeatLikeArgs(containsPattern(keyword), argCount)...)
	}
	return query
}

// ListAdmin 管理端订单列表（按创建时间倒序）
func (r *GormOrderRepository) ListAdmin(filter OrderAdminFilter) ([]models.Order, int64, error) {
	var total int64
	if err := r.adminQuery(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, 0)
	query := applyPagination(r.adminQuery(filter), filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountByStatus 按状态分组统计满足过滤条件的订单数
func (r *GormOrderRepository) CountByStatus(filter OrderAdminFilter) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.adminQuery(filter).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}

// ListStatusByIDs 批量读取订单当前状态
func (r *GormOrderRepository) ListStatusByIDs(ids []string) ([]OrderStatusRow, error) {
	rows := make([]OrderStatusRow, 0, len(ids))
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.db.Model(&models.Order{}).
		Select("id", "status").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteByIDs 物理删除订单，返回实际删除行数
func (r *GormOrderRepository) DeleteByIDs(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&models.Order{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
