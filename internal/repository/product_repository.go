package repository

import (
	"strings"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/models"

	"gorm.io/gorm"
)

const availableCardExistsSQL = "EXISTS (SELECT 1 FROM cards c WHERE c.product_id = products.id AND c.status = ?)"

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	ListAdmin(filter ProductAdminFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	CountBySlug(slug string) (int64, error)
	BatchSetActive(ids []uint, active bool) (int64, error)
	DeleteByIDs(ids []uint) (int64, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// ListAdmin 管理端商品列表
func (r *GormProductRepository) ListAdmin(filter ProductAdminFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if keyword := strings.TrimSpace(filter.Query); keyword != "" {
		condition, argCount := buildInsensitiveLikeCondition(r.db, []string{"name", "slug"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(keyword), argCount)...)
	}
	query = applyProductStatusFilter(query, filter.Status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0)
	query = applyPagination(query.Preload("Category"), filter.Page, filter.PageSize)
	if err := query.Order("sort_order DESC").Order("id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func applyProductStatusFilter(query *gorm.DB, status string) *gorm.DB {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.ProductFilterActive:
		return query.Where("is_active = ?", true)
	case constants.ProductFilterInactive:
		return query.Where("is_active = ?", false)
	case constants.ProductFilterOutOfStock:
		return query.Where("NOT "+availableCardExistsSQL, constants.CardStatusAvailable)
	default:
		return query
	}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	return firstOrNil[models.Product](r.db.Preload("Category"), id)
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// CountBySlug 统计 slug 数量（含已软删除商品，避免唯一索引冲突）
func (r *GormProductRepository) CountBySlug(slug string) (int64, error) {
	var count int64
	if err := r.db.Unscoped().Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BatchSetActive 批量上下架
func (r *GormProductRepository) BatchSetActive(ids []uint, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Product{}).
		Where("id IN ?", ids).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}

// DeleteByIDs 批量删除商品（软删除）
func (r *GormProductRepository) DeleteByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}
