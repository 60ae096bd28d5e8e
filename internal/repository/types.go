package repository

import (
	"errors"

	"gorm.io/gorm"
)

// OrderAdminFilter 管理端订单列表过滤条件
type OrderAdminFilter struct {
	Page          int
	PageSize      int
	Status        string
	PaymentMethod string
	Query         string
}

// OrderStatusRow 订单 ID 与状态
type OrderStatusRow struct {
	ID     string
	Status string
}

// ProductAdminFilter 管理端商品列表过滤条件
type ProductAdminFilter struct {
	Page       int
	PageSize   int
	Query      string
	CategoryID *uint
	Status     string
}

// CardStockCount 商品卡密库存统计
type CardStockCount struct {
	Available int64
	Locked    int64
	Sold      int64
}

// firstOrNil 查询单条记录，未找到返回 nil, nil
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var row T
	err := query.First(&row, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
