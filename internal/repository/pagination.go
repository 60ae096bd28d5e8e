package repository

import (
	"github.com/dujiao-next/cardshop-admin/internal/constants"

	"gorm.io/gorm"
)

// NormalizePageSize 0 取默认值，负数按 1 处理，超出上限按上限截断
func NormalizePageSize(pageSize int) int {
	switch {
	case pageSize == 0:
		return constants.AdminPageSizeDefault
	case pageSize < 1:
		return 1
	case pageSize > constants.AdminPageSizeMax:
		return constants.AdminPageSizeMax
	default:
		return pageSize
	}
}

// applyPagination 追加 LIMIT/OFFSET，pageSize 超出上限时按上限截断
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > constants.AdminPageSizeMax {
		pageSize = constants.AdminPageSizeMax
	}
	return query.Limit(pageSize).Offset(pageOffset(page, pageSize))
}

func pageOffset(page, pageSize int) int {
	if page < 1 || pageSize <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}
