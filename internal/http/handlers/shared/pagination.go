package shared

import (
	"strconv"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/repository"

	"github.com/gin-gonic/gin"
)

// NormalizePagination 页码至少为 1，page_size 为 0 取默认值、负数按 1
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, repository.NormalizePageSize(pageSize)
}

// QueryPagination 从查询参数读取分页，非数字按默认值处理。
func QueryPagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.AdminPageSizeDefault)))
	return NormalizePagination(page, pageSize)
}

// TotalPages 计算总页数。
func TotalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
