package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/dujiao-next/cardshop-admin/internal/http/handlers/shared"
	"github.com/dujiao-next/cardshop-admin/internal/http/response"
	"github.com/dujiao-next/cardshop-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// BatchProductIDsRequest 商品批量操作请求
type BatchProductIDsRequest struct {
	IDs    []uint `json:"ids"`
	Action string `json:"action"`
}

// GetAdminProducts 管理端商品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)

	var categoryID *uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "error.product_filter_invalid", nil)
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	result, err := h.ProductAdminService.ListProducts(c.Request.Context(), service.ProductListInput{
		Page:       page,
		PageSize:   pageSize,
		Query:      strings.TrimSpace(c.Query("q")),
		CategoryID: categoryID,
		Status:     strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		case errors.Is(err, service.ErrProductFilterInvalid):
			respondError(c, response.CodeBadRequest, "error.product_filter_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		}
		return
	}

	response.SuccessWithPage(c, result.Items, response.Pagination{
		Page:      result.Page,
		PageSize:  result.PageSize,
		Total:     result.Total,
		TotalPage: handlershared.TotalPages(result.Total, result.PageSize),
	})
}

// BatchUpdateProductStatus 批量上架/下架
func (h *Handler) BatchUpdateProductStatus(c *gin.Context) {
	var req BatchProductIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	respondBulkResult(c, h.ProductAdminService.BulkUpdateStatus(c.Request.Context(), req.IDs, req.Action))
}

// BatchDeleteProducts 批量删除商品
func (h *Handler) BatchDeleteProducts(c *gin.Context) {
	var req BatchProductIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	respondBulkResult(c, h.ProductAdminService.BulkDelete(c.Request.Context(), req.IDs))
}

// SuggestProductCopySlug 复制商品时的建议 slug
func (h *Handler) SuggestProductCopySlug(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	slug, err := h.ProductAdminService.SuggestCopySlug(c.Request.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"slug": slug})
}

func respondBulkResult(c *gin.Context, result service.BulkResult) {
	if result.SkippedIDs == nil {
		result.SkippedIDs = []uint{}
	}
	if result.Success {
		response.SuccessWithMsg(c, result.Message, result)
		return
	}
	response.ErrorWithData(c, bulkFailureCode(result.Reason), result.Message, result)
}

func bulkFailureCode(reason service.BulkFailureReason) int {
	switch reason {
	case service.BulkFailureUnauthorized:
		return response.CodeUnauthorized
	case service.BulkFailureInvalidInput, service.BulkFailureAllLocked:
		return response.CodeBadRequest
	default:
		return response.CodeInternal
	}
}
