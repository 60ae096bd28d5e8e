package admin

import (
	"errors"
	"strings"

	handlershared "github.com/dujiao-next/cardshop-admin/internal/http/handlers/shared"
	"github.com/dujiao-next/cardshop-admin/internal/http/response"
	"github.com/dujiao-next/cardshop-admin/internal/models"
	"github.com/dujiao-next/cardshop-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminOrderListData 订单列表数据，附带关键状态计数
type AdminOrderListData struct {
	Items []models.Order     `json:"items"`
	Stats service.OrderStats `json:"stats"`
}

// BatchDeleteOrdersRequest 批量删除订单请求
type BatchDeleteOrdersRequest struct {
	IDs []string `json:"ids"`
}

// BatchDeleteOrdersResponse 批量删除订单结果
type BatchDeleteOrdersResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	DeletedCount  int64    `json:"deleted_count"`
	SkippedCount  int      `json:"skipped_count"`
	SkippedIDs    []string `json:"skipped_ids"`
	NotFoundIDs   []string `json:"not_found_ids"`
	ReleasedCards int64    `json:"released_cards"`
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)

	result, err := h.OrderAdminService.ListOrders(c.Request.Context(), service.OrderListInput{
		Page:          page,
		PageSize:      pageSize,
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentMethod: strings.TrimSpace(c.Query("payment_method")),
		Query:         strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		case errors.Is(err, service.ErrOrderFilterInvalid):
			respondError(c, response.CodeBadRequest, "error.order_filter_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		}
		return
	}

	response.SuccessWithPage(c, AdminOrderListData{
		Items: result.Items,
		Stats: result.Stats,
	}, response.Pagination{
		Page:      result.Page,
		PageSize:  result.PageSize,
		Total:     result.Total,
		TotalPage: handlershared.TotalPages(result.Total, result.PageSize),
	})
}

// AdminBatchDeleteOrders 批量删除订单并释放占用的卡密
func (h *Handler) AdminBatchDeleteOrders(c *gin.Context) {
	var req BatchDeleteOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	outcome := h.OrderAdminService.DeleteOrders(c.Request.Context(), req.IDs)
	body := buildBatchDeleteOrdersResponse(outcome)
	code := batchDeleteOrdersCode(outcome)
	if code == response.CodeOK {
		response.SuccessWithMsg(c, body.Message, body)
		return
	}
	if failed, ok := outcome.(service.DeleteInfraFailed); ok {
		requestLog(c).Errorw("admin_order_batch_delete_failed", "order_count", len(req.IDs), "error", failed.Err)
	}
	response.ErrorWithData(c, code, body.Message, body)
}

func batchDeleteOrdersCode(outcome service.OrderDeleteOutcome) int {
	switch outcome.(type) {
	case service.OrdersDeleted:
		return response.CodeOK
	case service.OrdersRejected, service.DeleteValidationFailed:
		return response.CodeBadRequest
	case service.DeleteUnauthorized:
		return response.CodeUnauthorized
	default:
		return response.CodeInternal
	}
}

func buildBatchDeleteOrdersResponse(outcome service.OrderDeleteOutcome) BatchDeleteOrdersResponse {
	body := BatchDeleteOrdersResponse{
		Success:     outcome.Success(),
		Message:     outcome.Message(),
		SkippedIDs:  []string{},
		NotFoundIDs: []string{},
	}
	switch o := outcome.(type) {
	case service.OrdersDeleted:
		body.DeletedCount = o.Count
		body.ReleasedCards = o.ReleasedCards
		body.SkippedIDs = nonNilStrings(o.Skipped)
		body.NotFoundIDs = nonNilStrings(o.NotFound)
	case service.OrdersRejected:
		body.SkippedIDs = nonNilStrings(o.Skipped)
		body.NotFoundIDs = nonNilStrings(o.NotFound)
	}
	body.SkippedCount = len(body.SkippedIDs)
	return body
}

func nonNilStrings(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
