package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/constants"
	"github.com/dujiao-next/cardshop-admin/internal/logger"
	"github.com/dujiao-next/cardshop-admin/internal/models"
	"github.com/dujiao-next/cardshop-admin/internal/repository"
)

// OrderListInput 管理端订单列表参数
type OrderListInput struct {
	Page          int
	PageSize      int
	Status        string
	PaymentMethod string
	Query         string
}

// OrderStats 关键状态订单数，未出现的状态为 0
type OrderStats struct {
	Pending       int64 `json:"pending"`
	Completed     int64 `json:"completed"`
	RefundPending int64 `json:"refund_pending"`
}

// OrderPage 管理端订单分页结果
type OrderPage struct {
	Items    []models.Order `json:"items"`
	Total    int64          `json:"total"`
	Stats    OrderStats     `json:"stats"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// OrderAdminService 管理端订单服务
type OrderAdminService struct {
	guard     AdminGuard
	uow       repository.UnitOfWork
	orderRepo repository.OrderRepository
	view      OrderViewStore
	notifier  OrderViewNotifier
	now       func() time.Time
}

// NewOrderAdminService 创建管理端订单服务，view 与 notifier 可为空
func NewOrderAdminService(
	guard AdminGuard,
	uow repository.UnitOfWork,
	orderRepo repository.OrderRepository,
	view OrderViewStore,
	notifier OrderViewNotifier,
) *OrderAdminService {
	return &OrderAdminService{
		guard:     guard,
		uow:       uow,
		orderRepo: orderRepo,
		view:      view,
		notifier:  notifier,
		now:       time.Now,
	}
}

// ListOrders 分页查询订单并统计关键状态数量
func (s *OrderAdminService) ListOrders(ctx context.Context, input OrderListInput) (*OrderPage, error) {
	if _, err := s.guard.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	filter, err := normalizeOrderListInput(input)
	if err != nil {
		return nil, err
	}

	fingerprint := orderListFingerprint(filter)
	version, cacheable := s.cachedVersion(ctx)
	if cacheable {
		var cached OrderPage
		hit, err := s.view.Get(ctx, version, fingerprint, &cached)
		if err != nil {
			logger.Warnw("order_view_cache_get_failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	items, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	counts, err := s.orderRepo.CountByStatus(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}

	page := &OrderPage{
		Items: items,
		Total: total,
		Stats: OrderStats{
			Pending:       counts[constants.OrderStatusPending],
			Completed:     counts[constants.OrderStatusCompleted],
			RefundPending: counts[constants.OrderStatusRefundPending],
		},
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if page.Items == nil {
		page.Items = []models.Order{}
	}
	if cacheable {
		if err := s.view.Set(ctx, version, fingerprint, page); err != nil {
			logger.Warnw("order_view_cache_set_failed", "error", err)
		}
	}
	return page, nil
}

// DeleteOrders 批量删除待支付/已过期订单，并在同一事务内释放其锁定卡密
func (s *OrderAdminService) DeleteOrders(ctx context.Context, ids []string) OrderDeleteOutcome {
	principal, err := s.guard.RequireAdmin(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return DeleteUnauthorized{}
		}
		logger.Errorw("order_admin_delete_guard_failed", "error", err)
		return DeleteInfraFailed{Err: err}
	}

	requested := normalizeOrderIDs(ids)
	if len(requested) == 0 {
		return DeleteValidationFailed{Reason: ReasonNothingSelected}
	}
	if len(requested) > constants.AdminBatchLimit {
		return DeleteValidationFailed{Reason: ReasonBatchTooLarge}
	}

	var (
		deletable []string
		skipped   []string
		notFound  []string
		deleted   int64
		released  int64
	)
	now := s.now()
	err = s.uow.Do(ctx, func(repos repository.TxRepositories) error {
		rows, err := repos.Orders.ListStatusByIDs(requested)
		if err != nil {
			return err
		}
		deletable, skipped, notFound = partitionOrdersForDelete(requested, rows)
		if len(deletable) == 0 {
			return nil
		}
		released, err = repos.Cards.ReleaseLockedByOrders(deletable, now)
		if err != nil {
			return err
		}
		deleted, err = repos.Orders.DeleteByIDs(deletable)
		return err
	})
	if err != nil {
		logger.Errorw("order_admin_delete_failed",
			"admin_id", principal.AdminID,
			"requested", len(requested),
			"error", err,
		)
		return DeleteInfraFailed{Err: err}
	}

	logger.Infow("order_admin_delete_committed",
		"admin_id", principal.AdminID,
		"requested", len(requested),
		"deleted", deleted,
		"skipped", len(skipped),
		"not_found", len(notFound),
		"released_cards", released,
	)
	if deleted > 0 && s.notifier != nil {
		s.notifier.OrdersDeleted(ctx, OrdersDeletedNotice{
			OrderIDs:      deletable,
			AdminID:       principal.AdminID,
			DeletedCount:  deleted,
			ReleasedCards: released,
			OccurredAt:    now,
		})
	}

	if deleted == 0 && len(skipped) > 0 {
		return OrdersRejected{Skipped: skipped, NotFound: notFound}
	}
	return OrdersDeleted{
		Count:         deleted,
		Skipped:       skipped,
		NotFound:      notFound,
		ReleasedCards: released,
	}
}

// partitionOrdersForDelete 按请求顺序拆分为可删除、受保护、不存在三组
func partitionOrdersForDelete(requested []string, rows []repository.OrderStatusRow) (deletable, skipped, notFound []string) {
	statusByID := make(map[string]string, len(rows))
	for _, row := range rows {
		statusByID[row.ID] = row.Status
	}
	for _, id := range requested {
		status, ok := statusByID[id]
		switch {
		case !ok:
			notFound = append(notFound, id)
		case isOrderDeletable(status):
			deletable = append(deletable, id)
		default:
			skipped = append(skipped, id)
		}
	}
	return deletable, skipped, notFound
}

// isOrderDeletable 仅待支付与已过期订单可删除
func isOrderDeletable(status string) bool {
	return status == constants.OrderStatusPending || status == constants.OrderStatusExpired
}

func (s *OrderAdminService) cachedVersion(ctx context.Context) (int64, bool) {
	if s.view == nil {
		return 0, false
	}
	version, err := s.view.Version(ctx)
	if err != nil {
		logger.Warnw("order_view_version_failed", "error", err)
		return 0, false
	}
	return version, true
}

func normalizeOrderListInput(input OrderListInput) (repository.OrderAdminFilter, error) {
	filter := repository.OrderAdminFilter{
		Page:          input.Page,
		PageSize:      input.PageSize,
		Status:        strings.TrimSpace(input.Status),
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		Query:         strings.TrimSpace(input.Query),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PageSize = repository.NormalizePageSize(filter.PageSize)
	if filter.Status != "" && !containsString(constants.OrderStatuses(), filter.Status) {
		return filter, fmt.Errorf("%w: status %q", ErrOrderFilterInvalid, filter.Status)
	}
	if filter.PaymentMethod != "" && !containsString(constants.PaymentMethods(), filter.PaymentMethod) {
		return filter, fmt.Errorf("%w: payment_method %q", ErrOrderFilterInvalid, filter.PaymentMethod)
	}
	return filter, nil
}

func orderListFingerprint(filter repository.OrderAdminFilter) string {
	raw := fmt.Sprintf("%d|%d|%s|%s|%s", filter.Page, filter.PageSize, filter.Status, filter.PaymentMethod, filter.Query)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:16])
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
