package service

import (
	"context"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/logger"
	"github.com/dujiao-next/cardshop-admin/internal/queue"
)

// OrderViewStore 管理端订单列表缓存
type OrderViewStore interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, fingerprint string, dest interface{}) (bool, error)
	Set(ctx context.Context, version int64, fingerprint string, value interface{}) error
	Invalidate(ctx context.Context) error
}

// OrdersDeletedNotice 删除提交后的通知内容
type OrdersDeletedNotice struct {
	OrderIDs      []string
	AdminID       uint
	DeletedCount  int64
	ReleasedCards int64
	OccurredAt    time.Time
}

// OrderViewNotifier 订单删除提交后的通知，失败只记录日志
type OrderViewNotifier interface {
	OrdersDeleted(ctx context.Context, notice OrdersDeletedNotice)
}

// CacheQueueNotifier 同步失效列表缓存，并投递异步收尾任务
type CacheQueueNotifier struct {
	view        OrderViewStore
	queueClient *queue.Client
}

// NewOrderViewNotifier 创建订单列表失效通知器
func NewOrderViewNotifier(view OrderViewStore, queueClient *queue.Client) *CacheQueueNotifier {
	return &CacheQueueNotifier{view: view, queueClient: queueClient}
}

// OrdersDeleted 执行缓存失效与任务投递
func (n *CacheQueueNotifier) OrdersDeleted(ctx context.Context, notice OrdersDeletedNotice) {
	if n == nil {
		return
	}
	if n.view != nil {
		if err := n.view.Invalidate(ctx); err != nil {
			logger.Warnw("order_view_invalidate_failed",
				"admin_id", notice.AdminID,
				"deleted_count", notice.DeletedCount,
				"error", err,
			)
		}
	}
	if !n.queueClient.Enabled() {
		return
	}
	err := n.queueClient.EnqueueOrderAdminDeleted(ctx, queue.OrderAdminDeletedPayload{
		OrderIDs:      notice.OrderIDs,
		AdminID:       notice.AdminID,
		DeletedCount:  notice.DeletedCount,
		ReleasedCards: notice.ReleasedCards,
		OccurredAt:    notice.OccurredAt,
	})
	if err != nil {
		logger.Warnw("order_admin_deleted_enqueue_failed",
			"admin_id", notice.AdminID,
			"deleted_count", notice.DeletedCount,
			"error", err,
		)
	}
}
