package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/events"
	"github.com/dujiao-next/cardshop-admin/internal/logger"
	"github.com/dujiao-next/cardshop-admin/internal/provider"
	"github.com/dujiao-next/cardshop-admin/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderAdminDeleted, c.handleOrderAdminDeleted)
}

// handleOrderAdminDeleted 后台删除订单收尾：再次失效列表缓存并投递订单删除事件
func (c *Consumer) handleOrderAdminDeleted(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_admin_deleted_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderAdminDeletedPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_admin_deleted_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if len(payload.OrderIDs) == 0 || payload.DeletedCount <= 0 {
		logger.Debugw("worker_order_admin_deleted_skip_empty", "admin_id", payload.AdminID)
		return nil
	}

	if c.OrderViewStore != nil {
		if err := c.OrderViewStore.Invalidate(ctx); err != nil {
			logger.Warnw("worker_order_view_invalidate_failed", "admin_id", payload.AdminID, "error", err)
		}
	}

	if c.EventPublisher == nil {
		return nil
	}
	occurredAt := payload.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	if err := c.EventPublisher.PublishOrdersDeleted(ctx, events.OrdersDeletedPayload{
		OrderIDs:      payload.OrderIDs,
		AdminID:       payload.AdminID,
		DeletedCount:  payload.DeletedCount,
		ReleasedCards: payload.ReleasedCards,
	}, occurredAt); err != nil {
		logger.Warnw("worker_orders_deleted_publish_failed",
			"admin_id", payload.AdminID,
			"deleted_count", payload.DeletedCount,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_orders_deleted_published",
		"admin_id", payload.AdminID,
		"deleted_count", payload.DeletedCount,
		"released_cards", payload.ReleasedCards,
	)
	return nil
}
