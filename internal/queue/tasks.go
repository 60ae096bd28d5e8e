package queue

import (
	"encoding/json"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderAdminDeleted 后台删除订单后的收尾任务（缓存失效与事件投递）
	TaskOrderAdminDeleted = constants.TaskOrderAdminDeleted
)

// OrderAdminDeletedPayload 后台删除订单任务载荷
type OrderAdminDeletedPayload struct {
	OrderIDs      []string  `json:"order_ids"`
	AdminID       uint      `json:"admin_id"`
	DeletedCount  int64     `json:"deleted_count"`
	ReleasedCards int64     `json:"released_cards"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewOrderAdminDeletedTask 创建后台删除订单任务
func NewOrderAdminDeletedTask(payload OrderAdminDeletedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderAdminDeleted, body), nil
}

// ParseOrderAdminDeletedPayload 解析后台删除订单任务载荷
func ParseOrderAdminDeletedPayload(body []byte) (OrderAdminDeletedPayload, error) {
	var payload OrderAdminDeletedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
