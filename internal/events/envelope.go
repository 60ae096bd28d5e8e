package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/constants"

	"github.com/google/uuid"
)

// Envelope 事件信封，所有订单事件共用
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// OrdersDeletedPayload 后台批量删除订单事件载荷
type OrdersDeletedPayload struct {
	OrderIDs      []string `json:"order_ids"`
	AdminID       uint     `json:"admin_id"`
	DeletedCount  int64    `json:"deleted_count"`
	ReleasedCards int64    `json:"released_cards"`
}

// NewEnvelope 构建事件信封
func NewEnvelope(eventType, producer, correlationID string, occurredAt time.Time, payload interface{}) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  constants.EventVersionV1,
		OccurredAt:    occurredAt.UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       body,
	}, nil
}

// DecodePayload 解析信封内的具体载荷
func DecodePayload[T any](envelope Envelope) (T, error) {
	var out T
	if err := json.Unmarshal(envelope.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", envelope.EventType, err)
	}
	return out, nil
}
