package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/config"
	"github.com/dujiao-next/cardshop-admin/internal/constants"

	"github.com/segmentio/kafka-go"
)

const defaultWriteTimeout = 3 * time.Second

// Publisher 订单事件发布接口
type Publisher interface {
	PublishOrdersDeleted(ctx context.Context, payload OrdersDeletedPayload, occurredAt time.Time) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 基于 kafka-go 的事件发布实现，未启用时所有发布均为空操作
type KafkaPublisher struct {
	writer   messageWriter
	producer string
	timeout  time.Duration
}

// NewKafkaPublisher 创建 Kafka 事件发布器
func NewKafkaPublisher(cfg *config.KafkaConfig, producer string) *KafkaPublisher {
	p := &KafkaPublisher{producer: producer, timeout: defaultWriteTimeout}
	if cfg == nil || !cfg.Enabled {
		return p
	}
	brokers := normalizeBrokers(cfg.Brokers)
	topic := strings.TrimSpace(cfg.Topic)
	if len(brokers) == 0 || topic == "" {
		return p
	}
	if cfg.WriteTimeoutMS > 0 {
		p.timeout = time.Duration(cfg.WriteTimeoutMS) * time.Millisecond
	}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: p.timeout,
	}
	return p
}

// Enabled 是否启用
func (p *KafkaPublisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// PublishOrdersDeleted 发布订单删除事件，分区 key 为管理员 ID
func (p *KafkaPublisher) PublishOrdersDeleted(ctx context.Context, payload OrdersDeletedPayload, occurredAt time.Time) error {
	if !p.Enabled() {
		return nil
	}
	key := strconv.FormatUint(uint64(payload.AdminID), 10)
	envelope, err := NewEnvelope(constants.EventOrdersDeleted, p.producer, key, occurredAt, payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  envelope.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(envelope.EventType)},
			{Key: "event_id", Value: []byte(envelope.EventID)},
		},
	})
}

// Close 关闭底层 writer
func (p *KafkaPublisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}

func normalizeBrokers(raw []string) []string {
	brokers := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				brokers = append(brokers, trimmed)
			}
		}
	}
	return brokers
}
