package queue

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/config"
	"github.com/dujiao-next/cardshop-admin/internal/constants"

	"github.com/hibiken/asynq"
)

// DefaultQueue 收尾任务投递的队列
const DefaultQueue = constants.QueueDefault

const (
	orderDeletedMaxRetry = 5
	orderDeletedTimeout  = 30 * time.Second
)

// Client asynq 投递端；队列未启用时所有投递都是空操作
type Client struct {
	inner *asynq.Client
}

func NewClient(cfg *config.QueueConfig) *Client {
	if cfg == nil || !cfg.Enabled {
		return &Client{}
	}
	return &Client{inner: asynq.NewClient(RedisOpt(cfg))}
}

func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueOrderAdminDeleted 投递订单删除收尾任务
func (c *Client) EnqueueOrderAdminDeleted(ctx context.Context, payload OrderAdminDeletedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderAdminDeletedTask(payload)
	if err != nil {
		return err
	}
	base := []asynq.Option{
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(orderDeletedMaxRetry),
		asynq.Timeout(orderDeletedTimeout),
	}
	_, err = c.inner.EnqueueContext(ctx, task, append(base, opts...)...)
	return err
}

// RedisOpt 队列 Redis 连接参数，缺省连本机 6379
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
