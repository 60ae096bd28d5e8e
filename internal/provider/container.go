package provider

import (
	"time"

	"github.com/dujiao-next/cardshop-admin/internal/authz"
	"github.com/dujiao-next/cardshop-admin/internal/cache"
	"github.com/dujiao-next/cardshop-admin/internal/config"
	"github.com/dujiao-next/cardshop-admin/internal/events"
	"github.com/dujiao-next/cardshop-admin/internal/logger"
	"github.com/dujiao-next/cardshop-admin/internal/models"
	"github.com/dujiao-next/cardshop-admin/internal/queue"
	"github.com/dujiao-next/cardshop-admin/internal/repository"
	"github.com/dujiao-next/cardshop-admin/internal/service"

	"gorm.io/gorm"
)

const eventProducerName = "cardshop-admin"

// Container 依赖注入容器
type Container struct {
	Config         *config.Config
	QueueClient    *queue.Client
	OrderViewStore service.OrderViewStore
	EventPublisher events.Publisher

	// Repositories
	AdminRepo    repository.AdminRepository
	OrderRepo    repository.OrderRepository
	CardRepo     repository.CardRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	UnitOfWork   repository.UnitOfWork

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	AdminGuard          service.AdminGuard
	OrderAdminService   *service.OrderAdminService
	ProductAdminService *service.ProductAdminService
	CategoryService     *service.CategoryService
}

// NewContainer 初始化容器，使用全局数据库连接
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient := queue.NewClient(&cfg.Queue)

	publisher := events.NewKafkaPublisher(&cfg.Kafka, eventProducerName)
	if publisher.Enabled() {
		logger.Infow("provider_kafka_publisher_enabled", "topic", cfg.Kafka.Topic)
	}

	c, err := Build(cfg, models.DB, queueClient, publisher)
	if err != nil {
		logger.Errorw("provider_build_failed", "error", err)
		panic(err)
	}
	return c
}

// Build 基于给定依赖组装容器
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, publisher events.Publisher) (*Container, error) {
	if queueClient == nil {
		queueClient = queue.NewClient(nil)
	}
	ttl := time.Duration(cfg.Admin.OrderViewCacheTTLSeconds) * time.Second
	c := &Container{
		Config:         cfg,
		QueueClient:    queueClient,
		OrderViewStore: cache.NewOrderViewStore(ttl),
		EventPublisher: publisher,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	orders := repository.NewOrderRepository(db)
	cards := repository.NewCardRepository(db)
	products := repository.NewProductRepository(db)

	c.AdminRepo = repository.NewAdminRepository(db)
	c.OrderRepo = orders
	c.CardRepo = cards
	c.ProductRepo = products
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.UnitOfWork = repository.NewUnitOfWork(db, orders, cards, products)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	added, err := c.AuthzService.BootstrapBuiltinRoles()
	if err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}
	if added > 0 {
		logger.Infow("provider_builtin_roles_seeded", "rules_added", added)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.AdminGuard = service.NewAdminGuard(c.AdminRepo)
	notifier := service.NewOrderViewNotifier(c.OrderViewStore, c.QueueClient)
	c.OrderAdminService = service.NewOrderAdminService(c.AdminGuard, c.UnitOfWork, c.OrderRepo, c.OrderViewStore, notifier)
	c.ProductAdminService = service.NewProductAdminService(c.AdminGuard, c.UnitOfWork, c.ProductRepo, c.CardRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	return nil
}

// Close 释放队列、事件与缓存连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			logger.Warnw("provider_close_event_publisher_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
