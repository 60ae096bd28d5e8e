package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRepositories 事务内可用的仓库集合
type TxRepositories struct {
	Orders   OrderRepository
	Cards    CardRepository
	Products ProductRepository
}

// UnitOfWork 事务单元，fn 返回错误时整体回滚
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos TxRepositories) error) error
}

// GormUnitOfWork GORM 事务实现
type GormUnitOfWork struct {
	db       *gorm.DB
	orders   *GormOrderRepository
	cards    *GormCardRepository
	products *GormProductRepository
}

// NewUnitOfWork 创建事务单元
func NewUnitOfWork(db *gorm.DB, orders *GormOrderRepository, cards *GormCardRepository, products *GormProductRepository) *GormUnitOfWork {
	return &GormUnitOfWork{db: db, orders: orders, cards: cards, products: products}
}

// Do 在单个数据库事务中执行 fn
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(repos TxRepositories) error) error {
	if fn == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxRepositories{
			Orders:   u.orders.WithTx(tx),
			Cards:    u.cards.WithTx(tx),
			Products: u.products.WithTx(tx),
		})
	})
}
