package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order 订单表（删除为物理删除，不保留软删除字段）
type Order struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                     // 主键（UUID）
	OrderNo       string    `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	ProductID     uint      `gorm:"index" json:"product_id"`                                   // 商品ID
	ProductName   string    `gorm:"not null" json:"product_name"`                              // 商品名称快照
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`                        // 购买数量
	TotalAmount   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 实付金额
	PaymentMethod string    `gorm:"type:varchar(20);index;not null" json:"payment_method"`     // 支付方式
	Email         *string   `gorm:"index" json:"email"`                                        // 下单邮箱（游客可为空）
	Username      *string   `gorm:"index" json:"username"`                                     // 用户名
	UserID        *string   `gorm:"index" json:"user_id"`                                      // 用户ID
	Status        string    `gorm:"type:varchar(20);index;not null" json:"status"`             // 订单状态
	TradeNo       *string   `gorm:"index" json:"trade_no"`                                     // 支付平台交易号
	RefundReason  *string   `gorm:"type:text" json:"refund_reason"`                            // 退款原因
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                                // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 未指定主键时生成 UUID
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(o.ID) == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
