package models

import "time"

// Card 卡密库存表
type Card struct {
	ID        uint       `gorm:"primarykey" json:"id"`                          // 主键
	ProductID uint       `gorm:"index;not null" json:"product_id"`              // 商品ID
	Secret    string     `gorm:"type:text;not null" json:"-"`                   // 卡密内容（不返回给列表）
	Status    string     `gorm:"type:varchar(20);index;not null" json:"status"` // 状态（available/locked/sold）
	OrderID   *string    `gorm:"type:varchar(36);index" json:"order_id"`        // 锁定或售出的订单ID
	LockedAt  *time.Time `gorm:"index" json:"locked_at"`                        // 锁定时间
	SoldAt    *time.Time `json:"sold_at"`                                       // 售出时间
	CreatedAt time.Time  `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt time.Time  `json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (Card) TableName() string {
	return "cards"
}
