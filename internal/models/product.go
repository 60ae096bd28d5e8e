package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                               // 主键
	CategoryID    *uint          `gorm:"index" json:"category_id"`                           // 分类ID（可为空）
	Name          string         `gorm:"not null" json:"name"`                               // 商品名称
	Slug          string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"` // 唯一标识
	Description   string         `gorm:"type:text" json:"description"`                       // 简介
	Content       string         `gorm:"type:text" json:"content"`                           // 详情（Markdown）
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 售价
	OriginalPrice *Money         `gorm:"type:decimal(20,2)" json:"original_price,omitempty"` // 划线价
	CoverImage    string         `gorm:"type:varchar(500)" json:"cover_image"`               // 封面图
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                // 是否上架
	IsFeatured    bool           `gorm:"default:false;index" json:"is_featured"`             // 是否推荐
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	MinQuantity   int            `gorm:"not null;default:1" json:"min_quantity"`             // 单次最少购买
	MaxQuantity   int            `gorm:"not null;default:10" json:"max_quantity"`            // 单次最多购买
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
