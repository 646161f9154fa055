package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents the menu_items table (the dish list served to
// sync clients).
type MenuItem struct {
	ItemCode   string          `gorm:"column:item_code;primaryKey" json:"item_code"`
	ItemName   string          `gorm:"column:item_name;not null" json:"item_name"`
	Category   string          `gorm:"column:category;not null" json:"category"`
	IsHeritage bool            `gorm:"column:is_heritage;default:false" json:"is_heritage"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Cost       decimal.Decimal `gorm:"column:cost;type:decimal(10,2)" json:"cost"`
	SalesCount int             `gorm:"column:sales_count;default:0" json:"sales_count"`
	Status     string          `gorm:"column:status;not null" json:"status"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
