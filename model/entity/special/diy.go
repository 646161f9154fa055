package special

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiyIngredient represents diy_ingredients.
type DiyIngredient struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	Name      string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Attribute string          `gorm:"column:attribute;not null" json:"attribute"`
	Stock     int             `gorm:"column:stock;not null" json:"stock"`
	Unit      string          `gorm:"column:unit;not null" json:"unit"`
	Status    int             `gorm:"column:status;default:1" json:"status"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DiyIngredient) TableName() string {
	return "diy_ingredients"
}

// DiyDrinkOrder represents diy_drink_orders.
type DiyDrinkOrder struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	RemoteOrderID string          `gorm:"column:remote_order_id" json:"remote_order_id,omitempty"`
	CustomerName  string          `gorm:"column:customer_name;not null" json:"customer_name"`
	Phone         string          `gorm:"column:phone" json:"phone,omitempty"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price"`
	Status        string          `gorm:"column:status;not null;index" json:"status"`
	SyncStatus    int             `gorm:"column:sync_status;default:0;index" json:"sync_status"`
	Notes         string          `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DiyDrinkOrder) TableName() string {
	return "diy_drink_orders"
}

// DiyDrinkIngredient links an order to its ingredients; unit price is
// stored redundantly for historical queries.
type DiyDrinkIngredient struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	OrderID      uint            `gorm:"column:order_id;not null;index" json:"order_id"`
	IngredientID uint            `gorm:"column:ingredient_id;not null" json:"ingredient_id"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (DiyDrinkIngredient) TableName() string {
	return "diy_drink_ingredients"
}
