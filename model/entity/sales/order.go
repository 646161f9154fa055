package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sales order states driven by the order endpoints.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order represents the orders table in the sales module. order_number
// is the business key returned to sync clients as order_id.
type Order struct {
	OrderNumber    string          `gorm:"column:order_number;primaryKey" json:"order_number"`
	OrderType      string          `gorm:"column:order_type;not null" json:"order_type"`
	OrderStatus    string          `gorm:"column:order_status;not null;index" json:"order_status"`
	TableNumber    string          `gorm:"column:table_number" json:"table_number,omitempty"`
	CustomerName   string          `gorm:"column:customer_name" json:"customer_name,omitempty"`
	CustomerPhone  string          `gorm:"column:customer_phone" json:"customer_phone,omitempty"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:decimal(10,2);default:0" json:"discount_amount"`
	FinalAmount    decimal.Decimal `gorm:"column:final_amount;type:decimal(10,2);not null" json:"final_amount"`
	PaymentMethod  string          `gorm:"column:payment_method" json:"payment_method,omitempty"`
	Notes          string          `gorm:"column:notes" json:"notes,omitempty"`
	// set by cross-module pushes; lets a retried push map back to the
	// order it already created
	IdempotencyKey string    `gorm:"column:idempotency_key;index" json:"idempotency_key,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderNumber;references:OrderNumber" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem represents order_items.
type OrderItem struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	OrderNumber string          `gorm:"column:order_number;not null;index" json:"order_number"`
	ItemName    string          `gorm:"column:item_name;not null" json:"item_name"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:decimal(10,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price"`
	Notes       string          `gorm:"column:notes" json:"notes,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
