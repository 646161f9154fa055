package purchase

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order lifecycle. Transitions are enforced by
// service/purchase, not by the schema.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusReceived  = "received"
	StatusPaid      = "paid"
	StatusInbound   = "inbound" // applied by inbound intake, not by batch operations
	StatusCancelled = "cancelled"
)

// PurchaseOrder represents the purchase_orders table. The business key
// is order_id; items live in purchase_order_items.
type PurchaseOrder struct {
	OrderID      string          `gorm:"column:order_id;primaryKey" json:"order_id"`
	SupplierID   string          `gorm:"column:supplier_id;type:varchar(32);not null" json:"supplier_id"`
	OrderDate    string          `gorm:"column:order_date;type:date;not null" json:"order_date"`
	DeliveryDate string          `gorm:"column:delivery_date;type:date" json:"delivery_date,omitempty"`
	Status       string          `gorm:"column:status;type:varchar(16);not null;default:draft;index" json:"status"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2)" json:"total_amount"`
	Remarks      string          `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedBy    string          `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedBy    string          `gorm:"column:updated_by" json:"updated_by,omitempty"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"items,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem represents purchase_order_items.
type PurchaseOrderItem struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	OrderID       string          `gorm:"column:order_id;not null;index" json:"order_id"`
	ItemName      string          `gorm:"column:item_name;not null" json:"item_name"`
	Specification string          `gorm:"column:specification" json:"specification,omitempty"`
	Unit          string          `gorm:"column:unit" json:"unit"`
	Quantity      decimal.Decimal `gorm:"column:quantity;type:decimal(10,2);not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price"`
	Remarks       string          `gorm:"column:remarks" json:"remarks,omitempty"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
