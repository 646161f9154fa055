package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// InboundRecord represents the inbound_records table: one row per
// (inbound_no, item_name) actually received. The quantity field IS the
// live stock for that batch+item bucket; there is no separate current-
// stock table. Only outbound fulfillment mutates it.
type InboundRecord struct {
	ID              uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	InboundNo       string          `gorm:"column:inbound_no;not null;uniqueIndex:idx_inbound_item;index" json:"inbound_no"`
	PurchaseNo      string          `gorm:"column:purchase_no;not null;index" json:"purchase_no"`
	ItemName        string          `gorm:"column:item_name;not null;uniqueIndex:idx_inbound_item;index" json:"item_name"`
	Quantity        decimal.Decimal `gorm:"column:quantity;type:decimal(10,2);not null" json:"quantity"`
	Unit            string          `gorm:"column:unit;not null" json:"unit"`
	InboundTime     time.Time       `gorm:"column:inbound_time;not null;index" json:"inbound_time"`
	QualityCheck    bool            `gorm:"column:quality_check;not null" json:"quality_check"`
	Inspector       string          `gorm:"column:inspector;not null" json:"inspector"`
	StorageLocation string          `gorm:"column:storage_location" json:"storage_location,omitempty"`
	Remarks         string          `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InboundRecord) TableName() string {
	return "inbound_records"
}
