package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outbound ticket states. Pending is the only non-terminal state.
const (
	OutboundStatusPending   = "pending"
	OutboundStatusFulfilled = "fulfilled"
	OutboundStatusCancelled = "cancelled"
)

// OutboundRecord represents the outbound_records table: one row per
// (outbound_no, item_name), each drawing stock from one inbound
// batch+item bucket. The link to inbound_records is a logical foreign
// key validated by the fulfillment engine, not by the schema.
type OutboundRecord struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	OutboundNo   string          `gorm:"column:outbound_no;not null;index" json:"outbound_no"`
	InboundNo    string          `gorm:"column:inbound_no;not null;index" json:"inbound_no"`
	ItemName     string          `gorm:"column:item_name;not null;index" json:"item_name"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:decimal(10,2);not null" json:"quantity"`
	Unit         string          `gorm:"column:unit;not null" json:"unit"`
	Status       string          `gorm:"column:status;type:varchar(16);not null;default:pending;index" json:"status"`
	OutboundTime *time.Time      `gorm:"column:outbound_time" json:"outbound_time,omitempty"`
	Receiver     string          `gorm:"column:receiver" json:"receiver,omitempty"`
	Approver     string          `gorm:"column:approver" json:"approver,omitempty"`
	Purpose      string          `gorm:"column:purpose" json:"purpose,omitempty"`
	Remarks      string          `gorm:"column:remarks" json:"remarks,omitempty"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OutboundRecord) TableName() string {
	return "outbound_records"
}
