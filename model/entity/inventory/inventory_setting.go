package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySetting holds per-item warning thresholds. Items without a
// row fall back to the global rule (0 = red, <=1 = yellow).
type InventorySetting struct {
	ID                     uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	ItemName               string          `gorm:"column:item_name;not null;uniqueIndex" json:"item_name"`
	WarningThresholdRed    decimal.Decimal `gorm:"column:warning_threshold_red;type:decimal(10,2);not null" json:"warning_threshold_red"`
	WarningThresholdYellow decimal.Decimal `gorm:"column:warning_threshold_yellow;type:decimal(10,2);not null" json:"warning_threshold_yellow"`
	CreatedAt              time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InventorySetting) TableName() string {
	return "inventory_settings"
}
