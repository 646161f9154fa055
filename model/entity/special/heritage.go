package special

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trial / DIY order states. Only "completed" records are swept into
// the sales module.
const (
	RecordStatusPending    = "pending"
	RecordStatusInProgress = "in_progress"
	RecordStatusCompleted  = "completed"
	RecordStatusCancelled  = "cancelled"
)

// Sync flags: idempotence is by this local flag, not by remote
// deduplication.
const (
	SyncStatusUnsynced = 0
	SyncStatusSynced   = 1
)

// HeritageDish represents heritage_dishes in the special DB.
type HeritageDish struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	DishID        uint            `gorm:"column:dish_id;not null;uniqueIndex" json:"dish_id"`
	DishName      string          `gorm:"column:dish_name;not null" json:"dish_name"`
	History       string          `gorm:"column:history" json:"history,omitempty"`
	Craftsmanship string          `gorm:"column:craftsmanship" json:"craftsmanship,omitempty"`
	TrialPrice    decimal.Decimal `gorm:"column:trial_price;type:decimal(10,2)" json:"trial_price"`
	Status        int             `gorm:"column:status;default:1" json:"status"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (HeritageDish) TableName() string {
	return "heritage_dishes"
}

// HeritageDishTrial represents heritage_dish_trials. RemoteOrderID is
// the sales-module order id written back after a successful sync.
type HeritageDishTrial struct {
	ID             uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	HeritageDishID uint            `gorm:"column:heritage_dish_id;not null;index" json:"heritage_dish_id"`
	CustomerName   string          `gorm:"column:customer_name;not null" json:"customer_name"`
	Phone          string          `gorm:"column:phone" json:"phone,omitempty"`
	TrialTime      time.Time       `gorm:"column:trial_time;not null" json:"trial_time"`
	Status         string          `gorm:"column:status;not null;index" json:"status"`
	RemoteOrderID  string          `gorm:"column:remote_order_id" json:"remote_order_id,omitempty"`
	TrialPrice     decimal.Decimal `gorm:"column:trial_price;type:decimal(10,2)" json:"trial_price"`
	Notes          string          `gorm:"column:notes" json:"notes,omitempty"`
	SyncStatus     int             `gorm:"column:sync_status;default:0;index" json:"sync_status"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (HeritageDishTrial) TableName() string {
	return "heritage_dish_trials"
}
