package special

import (
	"time"

	"gorm.io/datatypes"
)

// Sync kinds and outcomes recorded in sync_logs.
const (
	SyncKindHeritageTrial = "heritage_trial"
	SyncKindDiyOrder      = "diy_order"

	SyncOutcomeSuccess = "success"
	SyncOutcomeFailed  = "failed"
)

// SyncLog is the append-only record of sync attempts against the sales
// module. Rows are never updated or deleted; the payload column keeps
// the exact order body that was sent.
type SyncLog struct {
	ID           uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	SyncType     string         `gorm:"column:sync_type;not null;index" json:"sync_type"`
	RecordID     uint           `gorm:"column:record_id;not null;index" json:"record_id"`
	Status       string         `gorm:"column:status;not null" json:"status"`
	ErrorMessage string         `gorm:"column:error_message" json:"error_message,omitempty"`
	Payload      datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SyncLog) TableName() string {
	return "sync_logs"
}
