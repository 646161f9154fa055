package purchase

import "time"

// Supplier represents the suppliers table. CRUD around it is a thin
// collaborator; it exists here for joins on supplier name.
type Supplier struct {
	Code          string    `gorm:"column:code;primaryKey" json:"code"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	ContactPerson string    `gorm:"column:contact_person" json:"contact_person,omitempty"`
	ContactPhone  string    `gorm:"column:contact_phone" json:"contact_phone,omitempty"`
	Address       string    `gorm:"column:address" json:"address,omitempty"`
	SupplyType    string    `gorm:"column:supply_type" json:"supply_type,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
