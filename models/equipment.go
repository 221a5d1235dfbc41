package models

import "time"

const EquipmentTable = "fld_equipment"

// Equipment lifecycle statuses.
const (
	EquipmentStatusActive      = "active"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusRetired     = "retired"
)

// MaxDailyUsageHours caps the cumulative hours that can be logged
// against one piece of equipment per calendar day.
const MaxDailyUsageHours = 24.0

type Equipment struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Serial string `gorm:"size:120;uniqueIndex;not null" json:"serial"`
	Name   string `gorm:"size:200;not null" json:"name"`
	Status string `gorm:"size:20;not null;default:'active'" json:"status"`

	// Authoritative running aggregate, incremented on every usage log.
	// Never recomputed from entries at read time.
	TotalUsageHours float64 `gorm:"not null;default:0" json:"total_usage_hours"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Equipment) TableName() string { return EquipmentTable }
