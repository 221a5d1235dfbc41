package models

import "time"

const UsageLogTable = "fld_usage_logs"

// UsageLog is an append-only record of equipment usage for one calendar day.
// Uniqueness over (equipment_id, usage_date, work_entry_id) prevents double
// logging of the same work event; the per-day sum of hours_used is capped at
// MaxDailyUsageHours.
type UsageLog struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	EquipmentID  string  `gorm:"type:uuid;index:idx_usage_equipment_date,priority:1;not null" json:"equipment_id"`
	AssignmentID *string `gorm:"type:uuid" json:"assignment_id,omitempty"`
	WorkEntryID  *string `gorm:"type:uuid" json:"work_entry_id,omitempty"`

	UsageDate time.Time `gorm:"type:date;index:idx_usage_equipment_date,priority:2;not null" json:"usage_date"`
	HoursUsed float64   `gorm:"not null" json:"hours_used"`
	Notes     string    `gorm:"size:255" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (UsageLog) TableName() string { return UsageLogTable }
