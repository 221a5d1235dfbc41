package models

import "time"

const AllocationTable = "fld_allocations"

// Allocation statuses. The first three are derived from quantities;
// returned/lost only ever appear via an explicit override.
const (
	AllocationStatusAllocated     = "allocated"
	AllocationStatusPartiallyUsed = "partially_used"
	AllocationStatusFullyUsed     = "fully_used"
	AllocationStatusReturned      = "returned"
	AllocationStatusLost          = "lost"
)

// Allocation commits a fixed material quantity to a project/crew.
// quantity_used is clamped to [0, quantity_allocated] and
// quantity_remaining is always allocated - used.
type Allocation struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"id"`
	MaterialID string  `gorm:"type:uuid;index;not null" json:"material_id"`
	ProjectID  string  `gorm:"type:uuid;index;not null" json:"project_id"`
	CrewID     *string `gorm:"type:uuid;index" json:"crew_id,omitempty"`

	QuantityAllocated float64 `gorm:"not null" json:"quantity_allocated"`
	QuantityUsed      float64 `gorm:"not null;default:0" json:"quantity_used"`
	QuantityRemaining float64 `gorm:"not null" json:"quantity_remaining"`

	Status string `gorm:"size:20;not null;default:'allocated'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Allocation) TableName() string { return AllocationTable }

// IsOverrideStatus reports whether s bypasses the derived-status rules.
func IsOverrideStatus(s string) bool {
	return s == AllocationStatusReturned || s == AllocationStatusLost
}

// DeriveAllocationStatus computes the status as a pure function of the
// quantities. A returned/lost override wins; anything else is ignored.
func DeriveAllocationStatus(used, allocated float64, override string) string {
	if IsOverrideStatus(override) {
		return override
	}
	switch {
	case used <= 0:
		return AllocationStatusAllocated
	case used < allocated:
		return AllocationStatusPartiallyUsed
	default:
		return AllocationStatusFullyUsed
	}
}
