package models

import "time"

const ReservationTable = "fld_reservations"

// Reservation is a time-bounded exclusive claim on one piece of equipment.
// Intervals are half-open [ReservedFrom, ReservedUntil): back-to-back
// bookings do not conflict. Active reservations for the same equipment must
// be pairwise non-overlapping; the authoritative guarantee is the Postgres
// exclusion constraint created in db.Migrate.
type Reservation struct {
	ID               string  `gorm:"type:uuid;primaryKey" json:"id"`
	EquipmentID      string  `gorm:"type:uuid;index;not null" json:"equipment_id"`
	ProjectID        *string `gorm:"type:uuid;index" json:"project_id,omitempty"`
	ReservedByUserID *string `gorm:"type:uuid" json:"reserved_by_user_id,omitempty"`

	ReservedFrom  time.Time `gorm:"index;not null" json:"reserved_from"`
	ReservedUntil time.Time `gorm:"not null" json:"reserved_until"`

	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
	Notes    string `gorm:"size:255" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Reservation) TableName() string { return ReservationTable }

// IntervalsOverlap reports whether two half-open intervals [aFrom, aUntil)
// and [bFrom, bUntil) intersect.
func IntervalsOverlap(aFrom, aUntil, bFrom, bUntil time.Time) bool {
	return aFrom.Before(bUntil) && bFrom.Before(aUntil)
}

// Overlaps reports whether the reservation intersects [from, until).
func (r *Reservation) Overlaps(from, until time.Time) bool {
	return IntervalsOverlap(r.ReservedFrom, r.ReservedUntil, from, until)
}
