package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"fieldops-backend/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateEquipment(ctx context.Context, eq *models.Equipment) error {
	return r.DB.WithContext(ctx).Create(eq).Error
}

func (r *Repo) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	var eq models.Equipment
	if err := r.DB.WithContext(ctx).First(&eq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// SoftDeleteEquipment flags the row inactive; rows are never hard-deleted
// while reservations or usage logs reference them.
func (r *Repo) SoftDeleteEquipment(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Equipment{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "status": models.EquipmentStatusRetired})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

// EquipmentRow is the admin listing view: the equipment plus whichever
// active reservation covers the current instant. Non-overlap of active
// reservations guarantees at most one such row.
type EquipmentRow struct {
	ID              string    `json:"id"`
	Serial          string    `json:"serial"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	TotalUsageHours float64   `json:"total_usage_hours"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	ReservationID *string    `json:"reservation_id,omitempty"`
	ProjectID     *string    `json:"project_id,omitempty"`
	ProjectName   *string    `json:"project_name,omitempty"`
	ReservedFrom  *time.Time `json:"reserved_from,omitempty"`
	ReservedUntil *time.Time `json:"reserved_until,omitempty"`
}

type EquipmentQuery struct {
	Q      string // substring match on serial/name
	Status string // "", "reserved", "available", "inactive"
	Page   int
	Size   int
}

type PagedEquipment struct {
	Total int64          `json:"total"`
	Items []EquipmentRow `json:"items"`
}

func (r *Repo) ListEquipmentWithCurrentReservation(ctx context.Context, q EquipmentQuery) (*PagedEquipment, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}
	offset := (q.Page - 1) * q.Size
	now := time.Now().UTC()

	db := r.DB.WithContext(ctx)
	base := db.
		Table(models.EquipmentTable+" e").
		Joins("LEFT JOIN "+models.ReservationTable+" cr ON cr.equipment_id = e.id AND cr.is_active = ? AND cr.reserved_from <= ? AND ? < cr.reserved_until",
			true, now, now).
		Joins("LEFT JOIN " + models.ProjectTable + " p ON p.id = cr.project_id")

	if s := strings.TrimSpace(q.Q); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		base = base.Where("LOWER(e.serial) LIKE ? OR LOWER(e.name) LIKE ?", pat, pat)
	}
	switch q.Status {
	case "reserved":
		base = base.Where("cr.id IS NOT NULL")
	case "available":
		base = base.Where("cr.id IS NULL AND e.is_active = ?", true)
	case "inactive":
		base = base.Where("e.is_active = ?", false)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("e.id").Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []EquipmentRow
	if err := base.
		Select(`
			e.id, e.serial, e.name, e.status, e.total_usage_hours, e.is_active, e.created_at, e.updated_at,
			cr.id AS reservation_id,
			cr.project_id,
			p.name AS project_name,
			cr.reserved_from,
			cr.reserved_until
		`).
		Order("e.created_at DESC").
		Offset(offset).
		Limit(q.Size).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return &PagedEquipment{Total: total, Items: rows}, nil
}
