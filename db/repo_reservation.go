package db

import (
	"context"
	"errors"
	"time"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReservationInput struct {
	EquipmentID      string
	ProjectID        *string
	ReservedByUserID *string
	From             time.Time
	Until            time.Time
	Notes            string
}

// CheckAndReserve books equipment for a half-open interval [From, Until).
//
// The overlap query inside the transaction is advisory: it exists to produce
// a descriptive ConflictError before touching anything. Two concurrent
// callers can both pass it; the Postgres exclusion constraint is the real
// arbiter, and its violation is translated into the same ConflictError.
// Exactly one row is inserted on success, nothing is mutated on conflict.
func (r *Repo) CheckAndReserve(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	if !in.From.Before(in.Until) {
		return nil, ErrInvalidInterval
	}

	var res *models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq models.Equipment
		if err := lockForUpdate(tx).
			First(&eq, "id = ? AND is_active = ?", in.EquipmentID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}

		if conflict, err := r.findConflict(tx, in.EquipmentID, in.From, in.Until); err != nil {
			return err
		} else if conflict != nil {
			return conflict
		}

		rv := &models.Reservation{
			ID:               uuid.NewString(),
			EquipmentID:      in.EquipmentID,
			ProjectID:        in.ProjectID,
			ReservedByUserID: in.ReservedByUserID,
			ReservedFrom:     in.From.UTC(),
			ReservedUntil:    in.Until.UTC(),
			IsActive:         true,
			Notes:            in.Notes,
		}
		if err := tx.Create(rv).Error; err != nil {
			return err
		}
		res = rv
		return nil
	})
	if err != nil {
		if isExclusionViolation(err) {
			// Lost the race: someone committed an overlapping reservation
			// between our advisory check and the insert. Report it the same
			// way the advisory path would have.
			if conflict, lookupErr := r.findConflict(r.DB.WithContext(ctx), in.EquipmentID, in.From, in.Until); lookupErr == nil && conflict != nil {
				return nil, conflict
			}
			return nil, &ConflictError{From: in.From, Until: in.Until}
		}
		return nil, err
	}
	return res, nil
}

// findConflict returns the first active reservation intersecting
// [from, until), decorated with project and user names for the error
// payload. Which row is "first" when several overlap is undefined.
func (r *Repo) findConflict(tx *gorm.DB, equipmentID string, from, until time.Time) (*ConflictError, error) {
	var existing models.Reservation
	err := tx.
		Where("equipment_id = ? AND is_active = ?", equipmentID, true).
		Where("reserved_from < ? AND ? < reserved_until", until, from).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	conflict := &ConflictError{
		ReservationID: existing.ID,
		From:          existing.ReservedFrom,
		Until:         existing.ReservedUntil,
	}
	if existing.ProjectID != nil {
		var p models.Project
		if err := tx.First(&p, "id = ?", *existing.ProjectID).Error; err == nil {
			conflict.ProjectName = p.Name
		}
	}
	if existing.ReservedByUserID != nil {
		// Display name only; the raw user id never leaves the service.
		var u models.User
		if err := tx.First(&u, "id = ?", *existing.ReservedByUserID).Error; err == nil {
			conflict.ReservedBy = u.DisplayName
		}
	}
	return conflict, nil
}

// EndReservation deactivates a reservation, clamping reserved_until to now
// when the interval still extends into the future. Only the active flag and
// the until boundary ever change in place; ending twice is a no-op.
func (r *Repo) EndReservation(ctx context.Context, id string) (*models.Reservation, error) {
	var rv models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&rv, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if !rv.IsActive {
			return nil
		}
		now := time.Now().UTC()
		rv.IsActive = false
		if rv.ReservedUntil.After(now) && rv.ReservedFrom.Before(now) {
			rv.ReservedUntil = now
		}
		return tx.Save(&rv).Error
	})
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

type ReservationFilter struct {
	EquipmentID string
	ProjectID   string
	Active      *bool
}

func (r *Repo) ListReservations(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	q := r.DB.WithContext(ctx).Model(&models.Reservation{}).Order("reserved_from DESC")
	if f.EquipmentID != "" {
		q = q.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	var rs []models.Reservation
	if err := q.Find(&rs).Error; err != nil {
		return nil, err
	}
	return rs, nil
}
