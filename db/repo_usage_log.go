package db

import (
	"context"
	"errors"
	"time"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogUsageInput struct {
	EquipmentID  string
	Date         time.Time
	HoursUsed    float64
	AssignmentID *string
	WorkEntryID  *string
	Notes        string
}

// LogUsage appends a usage entry and rolls it into the equipment's
// total_usage_hours aggregate. The cap check, the insert and the atomic
// increment run under the equipment row lock; a unique-index violation on
// (equipment, date, work entry) maps to ErrDuplicateUsageLog the same way
// the advisory lookup does.
func (r *Repo) LogUsage(ctx context.Context, in LogUsageInput) (*models.UsageLog, float64, error) {
	if in.HoursUsed < 0 || in.HoursUsed > models.MaxDailyUsageHours {
		return nil, 0, &ValidationError{Field: "hours_used", Message: "must be between 0 and 24"}
	}
	day := toDay(in.Date)

	var entry *models.UsageLog
	var newTotal float64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eq models.Equipment
		if err := lockForUpdate(tx).
			First(&eq, "id = ? AND is_active = ?", in.EquipmentID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipmentNotFound
			}
			return err
		}

		if in.WorkEntryID != nil {
			var n int64
			if err := tx.Model(&models.UsageLog{}).
				Where("equipment_id = ? AND usage_date = ? AND work_entry_id = ?", in.EquipmentID, day, *in.WorkEntryID).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrDuplicateUsageLog
			}
		}

		var logged float64
		if err := tx.Model(&models.UsageLog{}).
			Where("equipment_id = ? AND usage_date = ?", in.EquipmentID, day).
			Select("COALESCE(SUM(hours_used), 0)").
			Scan(&logged).Error; err != nil {
			return err
		}
		if attempted := logged + in.HoursUsed; attempted > models.MaxDailyUsageHours {
			return &DailyLimitError{AttemptedHours: attempted, LimitHours: models.MaxDailyUsageHours}
		}

		e := &models.UsageLog{
			ID:           uuid.NewString(),
			EquipmentID:  in.EquipmentID,
			AssignmentID: in.AssignmentID,
			WorkEntryID:  in.WorkEntryID,
			UsageDate:    day,
			HoursUsed:    in.HoursUsed,
			Notes:        in.Notes,
		}
		if err := tx.Create(e).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Equipment{}).
			Where("id = ?", in.EquipmentID).
			Update("total_usage_hours", gorm.Expr("total_usage_hours + ?", in.HoursUsed)).Error; err != nil {
			return err
		}

		entry = e
		newTotal = eq.TotalUsageHours + in.HoursUsed
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, 0, ErrDuplicateUsageLog
		}
		return nil, 0, err
	}
	return entry, newTotal, nil
}

type UsageLogFilter struct {
	EquipmentID string
	Date        *time.Time
}

func (r *Repo) ListUsageLogs(ctx context.Context, f UsageLogFilter) ([]models.UsageLog, error) {
	q := r.DB.WithContext(ctx).Model(&models.UsageLog{}).Order("usage_date DESC, created_at DESC")
	if f.EquipmentID != "" {
		q = q.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.Date != nil {
		q = q.Where("usage_date = ?", toDay(*f.Date))
	}
	var ls []models.UsageLog
	if err := q.Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}

// toDay normalizes to midnight UTC so same-day entries compare equal.
func toDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
