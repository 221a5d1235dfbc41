package db

import (
	"context"
	"errors"
	"fmt"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateAllocationInput struct {
	MaterialID string
	ProjectID  string
	CrewID     *string
	Quantity   float64
	Notes      string
}

// CreateAllocation commits quantity out of a material's free stock to a
// project/crew. reserved_stock moves via an atomic in-database increment
// under the material row lock, and an allocate transaction is appended in
// the same storage transaction.
func (r *Repo) CreateAllocation(ctx context.Context, in CreateAllocationInput) (*models.Allocation, error) {
	if in.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Message: "must be greater than zero"}
	}

	var alloc *models.Allocation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mat models.Material
		if err := lockForUpdate(tx).
			First(&mat, "id = ? AND is_active = ?", in.MaterialID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMaterialNotFound
			}
			return err
		}

		var project models.Project
		if err := tx.First(&project, "id = ?", in.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		if free := mat.FreeStock(); in.Quantity > free {
			return &ValidationError{
				Field:   "quantity",
				Message: fmt.Sprintf("exceeds free stock: %.2f requested, %.2f available", in.Quantity, free),
			}
		}

		a := &models.Allocation{
			ID:                uuid.NewString(),
			MaterialID:        in.MaterialID,
			ProjectID:         in.ProjectID,
			CrewID:            in.CrewID,
			QuantityAllocated: in.Quantity,
			QuantityUsed:      0,
			QuantityRemaining: in.Quantity,
			Status:            models.AllocationStatusAllocated,
			Notes:             in.Notes,
		}
		if err := tx.Create(a).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Material{}).
			Where("id = ?", in.MaterialID).
			Update("reserved_stock", gorm.Expr("reserved_stock + ?", in.Quantity)).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.MaterialTransaction{
			ID:           uuid.NewString(),
			MaterialID:   in.MaterialID,
			AllocationID: &a.ID,
			Type:         models.TxTypeAllocate,
			Quantity:     in.Quantity,
			Notes:        in.Notes,
		}).Error; err != nil {
			return err
		}

		alloc = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

type UpdateAllocationInput struct {
	QuantityUsed *float64
	Status       string
	Notes        *string
}

// ReportUsage records consumption against an allocation. quantity_used is
// bounded by [0, quantity_allocated]; the status is recomputed from the
// quantities unless the caller passes a returned/lost override. A positive
// usage delta leaves the material's stock for good: current_stock and
// reserved_stock both drop by the delta, and a consume transaction is
// appended, all in the same storage transaction.
func (r *Repo) ReportUsage(ctx context.Context, id string, in UpdateAllocationInput) (*models.Allocation, error) {
	var alloc models.Allocation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&alloc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAllocationNotFound
			}
			return err
		}

		delta := 0.0
		if in.QuantityUsed != nil {
			used := *in.QuantityUsed
			if used < 0 {
				return &ValidationError{Field: "quantity_used", Message: "must not be negative"}
			}
			if used > alloc.QuantityAllocated {
				return &ValidationError{
					Field:   "quantity_used",
					Message: fmt.Sprintf("must not exceed quantity_allocated (%.2f)", alloc.QuantityAllocated),
				}
			}
			delta = used - alloc.QuantityUsed
			alloc.QuantityUsed = used
			alloc.QuantityRemaining = alloc.QuantityAllocated - used
		}

		alloc.Status = models.DeriveAllocationStatus(alloc.QuantityUsed, alloc.QuantityAllocated, in.Status)
		if in.Notes != nil {
			alloc.Notes = *in.Notes
		}

		if err := tx.Save(&alloc).Error; err != nil {
			return err
		}

		if delta > 0 {
			if err := tx.Model(&models.Material{}).
				Where("id = ?", alloc.MaterialID).
				Updates(map[string]any{
					"current_stock":  gorm.Expr("current_stock - ?", delta),
					"reserved_stock": gorm.Expr("CASE WHEN reserved_stock > ? THEN reserved_stock - ? ELSE 0 END", delta, delta),
				}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.MaterialTransaction{
				ID:           uuid.NewString(),
				MaterialID:   alloc.MaterialID,
				AllocationID: &alloc.ID,
				Type:         models.TxTypeConsume,
				Quantity:     delta,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &alloc, nil
}

// DeleteAllocation removes an allocation and hands its unused quantity back
// to free stock. The stock decrement, the return transaction and the row
// removal commit atomically; the decrement is floored at zero to tolerate
// counter drift. Deleting a fully used allocation returns 0.
func (r *Repo) DeleteAllocation(ctx context.Context, id string) (float64, error) {
	var returned float64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var alloc models.Allocation
		if err := lockForUpdate(tx).First(&alloc, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAllocationNotFound
			}
			return err
		}

		returned = alloc.QuantityRemaining
		if returned < 0 {
			returned = 0
		}

		if returned > 0 {
			if err := tx.Model(&models.Material{}).
				Where("id = ?", alloc.MaterialID).
				Update("reserved_stock",
					gorm.Expr("CASE WHEN reserved_stock > ? THEN reserved_stock - ? ELSE 0 END", returned, returned)).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&models.MaterialTransaction{
			ID:           uuid.NewString(),
			MaterialID:   alloc.MaterialID,
			AllocationID: &alloc.ID,
			Type:         models.TxTypeReturn,
			Quantity:     returned,
		}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Allocation{}, "id = ?", id).Error
	})
	if err != nil {
		return 0, err
	}
	return returned, nil
}

func (r *Repo) FindAllocationByID(ctx context.Context, id string) (*models.Allocation, error) {
	var a models.Allocation
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAllocationNotFound
		}
		return nil, err
	}
	return &a, nil
}

type AllocationFilter struct {
	MaterialID string
	ProjectID  string
	Status     string
}

func (r *Repo) ListAllocations(ctx context.Context, f AllocationFilter) ([]models.Allocation, error) {
	q := r.DB.WithContext(ctx).Model(&models.Allocation{}).Order("created_at DESC")
	if f.MaterialID != "" {
		q = q.Where("material_id = ?", f.MaterialID)
	}
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var as []models.Allocation
	if err := q.Find(&as).Error; err != nil {
		return nil, err
	}
	return as, nil
}

func (r *Repo) ListMaterialTransactions(ctx context.Context, materialID string) ([]models.MaterialTransaction, error) {
	q := r.DB.WithContext(ctx).Model(&models.MaterialTransaction{}).Order("created_at DESC")
	if materialID != "" {
		q = q.Where("material_id = ?", materialID)
	}
	var ts []models.MaterialTransaction
	if err := q.Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}
