package db

import (
	"context"
	"errors"
	"strings"

	"fieldops-backend/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateMaterial(ctx context.Context, m *models.Material) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *Repo) FindMaterialByID(ctx context.Context, id string) (*models.Material, error) {
	var m models.Material
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) ListMaterials(ctx context.Context, q string, activeOnly bool) ([]models.Material, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Material{}).Order("name ASC")
	if q = strings.TrimSpace(q); q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	var ms []models.Material
	if err := tx.Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

// AdjustMaterialStock changes current_stock by delta as an atomic in-database
// update. Deliveries pass a positive delta, write-offs a negative one.
func (r *Repo) AdjustMaterialStock(ctx context.Context, id string, delta float64) (*models.Material, error) {
	var m models.Material
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMaterialNotFound
			}
			return err
		}
		if m.CurrentStock+delta < m.ReservedStock {
			return &ValidationError{Field: "delta", Message: "current_stock cannot drop below reserved_stock"}
		}
		if err := tx.Model(&models.Material{}).
			Where("id = ?", id).
			Update("current_stock", gorm.Expr("current_stock + ?", delta)).Error; err != nil {
			return err
		}
		m.CurrentStock += delta
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) SoftDeleteMaterial(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Material{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMaterialNotFound
	}
	return nil
}
