package db

import (
	"context"
	"errors"

	"fieldops-backend/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateProject(ctx context.Context, p *models.Project) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *Repo) FindProjectByID(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListProjects(ctx context.Context) ([]models.Project, error) {
	var ps []models.Project
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&ps).Error
	return ps, err
}
