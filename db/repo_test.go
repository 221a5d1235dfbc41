package db

import (
	"testing"

	"fieldops-backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestRepo(t *testing.T) *Repo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewRepo(gdb)
}

func seedEquipment(t *testing.T, r *Repo, name string) *models.Equipment {
	t.Helper()
	eq := &models.Equipment{
		ID:       uuid.NewString(),
		Serial:   "SN-" + uuid.NewString()[:8],
		Name:     name,
		Status:   models.EquipmentStatusActive,
		IsActive: true,
	}
	if err := r.DB.Create(eq).Error; err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	return eq
}

func seedMaterial(t *testing.T, r *Repo, name string, stock float64) *models.Material {
	t.Helper()
	m := &models.Material{
		ID:           uuid.NewString(),
		Name:         name,
		Unit:         "kg",
		CurrentStock: stock,
		IsActive:     true,
	}
	if err := r.DB.Create(m).Error; err != nil {
		t.Fatalf("seed material: %v", err)
	}
	return m
}

func seedProject(t *testing.T, r *Repo, name string) *models.Project {
	t.Helper()
	p := &models.Project{ID: uuid.NewString(), Name: name, IsActive: true}
	if err := r.DB.Create(p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}
