package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"fieldops-backend/db"
	"fieldops-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestSrv(t *testing.T) *Srv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	// Stock stays nil: a nil cache is a permanent miss.
	return &Srv{Repo: db.NewRepo(gdb)}
}

func seedEquipment(t *testing.T, s *Srv, name string) *models.Equipment {
	t.Helper()
	eq := &models.Equipment{
		ID:       uuid.NewString(),
		Serial:   "SN-" + uuid.NewString()[:8],
		Name:     name,
		Status:   models.EquipmentStatusActive,
		IsActive: true,
	}
	if err := s.Repo.DB.Create(eq).Error; err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	return eq
}

func seedMaterial(t *testing.T, s *Srv, name string, stock float64) *models.Material {
	t.Helper()
	m := &models.Material{ID: uuid.NewString(), Name: name, Unit: "kg", CurrentStock: stock, IsActive: true}
	if err := s.Repo.DB.Create(m).Error; err != nil {
		t.Fatalf("seed material: %v", err)
	}
	return m
}

func seedProject(t *testing.T, s *Srv, name string) *models.Project {
	t.Helper()
	p := &models.Project{ID: uuid.NewString(), Name: name, IsActive: true}
	if err := s.Repo.DB.Create(p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func jsonRequest(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
