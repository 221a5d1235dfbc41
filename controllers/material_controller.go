package controllers

import (
	"net/http"

	"fieldops-backend/app"
	"fieldops-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MaterialController struct{ *Srv }

func NewMaterialController(s *Srv) *MaterialController { return &MaterialController{Srv: s} }

// POST /api/materials (admin)
func (mc *MaterialController) Create(c *gin.Context) {
	var in struct {
		Name         string  `json:"name" binding:"required"`
		Unit         string  `json:"unit" binding:"required"`
		CurrentStock float64 `json:"current_stock"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.CurrentStock < 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "current_stock: must not be negative"})
		return
	}
	m := &models.Material{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		IsActive:     true,
	}
	if err := mc.Repo.CreateMaterial(c.Request.Context(), m); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /api/materials
func (mc *MaterialController) List(c *gin.Context) {
	ms, err := mc.Repo.ListMaterials(c.Request.Context(), c.Query("q"), c.Query("active") == "true")
	if err != nil {
		respondRepoError(c, err)
		return
	}
	items := make([]app.H, 0, len(ms))
	for _, m := range ms {
		items = append(items, app.H{
			"id":             m.ID,
			"name":           m.Name,
			"unit":           m.Unit,
			"current_stock":  m.CurrentStock,
			"reserved_stock": m.ReservedStock,
			"free_stock":     m.FreeStock(),
			"is_active":      m.IsActive,
		})
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// GET /api/materials/:id/stock
// Free-stock snapshot, served from the Redis cache when fresh.
func (mc *MaterialController) GetStock(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if snap, ok := mc.Stock.Get(ctx, id); ok {
		c.JSON(http.StatusOK, app.H{
			"material_id":    id,
			"current_stock":  snap.CurrentStock,
			"reserved_stock": snap.ReservedStock,
			"free_stock":     snap.FreeStock,
			"cached":         true,
		})
		return
	}

	m, err := mc.Repo.FindMaterialByID(ctx, id)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	mc.Stock.Set(ctx, id, m.CurrentStock, m.ReservedStock)
	c.JSON(http.StatusOK, app.H{
		"material_id":    m.ID,
		"current_stock":  m.CurrentStock,
		"reserved_stock": m.ReservedStock,
		"free_stock":     m.FreeStock(),
		"cached":         false,
	})
}

// POST /api/materials/:id/adjust-stock (admin)
// Deliveries (positive delta) and write-offs (negative delta).
func (mc *MaterialController) AdjustStock(c *gin.Context) {
	var in struct {
		Delta *float64 `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	m, err := mc.Repo.AdjustMaterialStock(c.Request.Context(), c.Param("id"), *in.Delta)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	mc.Stock.Invalidate(c.Request.Context(), m.ID)
	c.JSON(http.StatusOK, app.H{"success": true, "material": m})
}

// DELETE /api/materials/:id (admin, soft delete)
func (mc *MaterialController) Delete(c *gin.Context) {
	if err := mc.Repo.SoftDeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		respondRepoError(c, err)
		return
	}
	mc.Stock.Invalidate(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, app.H{"success": true})
}
