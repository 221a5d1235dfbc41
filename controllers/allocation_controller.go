package controllers

import (
	"net/http"

	"fieldops-backend/app"
	"fieldops-backend/db"
	"fieldops-backend/models"

	"github.com/gin-gonic/gin"
)

type AllocationController struct{ *Srv }

func NewAllocationController(s *Srv) *AllocationController { return &AllocationController{Srv: s} }

type createAllocationReq struct {
	MaterialID string  `json:"material_id" binding:"required"`
	ProjectID  string  `json:"project_id" binding:"required"`
	CrewID     *string `json:"crew_id"`
	Quantity   float64 `json:"quantity" binding:"required"`
	Notes      string  `json:"notes"`
}

// POST /api/allocations
func (ac *AllocationController) Create(c *gin.Context) {
	var in createAllocationReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	alloc, err := ac.Repo.CreateAllocation(c.Request.Context(), db.CreateAllocationInput{
		MaterialID: in.MaterialID,
		ProjectID:  in.ProjectID,
		CrewID:     in.CrewID,
		Quantity:   in.Quantity,
		Notes:      in.Notes,
	})
	if err != nil {
		respondRepoError(c, err)
		return
	}
	ac.Stock.Invalidate(c.Request.Context(), in.MaterialID)
	c.JSON(http.StatusCreated, app.H{"success": true, "allocation": alloc})
}

type updateAllocationReq struct {
	QuantityUsed *float64 `json:"quantity_used"`
	Status       string   `json:"status"`
	Notes        *string  `json:"notes"`
}

// PATCH /api/allocations/:id
func (ac *AllocationController) Update(c *gin.Context) {
	id := c.Param("id")
	var in updateAllocationReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Status != "" && !knownAllocationStatus(in.Status) {
		c.JSON(http.StatusBadRequest, app.H{"error": "status: unknown value " + in.Status})
		return
	}

	alloc, err := ac.Repo.ReportUsage(c.Request.Context(), id, db.UpdateAllocationInput{
		QuantityUsed: in.QuantityUsed,
		Status:       in.Status,
		Notes:        in.Notes,
	})
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "allocation": alloc})
}

// DELETE /api/allocations/:id
func (ac *AllocationController) Delete(c *gin.Context) {
	id := c.Param("id")

	alloc, err := ac.Repo.FindAllocationByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	returned, err := ac.Repo.DeleteAllocation(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	ac.Stock.Invalidate(c.Request.Context(), alloc.MaterialID)
	c.JSON(http.StatusOK, app.H{"success": true, "returned_to_stock": returned})
}

// GET /api/allocations
func (ac *AllocationController) List(c *gin.Context) {
	as, err := ac.Repo.ListAllocations(c.Request.Context(), db.AllocationFilter{
		MaterialID: c.Query("material_id"),
		ProjectID:  c.Query("project_id"),
		Status:     c.Query("status"),
	})
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": as})
}

// GET /api/materials/:id/transactions
func (ac *AllocationController) ListTransactions(c *gin.Context) {
	ts, err := ac.Repo.ListMaterialTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": ts})
}

func knownAllocationStatus(s string) bool {
	switch s {
	case models.AllocationStatusAllocated,
		models.AllocationStatusPartiallyUsed,
		models.AllocationStatusFullyUsed,
		models.AllocationStatusReturned,
		models.AllocationStatusLost:
		return true
	}
	return false
}
