package controllers

import (
	"net/http"
	"strconv"

	"fieldops-backend/app"
	"fieldops-backend/db"
	"fieldops-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EquipmentController struct{ *Srv }

func NewEquipmentController(s *Srv) *EquipmentController { return &EquipmentController{Srv: s} }

// POST /api/equipment (admin)
func (ec *EquipmentController) Create(c *gin.Context) {
	var in struct {
		Name   string `json:"name" binding:"required"`
		Serial string `json:"serial" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	eq := &models.Equipment{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Serial:   in.Serial,
		Status:   models.EquipmentStatusActive,
		IsActive: true,
	}
	if err := ec.Repo.CreateEquipment(c.Request.Context(), eq); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, eq)
}

// GET /api/equipment (paged, with current reservation)
func (ec *EquipmentController) List(c *gin.Context) {
	q := db.EquipmentQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := ec.Repo.ListEquipmentWithCurrentReservation(c.Request.Context(), q)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"total": res.Total, "items": res.Items})
}

// GET /api/equipment/:id
func (ec *EquipmentController) Get(c *gin.Context) {
	eq, err := ec.Repo.FindEquipmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

// DELETE /api/equipment/:id (admin, soft delete)
func (ec *EquipmentController) Delete(c *gin.Context) {
	if err := ec.Repo.SoftDeleteEquipment(c.Request.Context(), c.Param("id")); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true})
}
