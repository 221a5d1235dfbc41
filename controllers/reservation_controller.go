package controllers

import (
	"net/http"
	"time"

	"fieldops-backend/app"
	"fieldops-backend/db"

	"github.com/gin-gonic/gin"
)

type ReservationController struct{ *Srv }

func NewReservationController(s *Srv) *ReservationController { return &ReservationController{Srv: s} }

type createReservationReq struct {
	EquipmentID      string    `json:"equipment_id" binding:"required"`
	ProjectID        *string   `json:"project_id"`
	ReservedByUserID *string   `json:"reserved_by_user_id"`
	ReservedFrom     time.Time `json:"reserved_from" binding:"required"`
	ReservedUntil    time.Time `json:"reserved_until" binding:"required"`
	Notes            string    `json:"notes"`
}

// POST /api/reservations
func (rc *ReservationController) Create(c *gin.Context) {
	var in createReservationReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	reservedBy := in.ReservedByUserID
	if reservedBy == nil {
		if v, ok := c.Get("userID"); ok {
			if uid, _ := v.(string); uid != "" {
				reservedBy = &uid
			}
		}
	}

	rv, err := rc.Repo.CheckAndReserve(c.Request.Context(), db.CreateReservationInput{
		EquipmentID:      in.EquipmentID,
		ProjectID:        in.ProjectID,
		ReservedByUserID: reservedBy,
		From:             in.ReservedFrom,
		Until:            in.ReservedUntil,
		Notes:            in.Notes,
	})
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"reservation": rv})
}

// POST /api/reservations/:id/end
func (rc *ReservationController) End(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing reservation id"})
		return
	}
	rv, err := rc.Repo.EndReservation(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "reservation": rv})
}

// GET /api/reservations
func (rc *ReservationController) List(c *gin.Context) {
	f := db.ReservationFilter{
		EquipmentID: c.Query("equipment_id"),
		ProjectID:   c.Query("project_id"),
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		f.Active = &active
	}
	rs, err := rc.Repo.ListReservations(c.Request.Context(), f)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": rs})
}
