package controllers

import (
	"net/http"
	"time"

	"fieldops-backend/app"
	"fieldops-backend/db"

	"github.com/gin-gonic/gin"
)

type UsageLogController struct{ *Srv }

func NewUsageLogController(s *Srv) *UsageLogController { return &UsageLogController{Srv: s} }

type createUsageLogReq struct {
	EquipmentID  string   `json:"equipment_id" binding:"required"`
	UsageDate    string   `json:"usage_date" binding:"required"` // YYYY-MM-DD
	HoursUsed    *float64 `json:"hours_used" binding:"required"`
	AssignmentID *string  `json:"assignment_id"`
	WorkEntryID  *string  `json:"work_entry_id"`
	Notes        string   `json:"notes"`
}

// POST /api/usage-logs
func (uc *UsageLogController) Create(c *gin.Context) {
	var in createUsageLogReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	day, err := time.Parse("2006-01-02", in.UsageDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "usage_date must be YYYY-MM-DD"})
		return
	}

	entry, total, err := uc.Repo.LogUsage(c.Request.Context(), db.LogUsageInput{
		EquipmentID:  in.EquipmentID,
		Date:         day,
		HoursUsed:    *in.HoursUsed,
		AssignmentID: in.AssignmentID,
		WorkEntryID:  in.WorkEntryID,
		Notes:        in.Notes,
	})
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{
		"success":               true,
		"usage_log":             entry,
		"equipment_total_hours": total,
	})
}

// GET /api/usage-logs
func (uc *UsageLogController) List(c *gin.Context) {
	f := db.UsageLogFilter{EquipmentID: c.Query("equipment_id")}
	if v := c.Query("date"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		f.Date = &day
	}
	ls, err := uc.Repo.ListUsageLogs(c.Request.Context(), f)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": ls})
}
