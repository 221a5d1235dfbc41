package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"fieldops-backend/app"
	"fieldops-backend/cache"
	"fieldops-backend/db"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo  *db.Repo
	Stock *cache.StockCache
	Cfg   app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:  db.NewRepo(a.DB),
		Stock: a.StockCache(),
		Cfg:   a.Config,
	}
}

// respondRepoError maps the repo error taxonomy onto HTTP. Unknown errors
// are logged and reported without internals.
func respondRepoError(c *gin.Context, err error) {
	var conflict *db.ConflictError
	var validation *db.ValidationError
	var daily *db.DailyLimitError

	switch {
	case errors.Is(err, db.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid_interval", "message": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, app.H{
			"error":   "reservation_conflict",
			"message": conflict.Error(),
			"conflict": app.H{
				"project_name": conflict.ProjectName,
				"reserved_by":  conflict.ReservedBy,
				"from":         conflict.From.Format(time.RFC3339),
				"until":        conflict.Until.Format(time.RFC3339),
			},
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, app.H{"error": validation.Error()})
	case errors.As(err, &daily):
		c.JSON(http.StatusBadRequest, app.H{
			"error":           "daily_limit_exceeded",
			"message":         daily.Error(),
			"attempted_hours": daily.AttemptedHours,
		})
	case errors.Is(err, db.ErrDuplicateUsageLog):
		c.JSON(http.StatusConflict, app.H{"error": "duplicate_usage_log", "message": err.Error()})
	case errors.Is(err, db.ErrEquipmentNotFound),
		errors.Is(err, db.ErrMaterialNotFound),
		errors.Is(err, db.ErrAllocationNotFound),
		errors.Is(err, db.ErrReservationNotFound),
		errors.Is(err, db.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	default:
		log.Printf("repo error: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "internal error"})
	}
}
