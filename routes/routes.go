package routes

import (
	"time"

	"fieldops-backend/app"
	"fieldops-backend/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	reservationCtl := controllers.NewReservationController(s)
	allocationCtl := controllers.NewAllocationController(s)
	usageCtl := controllers.NewUsageLogController(s)
	equipmentCtl := controllers.NewEquipmentController(s)
	materialCtl := controllers.NewMaterialController(s)
	projectCtl := controllers.NewProjectController(s)
	userCtl := controllers.NewUserController(s)

	identityMW := app.IdentityRequired(s.Repo, a.Config)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// Reservations: conflict-checked booking on equipment.
	reservations := r.Group("/api/reservations", identityMW, seenMW)
	{
		reservations.GET("", reservationCtl.List)
		reservations.POST("", reservationCtl.Create)
		reservations.POST("/:id/end", reservationCtl.End)
	}

	// Allocations: material stock ledger.
	allocations := r.Group("/api/allocations", identityMW, seenMW)
	{
		allocations.GET("", allocationCtl.List)
		allocations.POST("", allocationCtl.Create)
		allocations.PATCH("/:id", allocationCtl.Update)
		allocations.DELETE("/:id", allocationCtl.Delete)
	}

	// Usage logs: daily equipment hours.
	usage := r.Group("/api/usage-logs", identityMW, seenMW)
	{
		usage.GET("", usageCtl.List)
		usage.POST("", usageCtl.Create)
	}

	equipment := r.Group("/api/equipment", identityMW, seenMW)
	{
		equipment.GET("", equipmentCtl.List)
		equipment.GET("/:id", equipmentCtl.Get)
	}
	equipmentAdmin := r.Group("/api/equipment", identityMW, adminMW)
	{
		equipmentAdmin.POST("", equipmentCtl.Create)
		equipmentAdmin.DELETE("/:id", equipmentCtl.Delete)
	}

	materials := r.Group("/api/materials", identityMW, seenMW)
	{
		materials.GET("", materialCtl.List)
		materials.GET("/:id/stock", materialCtl.GetStock)
		materials.GET("/:id/transactions", allocationCtl.ListTransactions)
	}
	materialsAdmin := r.Group("/api/materials", identityMW, adminMW)
	{
		materialsAdmin.POST("", materialCtl.Create)
		materialsAdmin.POST("/:id/adjust-stock", materialCtl.AdjustStock)
		materialsAdmin.DELETE("/:id", materialCtl.Delete)
	}

	projects := r.Group("/api/projects", identityMW, seenMW)
	{
		projects.GET("", projectCtl.List)
	}
	projectsAdmin := r.Group("/api/projects", identityMW, adminMW)
	{
		projectsAdmin.POST("", projectCtl.Create)
	}

	users := r.Group("/api/users", identityMW, adminMW)
	{
		users.GET("", userCtl.ListUsers)
		users.GET("/:id", userCtl.GetUser)
	}
}
