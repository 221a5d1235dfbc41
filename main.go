package main

import (
	"context"
	"log"
	"os"

	"fieldops-backend/app"
	"fieldops-backend/config"
	"fieldops-backend/controllers"
	"fieldops-backend/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	srv := controllers.GetSrv(application)
	app.EnsureBootstrapAdmin(context.Background(), application.Config, srv.Repo)

	r := application.Router

	r.GET("/healthz", func(c *app.Ctx) {
		sqlDB, err := application.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(503, app.H{"ok": false})
			return
		}
		c.JSON(200, app.H{"ok": true})
	})

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
