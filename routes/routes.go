package routes

import (
	"CopiaTrack/handlers"
	"CopiaTrack/middlewares"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register wires every route of the service onto the echo instance.
func Register(e *echo.Echo, backups *handlers.BackupHandler, page *handlers.PageHandler) {
	e.Use(middlewares.RecoveryMiddleware())
	e.Use(middlewares.ErrorHandler())

	// JSON API
	e.GET("/backups", backups.List)
	e.POST("/backups", backups.Save)

	// Checklist page
	e.GET("/", page.Index)
	e.POST("/select", page.Select)
	e.POST("/save", page.Save)
	e.GET("/export", page.Export)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
