package main

import (
	"CopiaTrack/config"
	"CopiaTrack/handlers"
	"CopiaTrack/migrations"
	"CopiaTrack/repositories"
	"CopiaTrack/routes"
	"CopiaTrack/services"
	"CopiaTrack/ui"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment as-is")
	}

	cfg := config.LoadConfig()
	logrus.Infof("Configurations successfully loaded: storage=%s addr=%s", cfg.StorageType, cfg.ServerAddr)

	// Select the store backend
	var store repositories.Store
	switch cfg.StorageType {
	case "redis":
		config.InitRedis(cfg)
		store = repositories.NewSnapshotRepository(config.RedisClient)
	default:
		db, err := repositories.InitDB(cfg)
		if err != nil {
			logrus.Fatal("Error connecting to database: ", err)
		}
		if err := migrations.RunMigrations(db); err != nil {
			logrus.Fatal("Error running migrations: ", err)
		}
		store = repositories.NewBackupRepository(db)
	}

	service := services.NewBackupService(store)
	state := ui.NewState()

	renderer, err := ui.NewRenderer()
	if err != nil {
		logrus.Fatal("Error parsing templates: ", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	routes.Register(e,
		handlers.NewBackupHandler(service),
		handlers.NewPageHandler(service, state),
	)

	if err := e.Start(cfg.ServerAddr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
