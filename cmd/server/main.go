package main

import (
	"log/slog"
	"os"

	"github.com/mhafidz976/penjadwalan2/config"
	"github.com/mhafidz976/penjadwalan2/internal/handlers"
	"github.com/mhafidz976/penjadwalan2/internal/routes"
	"github.com/mhafidz976/penjadwalan2/internal/scheduling"
	"github.com/mhafidz976/penjadwalan2/internal/seed"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
)

func main() {
	config.InitJwtKey()
	config.ConnectDB()
	config.ConnectRedis()
	if err := config.InitGoogleServices(); err != nil {
		slog.Error("Не удалось инициализировать Gemini", "error", err)
		os.Exit(1)
	}

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Lab{},
		&models.Course{},
		&models.Schedule{},
	); err != nil {
		slog.Error("Ошибка миграции схемы", "error", err)
		os.Exit(1)
	}

	scope, err := scheduling.ParseScopeMode(os.Getenv("SCHEDULE_SCOPE"))
	if err != nil {
		slog.Error("Некорректное значение SCHEDULE_SCOPE", "error", err)
		os.Exit(1)
	}
	slog.Info("Область конфликтов расписания", "scope", scope)

	handlers.Scheduler = scheduling.New(config.DB, scope)

	if err := seed.Run(config.DB, handlers.Scheduler); err != nil {
		slog.Error("Ошибка инициализации начальных данных", "error", err)
		os.Exit(1)
	}

	go handlers.GlobalHub.Run()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	if err := r.Run(":" + port); err != nil {
		slog.Error("Сервер остановился с ошибкой", "error", err)
		os.Exit(1)
	}
}
