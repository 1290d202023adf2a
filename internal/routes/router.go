package routes

import (
	"github.com/mhafidz976/penjadwalan2/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes инициализирует все маршруты приложения.
func SetupRoutes(r *gin.Engine) {
	// Публичные маршруты: вход и выход не требуют токена.
	RegisterAuthRoutes(r)

	// Все остальные маршруты требуют аутентификации.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
