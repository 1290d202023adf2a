package routes

import (
	"github.com/mhafidz976/penjadwalan2/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes регистрирует публичные маршруты для аутентификации.
func RegisterAuthRoutes(r *gin.Engine) {
	// Обработка формы входа.
	r.POST("/login", handlers.LoginHandler)

	// Выход пользователя из системы с отзывом токена.
	r.GET("/logout", handlers.LogoutHandler)
}
