package routes

import (
	"github.com/mhafidz976/penjadwalan2/internal/handlers"
	"github.com/mhafidz976/penjadwalan2/internal/middleware"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты API, требующие аутентификации.
// Ролевые ограничения повторяют исходную систему: пользователи - только
// админ; лаборатории и курсы - админ и сотрудники; просмотр расписания -
// любой вошедший, изменение - админ и сотрудники.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		apiGroup.GET("/dashboard", handlers.DashboardHandler)

		// --- ПОЛЬЗОВАТЕЛИ ---
		users := apiGroup.Group("/users")
		{
			// Список нужен и сотрудникам: формы расписания выбирают преподавателя.
			users.GET("", middleware.RoleMiddleware(models.RoleAdmin, models.RoleStaff), handlers.ListUsersHandler)
			users.GET("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.GetUserHandler)
			users.POST("", middleware.RoleMiddleware(models.RoleAdmin), handlers.CreateUserHandler)
			users.PUT("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.UpdateUserHandler)
			users.DELETE("/:id", middleware.RoleMiddleware(models.RoleAdmin), handlers.DeleteUserHandler)
		}

		// --- ЛАБОРАТОРИИ ---
		labs := apiGroup.Group("/labs")
		labs.Use(middleware.RoleMiddleware(models.RoleAdmin, models.RoleStaff))
		{
			labs.GET("", handlers.ListLabsHandler)
			labs.GET("/:id", handlers.GetLabHandler)
			labs.POST("", handlers.CreateLabHandler)
			labs.PUT("/:id", handlers.UpdateLabHandler)
			labs.DELETE("/:id", handlers.DeleteLabHandler)
		}

		// --- КУРСЫ ---
		courses := apiGroup.Group("/courses")
		courses.Use(middleware.RoleMiddleware(models.RoleAdmin, models.RoleStaff))
		{
			courses.GET("", handlers.ListCoursesHandler)
			courses.GET("/:id", handlers.GetCourseHandler)
			courses.POST("", handlers.CreateCourseHandler)
			courses.PUT("/:id", handlers.UpdateCourseHandler)
			courses.DELETE("/:id", handlers.DeleteCourseHandler)
		}

		// --- РАСПИСАНИЕ ---
		schedules := apiGroup.Group("/schedules")
		{
			schedules.GET("", handlers.ListSchedulesHandler)
			schedules.GET("/export", handlers.ExportSchedulesHandler)
			schedules.GET("/ws", handlers.ScheduleWSEndpoint)
			schedules.GET("/:id", handlers.GetScheduleHandler)
			schedules.POST("", middleware.RoleMiddleware(models.RoleAdmin, models.RoleStaff), handlers.CreateScheduleHandler)
			schedules.POST("/suggest", middleware.RoleMiddleware(models.RoleAdmin, models.RoleStaff), handlers.SuggestScheduleHandler)
			schedules.PUT("/:id", middleware.RoleMiddleware(models.RoleAdmin, models.RoleStaff), handlers.UpdateScheduleHandler)
			schedules.DELETE("/:id", middleware.RoleMiddleware(models.RoleAdmin, models.RoleStaff), handlers.DeleteScheduleHandler)
		}
	}
}
