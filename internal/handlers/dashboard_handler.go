package handlers

import (
	"net/http"

	"github.com/mhafidz976/penjadwalan2/config"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
)

// DashboardHandler возвращает сводку для главной панели: счетчики
// справочников и занятия, видимые вызывающему. Преподаватель получает
// в сводке только собственные занятия.
func DashboardHandler(c *gin.Context) {
	viewer := viewerFromContext(c)

	var labCount, courseCount, scheduleCount int64
	config.DB.Model(&models.Lab{}).Count(&labCount)
	config.DB.Model(&models.Course{}).Count(&courseCount)
	config.DB.Model(&models.Schedule{}).Count(&scheduleCount)

	summary := gin.H{
		"labs":      labCount,
		"courses":   courseCount,
		"schedules": scheduleCount,
	}

	// Список пользователей - только для администратора.
	if viewer.Role == models.RoleAdmin {
		var userCount int64
		config.DB.Model(&models.User{}).Count(&userCount)
		summary["users"] = userCount
	}

	schedules, err := Scheduler.List(viewer, models.ScheduleFilter{})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":    summary,
		"schedules": schedules,
	})
}
