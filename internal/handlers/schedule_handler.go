package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mhafidz976/penjadwalan2/internal/scheduling"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
)

// Scheduler - сервис расписаний, устанавливается при старте приложения.
var Scheduler *scheduling.Service

// filterFromQuery собирает предикаты выборки из query-параметров.
// Отсутствующие параметры выборку не ограничивают.
func filterFromQuery(c *gin.Context) models.ScheduleFilter {
	filter := models.ScheduleFilter{
		Day:       models.Day(c.Query("day")),
		TimeSlot:  models.TimeSlot(c.Query("time_slot")),
		ClassName: c.Query("class_name"),
	}
	if labID, err := strconv.ParseUint(c.Query("lab_id"), 10, 32); err == nil {
		filter.LabID = uint(labID)
	}
	if semester, err := strconv.Atoi(c.Query("semester")); err == nil {
		filter.Semester = semester
	}
	return filter
}

// ListSchedulesHandler возвращает занятия, видимые вызывающему.
// Преподаватель получает только свои занятия, какие бы фильтры ни передал.
func ListSchedulesHandler(c *gin.Context) {
	schedules, err := Scheduler.List(viewerFromContext(c), filterFromQuery(c))
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}

// GetScheduleHandler возвращает одно занятие.
func GetScheduleHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule id"})
		return
	}
	schedule, err := Scheduler.Get(viewerFromContext(c), id)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// CreateScheduleHandler создает занятие. Конфликт по лаборатории или
// преподавателю возвращается как 409 со ссылкой на мешающее занятие.
func CreateScheduleHandler(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	schedule, err := Scheduler.Create(viewerFromContext(c), input)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	GlobalHub.Notify("schedule_created", schedule)
	c.JSON(http.StatusCreated, schedule)
}

// UpdateScheduleHandler заменяет поля занятия.
func UpdateScheduleHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule id"})
		return
	}
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	schedule, err := Scheduler.Update(viewerFromContext(c), id, input)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	GlobalHub.Notify("schedule_updated", schedule)
	c.JSON(http.StatusOK, schedule)
}

// DeleteScheduleHandler удаляет занятие.
func DeleteScheduleHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule id"})
		return
	}

	if err := Scheduler.Delete(viewerFromContext(c), id); err != nil {
		respondScheduleError(c, err)
		return
	}

	GlobalHub.Notify("schedule_deleted", &models.Schedule{ID: id})
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

// respondScheduleError переводит ошибки доменного слоя в HTTP-статусы.
func respondScheduleError(c *gin.Context, err error) {
	var conflict *scheduling.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": conflict.Error(),
			"conflict": gin.H{
				"kind":    conflict.Kind,
				"with_id": conflict.With.ID,
			},
		})
	case errors.Is(err, scheduling.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, scheduling.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
	case errors.Is(err, scheduling.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Operation not allowed for this role"})
	default:
		slog.Error("Schedule operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}
