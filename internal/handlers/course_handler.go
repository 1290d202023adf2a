package handlers

import (
	"errors"
	"net/http"

	"github.com/mhafidz976/penjadwalan2/config"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListCoursesHandler возвращает список курсов; поддерживает пагинацию и
// полный список для форм через all=true.
func ListCoursesHandler(c *gin.Context) {
	var courses []models.Course
	query := config.DB.Order("id asc")

	if semester := c.Query("semester"); semester != "" {
		query = query.Where("semester = ?", semester)
	}

	if c.Query("all") == "true" {
		if err := query.Find(&courses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch courses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": courses})
		return
	}

	var totalRows int64
	config.DB.Model(&models.Course{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch courses"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, courses, totalRows))
}

// GetCourseHandler возвращает один курс.
func GetCourseHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}
	var course models.Course
	if err := config.DB.First(&course, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// CreateCourseHandler создает курс. Код курса обязан быть уникальным.
func CreateCourseHandler(c *gin.Context) {
	var input models.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	var existing models.Course
	if err := config.DB.Where("code = ?", input.Code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Course code already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	course := models.Course{
		Code:       input.Code,
		CourseName: input.CourseName,
		Semester:   input.Semester,
		SKS:        input.SKS,
	}
	if err := config.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Course code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create course"})
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateCourseHandler обновляет курс; уникальность кода проверяется,
// только когда код меняется.
func UpdateCourseHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}
	var course models.Course
	if err := config.DB.First(&course, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var input models.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.Code != course.Code {
		var existing models.Course
		if err := config.DB.Where("code = ?", input.Code).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Course code already in use"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
	}

	course.Code = input.Code
	course.CourseName = input.CourseName
	course.Semester = input.Semester
	course.SKS = input.SKS
	if err := config.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update course"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourseHandler удаляет курс.
func DeleteCourseHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course id"})
		return
	}
	res := config.DB.Delete(&models.Course{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete course"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}
