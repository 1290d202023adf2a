package handlers

import (
	"net/http"

	"github.com/mhafidz976/penjadwalan2/config"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
)

// ListLabsHandler возвращает все лаборатории. Набор маленький, пагинация не нужна.
func ListLabsHandler(c *gin.Context) {
	var labs []models.Lab
	if err := config.DB.Order("id asc").Find(&labs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch labs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": labs})
}

// GetLabHandler возвращает одну лабораторию по идентификатору.
func GetLabHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lab id"})
		return
	}
	var lab models.Lab
	if err := config.DB.First(&lab, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lab not found"})
		return
	}
	c.JSON(http.StatusOK, lab)
}

// CreateLabHandler создает лабораторию.
func CreateLabHandler(c *gin.Context) {
	var input models.LabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	lab := models.Lab{LabName: input.LabName, Capacity: input.Capacity}
	if err := config.DB.Create(&lab).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create lab"})
		return
	}
	c.JSON(http.StatusCreated, lab)
}

// UpdateLabHandler обновляет лабораторию.
func UpdateLabHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lab id"})
		return
	}
	var lab models.Lab
	if err := config.DB.First(&lab, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lab not found"})
		return
	}

	var input models.LabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	lab.LabName = input.LabName
	lab.Capacity = input.Capacity
	if err := config.DB.Save(&lab).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update lab"})
		return
	}
	c.JSON(http.StatusOK, lab)
}

// DeleteLabHandler удаляет лабораторию.
func DeleteLabHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lab id"})
		return
	}
	res := config.DB.Delete(&models.Lab{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete lab"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lab not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lab deleted"})
}
