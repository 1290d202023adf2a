package handlers

import (
	"strconv"

	"github.com/mhafidz976/penjadwalan2/internal/scheduling"
	"github.com/mhafidz976/penjadwalan2/models"

	"github.com/gin-gonic/gin"
)

// viewerFromContext собирает идентичность вызывающего из контекста,
// заполненного AuthMiddleware.
func viewerFromContext(c *gin.Context) scheduling.Viewer {
	viewer := scheduling.Viewer{}
	if id, ok := c.Get("user_id"); ok {
		if uid, ok := id.(uint); ok {
			viewer.ID = uid
		}
	}
	if role, ok := c.Get("role"); ok {
		if r, ok := role.(models.Role); ok {
			viewer.Role = r
		}
	}
	return viewer
}

// idParam разбирает числовой параметр пути :id.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
