package categories

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register attaches category routes to the given router group.
// Gin's tree cannot hold a static segment next to :id at the same level, so
// GET /active/list is dispatched through the :id route.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.GET("/:id/list", func(c *gin.Context) {
		if c.Param("id") != "active" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		h.activeList(c)
	})
}
