package requests

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register attaches request routes to the given router group.
// Gin's tree cannot hold a static segment next to :id at the same level, so
// GET /stats/count is dispatched through the :id route.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id/status", h.updateStatus)
	rg.DELETE("/:id", h.delete)
	rg.GET("/:id/count", func(c *gin.Context) {
		if c.Param("id") != "stats" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		h.countByStatus(c)
	})
}
