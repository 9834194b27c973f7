package pictograms

import "github.com/gin-gonic/gin"

// Register attaches pictogram routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("/upload", h.upload)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.GET("/count", h.count)
	rg.GET("/test-storage", h.testStorage)
}
