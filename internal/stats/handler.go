package stats

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Source computes the dashboard aggregate. *Service satisfies it.
type Source interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type Handler struct {
	source Source
	cache  Cache // nil when no cache is configured
}

func NewHandler(source Source, cache Cache) *Handler {
	return &Handler{source: source, cache: cache}
}

// Register attaches stats routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.dashboard)
}

func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if d, ok := h.cache.Get(ctx); ok {
			c.JSON(http.StatusOK, d)
			return
		}
	}

	d, err := h.source.Dashboard(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard statistics"})
		return
	}

	if h.cache != nil {
		h.cache.Set(ctx, d)
	}

	c.JSON(http.StatusOK, d)
}
