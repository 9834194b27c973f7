package users

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/caregiver-app/picto-admin-backend/internal/httpapi"
)

// Store is the persistence surface the handlers need. *Repo satisfies it.
type Store interface {
	List(ctx context.Context, search string) ([]Caregiver, error)
	Count(ctx context.Context) (int64, error)
}

// EmailLookup resolves a caregiver's email from the identity provider.
// A missing identity record yields "" without error.
type EmailLookup interface {
	Email(ctx context.Context, uid string) (string, error)
}

type Handler struct {
	store  Store
	emails EmailLookup
}

func NewHandler(store Store, emails EmailLookup) *Handler {
	return &Handler{store: store, emails: emails}
}

// Register attaches user routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/count", h.count)
}

func (h *Handler) list(c *gin.Context) {
	page := httpapi.IntQuery(c, "page", 1)
	limit := httpapi.IntQuery(c, "limit", 20)
	search := c.Query("search")

	items, err := h.store.List(c.Request.Context(), search)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	pageItems, pagination := httpapi.Paginate(items, page, limit)

	// Only the requested page is enriched; a failed lookup leaves "N/A".
	for i := range pageItems {
		email, err := h.emails.Email(c.Request.Context(), pageItems[i].ID)
		if err != nil {
			log.Error().Err(err).Str("uid", pageItems[i].ID).Msg("failed to fetch user email")
			continue
		}
		if email != "" {
			pageItems[i].Email = email
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      pageItems,
		"pagination": pagination,
	})
}

func (h *Handler) count(c *gin.Context) {
	n, err := h.store.Count(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
