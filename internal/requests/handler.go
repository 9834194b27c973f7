package requests

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/caregiver-app/picto-admin-backend/internal/httpapi"
)

// Store is the persistence surface the handlers need. *Repo satisfies it.
type Store interface {
	List(ctx context.Context, status, category string) ([]Request, error)
	Get(ctx context.Context, id string) (*Request, error)
	UpdateStatus(ctx context.Context, id, status string, note *string) (*Request, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	UserInfo(ctx context.Context, uid string) (*UserInfo, error)
	CategoryInfo(ctx context.Context, id string) (*CategoryInfo, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) list(c *gin.Context) {
	page := httpapi.IntQuery(c, "page", 1)
	limit := httpapi.IntQuery(c, "limit", 20)
	status := c.Query("status")
	category := c.Query("category")
	search := c.Query("search")

	items, err := h.store.List(c.Request.Context(), status, category)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch requests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	items = FilterByKeyword(items, search)
	pageItems, pagination := httpapi.Paginate(items, page, limit)

	for i := range pageItems {
		h.enrich(c.Request.Context(), &pageItems[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"requests":   pageItems,
		"pagination": pagination,
	})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	req, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return
		}
		log.Error().Err(err).Str("id", id).Msg("failed to fetch request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch request"})
		return
	}

	h.enrich(c.Request.Context(), req)
	c.JSON(http.StatusOK, req)
}

// enrich fills in the requester and category joins. Lookup failures degrade
// the item instead of failing the whole response.
func (h *Handler) enrich(ctx context.Context, req *Request) {
	if req.RequestedBy != "" {
		user, err := h.store.UserInfo(ctx, req.RequestedBy)
		if err != nil {
			log.Error().Err(err).Str("uid", req.RequestedBy).Msg("failed to fetch requester")
		} else {
			req.User = user
		}
	}

	if req.Category != "" {
		cat, err := h.store.CategoryInfo(ctx, req.Category)
		if err != nil {
			log.Error().Err(err).Str("category", req.Category).Msg("failed to fetch category")
		} else {
			req.CategoryInfo = cat
		}
	}
}

type statusReq struct {
	Status    string  `json:"status"`
	AdminNote *string `json:"adminNote"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")

	var req statusReq
	_ = c.ShouldBindJSON(&req)

	if !ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var note *string
	if req.AdminNote != nil {
		trimmed := strings.TrimSpace(*req.AdminNote)
		note = &trimmed
	}

	updated, err := h.store.UpdateStatus(c.Request.Context(), id, req.Status, note)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
			return
		}
		log.Error().Err(err).Str("id", id).Msg("failed to update request status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": updated})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) countByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = StatusPending
	}

	n, err := h.store.CountByStatus(c.Request.Context(), status)
	if err != nil {
		log.Error().Err(err).Msg("failed to count requests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": n})
}
