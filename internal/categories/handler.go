package categories

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
	List(ctx context.Context, status string) ([]Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, name, nameEn, nameNl string, description *string) (string, error)
	Update(ctx context.Context, id string, patch Patch) (*Category, error)
	Delete(ctx context.Context, id string) error
	HasPictograms(ctx context.Context, id string) (bool, error)
	PictogramCount(ctx context.Context, id string) (int64, error)
	ActiveList(ctx context.Context) ([]ActiveCategory, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) list(c *gin.Context) {
	page := httpapi.IntQuery(c, "page", 1)
	limit := httpapi.IntQuery(c, "limit", 50)
	status := c.Query("status")
	search := c.Query("search")

	items, err := h.store.List(c.Request.Context(), status)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	items = FilterBySearch(items, search)
	pageItems, pagination := httpapi.Paginate(items, page, limit)

	for i := range pageItems {
		count, err := h.store.PictogramCount(c.Request.Context(), pageItems[i].ID)
		if err != nil {
			log.Error().Err(err).Str("id", pageItems[i].ID).Msg("failed to count pictograms")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		pageItems[i].PictogramCount = count
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": pageItems,
		"pagination": pagination,
	})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	cat, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Error().Err(err).Str("id", id).Msg("failed to fetch category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	count, err := h.store.PictogramCount(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to count pictograms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}
	cat.PictogramCount = count

	c.JSON(http.StatusOK, cat)
}

type createReq struct {
	Name        string  `json:"name"`
	NameEn      string  `json:"nameEn"`
	NameNl      string  `json:"nameNl"`
	Description *string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	_ = c.ShouldBindJSON(&req)

	name := strings.TrimSpace(req.Name)
	nameEn := strings.TrimSpace(req.NameEn)
	nameNl := strings.TrimSpace(req.NameNl)
	if name == "" || nameEn == "" || nameNl == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, Name (English), and Name (Dutch) are required"})
		return
	}

	var description *string
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			description = &d
		}
	}

	id, err := h.store.Create(c.Request.Context(), name, nameEn, nameNl, description)
	if err != nil {
		log.Error().Err(err).Msg("failed to create category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	cat, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to read back created category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	cat.PictogramCount = 0

	c.JSON(http.StatusOK, gin.H{"success": true, "category": cat})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cat, err := h.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Error().Err(err).Str("id", id).Msg("failed to update category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	count, err := h.store.PictogramCount(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to count pictograms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	cat.PictogramCount = count

	c.JSON(http.StatusOK, gin.H{"success": true, "category": cat})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	inUse, err := h.store.HasPictograms(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to probe pictograms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if inUse {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot delete category. It contains pictograms. Please remove all pictograms first or deactivate the category instead.",
		})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) activeList(c *gin.Context) {
	items, err := h.store.ActiveList(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch active categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch active categories"})
		return
	}
	if items == nil {
		items = []ActiveCategory{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}
