package pictograms

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/caregiver-app/picto-admin-backend/internal/auth"
	"github.com/caregiver-app/picto-admin-backend/internal/httpapi"
)

const maxImageBytes = 5 * 1024 * 1024 // 5MB

// Store is the persistence surface the handlers need. *Repo satisfies it.
type Store interface {
	List(ctx context.Context, categoryID string) ([]Pictogram, error)
	Get(ctx context.Context, id string) (*Pictogram, error)
	NewID() string
	Create(ctx context.Context, id, keyword, category, imageURL string, description *string, uploadedBy string) error
	Update(ctx context.Context, id string, patch Patch) (*Pictogram, error)
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

type Handler struct {
	store  Store
	images ImageStore
}

func NewHandler(store Store, images ImageStore) *Handler {
	return &Handler{store: store, images: images}
}

func (h *Handler) list(c *gin.Context) {
	page := httpapi.IntQuery(c, "page", 1)
	limit := httpapi.IntQuery(c, "limit", 20)
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	items, err := h.store.List(c.Request.Context(), category)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch pictograms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pictograms"})
		return
	}

	items = FilterByCategory(items, category)
	items = FilterByKeyword(items, search)
	pageItems, pagination := httpapi.Paginate(items, page, limit)

	c.JSON(http.StatusOK, gin.H{
		"pictograms": pageItems,
		"pagination": pagination,
	})
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is too large. Maximum size is 5MB."})
		return
	}

	keyword := strings.TrimSpace(c.PostForm("keyword"))
	category := strings.TrimSpace(c.PostForm("category"))
	if keyword == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Keyword and category are required"})
		return
	}

	var description *string
	if d := strings.TrimSpace(c.PostForm("description")); d != "" {
		description = &d
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload pictogram"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		log.Error().Err(err).Msg("failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload pictogram"})
		return
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is too large. Maximum size is 5MB."})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	id := h.store.NewID()
	imageURL, err := h.images.Put(c.Request.Context(), id, data, contentType)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to store image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload pictogram"})
		return
	}

	uploadedBy := auth.PrincipalFrom(c).UID
	if err := h.store.Create(c.Request.Context(), id, keyword, category, imageURL, description, uploadedBy); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to create pictogram record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload pictogram"})
		return
	}

	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to read back created pictogram")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload pictogram"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pictogram": p})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	p, err := h.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pictogram not found"})
			return
		}
		log.Error().Err(err).Str("id", id).Msg("failed to update pictogram")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pictogram"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pictogram": p})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pictogram not found"})
			return
		}
		log.Error().Err(err).Str("id", id).Msg("failed to fetch pictogram")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pictogram"})
		return
	}

	// Asset cleanup is best effort, the record is removed regardless.
	if p.ImageURL != "" {
		if err := h.images.Remove(c.Request.Context(), p.ImageURL); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("failed to delete image from storage")
		}
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete pictogram")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pictogram"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) count(c *gin.Context) {
	n, err := h.store.CountActive(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to count pictograms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pictograms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *Handler) testStorage(c *gin.Context) {
	if err := h.images.Check(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("storage bucket check failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Storage bucket error",
			"message":    err.Error(),
			"bucketName": h.images.BucketName(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bucketName": h.images.BucketName(),
		"message":    "Storage bucket is accessible",
	})
}
