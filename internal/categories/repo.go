package categories

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"

	"github.com/caregiver-app/picto-admin-backend/internal/fsutil"
)

const (
	collCategories = "categories"
	collPictograms = "custom_pictograms"
)

var ErrNotFound = fmt.Errorf("category not found")

// Repo provides persistence operations for categories.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// List fetches all categories ordered by name, optionally pre-filtered by the
// isActive flag. Search and pagination happen in the handler, in memory.
func (r *Repo) List(ctx context.Context, status string) ([]Category, error) {
	q := r.client.Collection(collCategories).Query
	switch status {
	case "active":
		q = q.Where("isActive", "==", true)
	case "inactive":
		q = q.Where("isActive", "==", false)
	}
	q = q.OrderBy("name", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate categories: %w", err)
		}

		var cat Category
		if err := doc.DataTo(&cat); err != nil {
			log.Warn().Err(err).Str("id", doc.Ref.ID).Msg("skipping undecodable category")
			continue
		}
		cat.ID = doc.Ref.ID
		out = append(out, cat)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Category, error) {
	doc, err := r.client.Collection(collCategories).Doc(id).Get(ctx)
	if err != nil {
		if fsutil.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	var cat Category
	if err := doc.DataTo(&cat); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	cat.ID = doc.Ref.ID
	return &cat, nil
}

// Create stores a new category with server-assigned timestamps and returns its id.
func (r *Repo) Create(ctx context.Context, name, nameEn, nameNl string, description *string) (string, error) {
	ref, _, err := r.client.Collection(collCategories).Add(ctx, map[string]any{
		"name":        name,
		"nameEn":      nameEn,
		"nameNl":      nameNl,
		"description": description,
		"isActive":    true,
		"createdAt":   firestore.ServerTimestamp,
		"updatedAt":   firestore.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("create category: %w", err)
	}
	return ref.ID, nil
}

// Update applies the present patch fields and always refreshes updatedAt,
// then returns the updated document.
func (r *Repo) Update(ctx context.Context, id string, patch Patch) (*Category, error) {
	updates := []firestore.Update{{Path: "updatedAt", Value: firestore.ServerTimestamp}}

	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: strings.TrimSpace(*patch.Name)})
	}
	if patch.NameEn != nil {
		updates = append(updates, firestore.Update{Path: "nameEn", Value: strings.TrimSpace(*patch.NameEn)})
	}
	if patch.NameNl != nil {
		updates = append(updates, firestore.Update{Path: "nameNl", Value: strings.TrimSpace(*patch.NameNl)})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: trimToNull(*patch.Description)})
	}
	if patch.IsActive != nil {
		updates = append(updates, firestore.Update{Path: "isActive", Value: *patch.IsActive})
	}

	if _, err := r.client.Collection(collCategories).Doc(id).Update(ctx, updates); err != nil {
		if fsutil.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(collCategories).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// HasPictograms reports whether any pictogram references the category,
// regardless of the active flag. Uses a limit-1 existence probe.
func (r *Repo) HasPictograms(ctx context.Context, id string) (bool, error) {
	iter := r.client.Collection(collPictograms).
		Where("category", "==", id).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probe pictograms: %w", err)
	}
	return true, nil
}

// PictogramCount counts active pictograms referencing the category.
func (r *Repo) PictogramCount(ctx context.Context, id string) (int64, error) {
	return fsutil.Count(ctx, r.client.Collection(collPictograms).
		Where("category", "==", id).
		Where("isActive", "==", true))
}

// ActiveList returns the minimal active-category list for dropdowns.
func (r *Repo) ActiveList(ctx context.Context) ([]ActiveCategory, error) {
	iter := r.client.Collection(collCategories).
		Where("isActive", "==", true).
		OrderBy("name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var out []ActiveCategory
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate active categories: %w", err)
		}

		data := doc.Data()
		out = append(out, ActiveCategory{
			ID:     doc.Ref.ID,
			Name:   asString(data["name"]),
			NameEn: asString(data["nameEn"]),
			NameNl: asString(data["nameNl"]),
		})
	}
	return out, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func trimToNull(s string) any {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return nil
}
