package pictograms

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"

	"github.com/caregiver-app/picto-admin-backend/internal/fsutil"
)

const collPictograms = "custom_pictograms"

var ErrNotFound = fmt.Errorf("pictogram not found")

// Repo provides persistence operations for pictograms.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// List fetches pictograms ordered by upload time, newest first. With a
// category it first tries the combined equality+order query; if that fails
// (typically a missing composite index) it falls back to the full ordered
// scan. Callers must re-apply the category filter in memory either way.
func (r *Repo) List(ctx context.Context, categoryID string) ([]Pictogram, error) {
	col := r.client.Collection(collPictograms)

	if categoryID != "" {
		q := col.Where("category", "==", categoryID).OrderBy("uploadedAt", firestore.Desc)
		items, err := r.fetch(ctx, q)
		if err == nil {
			return items, nil
		}
		log.Warn().Err(err).Str("category", categoryID).
			Msg("filtered pictogram query failed, falling back to full scan")
	}

	return r.fetch(ctx, col.OrderBy("uploadedAt", firestore.Desc))
}

func (r *Repo) fetch(ctx context.Context, q firestore.Query) ([]Pictogram, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []Pictogram
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate pictograms: %w", err)
		}

		var p Pictogram
		if err := doc.DataTo(&p); err != nil {
			log.Warn().Err(err).Str("id", doc.Ref.ID).Msg("skipping undecodable pictogram")
			continue
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Pictogram, error) {
	doc, err := r.client.Collection(collPictograms).Doc(id).Get(ctx)
	if err != nil {
		if fsutil.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pictogram: %w", err)
	}

	var p Pictogram
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode pictogram: %w", err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// NewID reserves a document id so the storage object path can be derived
// before the record is written.
func (r *Repo) NewID() string {
	return r.client.Collection(collPictograms).NewDoc().ID
}

// Create writes the record under the previously reserved id.
func (r *Repo) Create(ctx context.Context, id string, keyword, category, imageURL string, description *string, uploadedBy string) error {
	_, err := r.client.Collection(collPictograms).Doc(id).Set(ctx, map[string]any{
		"keyword":     keyword,
		"category":    category,
		"imageUrl":    imageURL,
		"description": description,
		"isActive":    true,
		"uploadedAt":  firestore.ServerTimestamp,
		"uploadedBy":  uploadedBy,
	})
	if err != nil {
		return fmt.Errorf("create pictogram: %w", err)
	}
	return nil
}

// Update applies the present patch fields and returns the updated document.
func (r *Repo) Update(ctx context.Context, id string, patch Patch) (*Pictogram, error) {
	var updates []firestore.Update

	if patch.Keyword != nil {
		updates = append(updates, firestore.Update{Path: "keyword", Value: strings.TrimSpace(*patch.Keyword)})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *patch.Category})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: trimToNull(*patch.Description)})
	}
	if patch.IsActive != nil {
		updates = append(updates, firestore.Update{Path: "isActive", Value: *patch.IsActive})
	}

	if len(updates) > 0 {
		if _, err := r.client.Collection(collPictograms).Doc(id).Update(ctx, updates); err != nil {
			if fsutil.IsNotFound(err) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("update pictogram: %w", err)
		}
	}

	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(collPictograms).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete pictogram: %w", err)
	}
	return nil
}

// CountActive counts active pictograms.
func (r *Repo) CountActive(ctx context.Context) (int64, error) {
	return fsutil.Count(ctx, r.client.Collection(collPictograms).
		Where("isActive", "==", true))
}

func trimToNull(s string) any {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return nil
}
