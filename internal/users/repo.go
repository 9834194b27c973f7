package users

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/caregiver-app/picto-admin-backend/internal/fsutil"
)

const collCaregivers = "caregivers"

// Repo provides read-only access to caregiver records. This API has no
// caregiver mutation routes.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// List fetches caregivers. With a search term it pushes a prefix range on
// name to the database (name >= search and name <= search+""), which
// implies name ordering; without one it lists everything newest first.
func (r *Repo) List(ctx context.Context, search string) ([]Caregiver, error) {
	var q firestore.Query
	if search != "" {
		q = r.client.Collection(collCaregivers).
			Where("name", ">=", search).
			Where("name", "<=", search+"").
			OrderBy("name", firestore.Asc)
	} else {
		q = r.client.Collection(collCaregivers).
			OrderBy("createdAt", firestore.Desc)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []Caregiver
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate caregivers: %w", err)
		}

		data := doc.Data()
		cg := Caregiver{
			ID:         doc.Ref.ID,
			Email:      "N/A",
			Name:       stringOr(data["name"], "N/A"),
			Role:       stringOr(data["role"], "N/A"),
			ClientName: stringOr(data["clientName"], "N/A"),
			AgeRange:   stringOr(data["ageRange"], "N/A"),
			Language:   stringOr(data["language"], "N/A"),
		}
		if ts, ok := data["createdAt"].(time.Time); ok {
			cg.CreatedAt = &ts
		}
		out = append(out, cg)
	}
	return out, nil
}

// Count counts all caregivers.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	return fsutil.Count(ctx, r.client.Collection(collCaregivers).Query)
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}
