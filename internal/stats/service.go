package stats

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"

	"github.com/caregiver-app/picto-admin-backend/internal/fsutil"
	"github.com/caregiver-app/picto-admin-backend/internal/pictograms"
	"github.com/caregiver-app/picto-admin-backend/internal/requests"
)

const (
	collCaregivers = "caregivers"
	collPictograms = "custom_pictograms"
	collSets       = "pictogram_sets"
	collCategories = "categories"
	collRequests   = "picto_requests"

	recentLimit = 10
)

// EmailLookup resolves a caregiver's email from the identity provider.
type EmailLookup interface {
	Email(ctx context.Context, uid string) (string, error)
}

// Service computes the dashboard aggregate straight from Firestore.
type Service struct {
	client *firestore.Client
	emails EmailLookup
}

func NewService(client *firestore.Client, emails EmailLookup) *Service {
	return &Service{client: client, emails: emails}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var err error

	if d.Stats.TotalUsers, err = fsutil.Count(ctx, s.client.Collection(collCaregivers).Query); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if d.Stats.TotalPictograms, err = fsutil.Count(ctx, s.client.Collection(collPictograms).Where("isActive", "==", true)); err != nil {
		return nil, fmt.Errorf("count pictograms: %w", err)
	}
	if d.Stats.TotalSets, err = fsutil.Count(ctx, s.client.Collection(collSets).Query); err != nil {
		return nil, fmt.Errorf("count sets: %w", err)
	}
	if d.Stats.TotalCategories, err = fsutil.Count(ctx, s.client.Collection(collCategories).Where("isActive", "==", true)); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if d.Stats.PendingRequests, err = fsutil.Count(ctx, s.client.Collection(collRequests).Where("status", "==", requests.StatusPending)); err != nil {
		return nil, fmt.Errorf("count pending requests: %w", err)
	}

	if d.RecentUsers, err = s.recentUsers(ctx); err != nil {
		return nil, err
	}
	if d.RecentPictograms, err = s.recentPictograms(ctx); err != nil {
		return nil, err
	}
	if d.RecentRequests, err = s.recentRequests(ctx); err != nil {
		return nil, err
	}

	return &d, nil
}

func (s *Service) recentUsers(ctx context.Context) ([]RecentUser, error) {
	iter := s.client.Collection(collCaregivers).
		OrderBy("createdAt", firestore.Desc).
		Limit(recentLimit).
		Documents(ctx)
	defer iter.Stop()

	out := make([]RecentUser, 0, recentLimit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate recent users: %w", err)
		}

		data := doc.Data()
		u := RecentUser{ID: doc.Ref.ID, Email: "N/A"}
		if name, ok := data["name"].(string); ok && name != "" {
			u.Name = name
		} else {
			u.Name = "N/A"
		}
		if ts, ok := data["createdAt"].(time.Time); ok {
			u.CreatedAt = &ts
		}

		email, err := s.emails.Email(ctx, doc.Ref.ID)
		if err != nil {
			log.Error().Err(err).Str("uid", doc.Ref.ID).Msg("failed to fetch user email")
		} else if email != "" {
			u.Email = email
		}

		out = append(out, u)
	}
	return out, nil
}

func (s *Service) recentPictograms(ctx context.Context) ([]pictograms.Pictogram, error) {
	iter := s.client.Collection(collPictograms).
		OrderBy("uploadedAt", firestore.Desc).
		Limit(recentLimit).
		Documents(ctx)
	defer iter.Stop()

	out := make([]pictograms.Pictogram, 0, recentLimit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate recent pictograms: %w", err)
		}

		var p pictograms.Pictogram
		if err := doc.DataTo(&p); err != nil {
			log.Warn().Err(err).Str("id", doc.Ref.ID).Msg("skipping undecodable pictogram")
			continue
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) recentRequests(ctx context.Context) ([]requests.Request, error) {
	iter := s.client.Collection(collRequests).
		OrderBy("createdAt", firestore.Desc).
		Limit(recentLimit).
		Documents(ctx)
	defer iter.Stop()

	out := make([]requests.Request, 0, recentLimit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate recent requests: %w", err)
		}

		var r requests.Request
		if err := doc.DataTo(&r); err != nil {
			log.Warn().Err(err).Str("id", doc.Ref.ID).Msg("skipping undecodable request")
			continue
		}
		r.ID = doc.Ref.ID
		out = append(out, r)
	}
	return out, nil
}
