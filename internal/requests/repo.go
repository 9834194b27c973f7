package requests

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"

	"github.com/caregiver-app/picto-admin-backend/internal/fsutil"
)

const (
	collRequests   = "picto_requests"
	collCaregivers = "caregivers"
	collCategories = "categories"
)

var ErrNotFound = fmt.Errorf("request not found")

// Repo provides persistence operations for pictogram requests, including the
// read-time joins against caregivers and categories.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// List fetches requests newest first, with optional equality filters pushed
// to the query. Keyword search and pagination happen in the handler.
func (r *Repo) List(ctx context.Context, status, category string) ([]Request, error) {
	q := r.client.Collection(collRequests).Query
	if status != "" {
		q = q.Where("status", "==", status)
	}
	if category != "" {
		q = q.Where("category", "==", category)
	}
	q = q.OrderBy("createdAt", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []Request
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate requests: %w", err)
		}

		var req Request
		if err := doc.DataTo(&req); err != nil {
			log.Warn().Err(err).Str("id", doc.Ref.ID).Msg("skipping undecodable request")
			continue
		}
		req.ID = doc.Ref.ID
		out = append(out, req)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Request, error) {
	doc, err := r.client.Collection(collRequests).Doc(id).Get(ctx)
	if err != nil {
		if fsutil.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	var req Request
	if err := doc.DataTo(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	req.ID = doc.Ref.ID
	return &req, nil
}

// UpdateStatus sets the status, refreshes updatedAt and, when note is
// non-nil, stores the note (nil inner value clears it). Returns the updated
// document.
func (r *Repo) UpdateStatus(ctx context.Context, id, status string, note *string) (*Request, error) {
	updates := []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if note != nil {
		var v any
		if *note != "" {
			v = *note
		}
		updates = append(updates, firestore.Update{Path: "adminNote", Value: v})
	}

	if _, err := r.client.Collection(collRequests).Doc(id).Update(ctx, updates); err != nil {
		if fsutil.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update request status: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(collRequests).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}

// CountByStatus counts requests with the given status.
func (r *Repo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return fsutil.Count(ctx, r.client.Collection(collRequests).
		Where("status", "==", status))
}

// UserInfo looks up the requester join. Returns nil without error when the
// caregiver record does not exist.
func (r *Repo) UserInfo(ctx context.Context, uid string) (*UserInfo, error) {
	doc, err := r.client.Collection(collCaregivers).Doc(uid).Get(ctx)
	if err != nil {
		if fsutil.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caregiver: %w", err)
	}

	data := doc.Data()
	info := &UserInfo{}
	info.Name, _ = data["name"].(string)
	if email, ok := data["email"].(string); ok && email != "" {
		info.Email = &email
	}
	return info, nil
}

// CategoryInfo looks up the category join. Returns nil without error when the
// category does not exist.
func (r *Repo) CategoryInfo(ctx context.Context, id string) (*CategoryInfo, error) {
	doc, err := r.client.Collection(collCategories).Doc(id).Get(ctx)
	if err != nil {
		if fsutil.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	data := doc.Data()
	info := &CategoryInfo{ID: doc.Ref.ID}
	info.Name, _ = data["name"].(string)
	info.NameEn, _ = data["nameEn"].(string)
	info.NameNl, _ = data["nameNl"].(string)
	return info, nil
}
