package auth

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/caregiver-app/picto-admin-backend/internal/fsutil"
)

const collAdminUsers = "admin_users"

// AdminRepo reads admin_users records. Admins are created out of band by
// cmd/createadmin, this repository only checks membership.
type AdminRepo struct {
	client *firestore.Client
}

func NewAdminRepo(client *firestore.Client) *AdminRepo {
	return &AdminRepo{client: client}
}

func (r *AdminRepo) IsAdmin(ctx context.Context, uid string) (bool, error) {
	doc, err := r.client.Collection(collAdminUsers).Doc(uid).Get(ctx)
	if err != nil {
		if fsutil.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get admin record: %w", err)
	}

	isAdmin, _ := doc.Data()["isAdmin"].(bool)
	return isAdmin, nil
}

// Grant writes the admin record for uid. Used by cmd/createadmin only.
func (r *AdminRepo) Grant(ctx context.Context, uid, email string) error {
	_, err := r.client.Collection(collAdminUsers).Doc(uid).Set(ctx, map[string]any{
		"email":     email,
		"isAdmin":   true,
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("write admin record: %w", err)
	}
	return nil
}
