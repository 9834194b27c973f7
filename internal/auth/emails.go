package auth

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// EmailDirectory resolves caregiver emails from Firebase Auth. Emails are not
// stored in the caregivers collection, so every read path looks them up live.
type EmailDirectory struct {
	client *auth.Client
}

func NewEmailDirectory(client *auth.Client) *EmailDirectory {
	return &EmailDirectory{client: client}
}

// Email returns the email for uid, or "" without error when the identity
// record is genuinely missing. Any other failure is returned to the caller.
func (d *EmailDirectory) Email(ctx context.Context, uid string) (string, error) {
	rec, err := d.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return rec.Email, nil
}
