package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/caregiver-app/picto-admin-backend/config"
)

// Firebase bundles the Firebase-backed clients the API needs.
type Firebase struct {
	Auth       *fbauth.Client
	Firestore  *firestore.Client
	Bucket     *gcs.BucketHandle
	BucketName string

	storage *gcs.Client
}

// OpenFirebase initializes the Firebase app and the Auth, Firestore, and
// Storage clients. Credentials come from a file path, inline JSON, or
// application default credentials, in that order.
func OpenFirebase(ctx context.Context, cfg config.FirebaseConfig) (*Firebase, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore client: %w", err)
	}

	storageClient, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		fsClient.Close()
		return nil, fmt.Errorf("initialize storage client: %w", err)
	}

	return &Firebase{
		Auth:       authClient,
		Firestore:  fsClient,
		Bucket:     storageClient.Bucket(cfg.StorageBucket),
		BucketName: cfg.StorageBucket,
		storage:    storageClient,
	}, nil
}

func (f *Firebase) Close() error {
	if err := f.Firestore.Close(); err != nil {
		return err
	}
	return f.storage.Close()
}
