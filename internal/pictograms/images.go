package pictograms

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const imageFolder = "pictograms"

// ImageStore is the media storage surface the handlers need.
type ImageStore interface {
	Put(ctx context.Context, id string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, imageURL string) error
	Check(ctx context.Context) error
	BucketName() string
}

// BucketImageStore stores pictogram images in a Firebase Storage bucket under
// a deterministic per-record path and serves them through download-token URLs.
type BucketImageStore struct {
	bucket *gcs.BucketHandle
	name   string
}

func NewBucketImageStore(bucket *gcs.BucketHandle, name string) *BucketImageStore {
	return &BucketImageStore{bucket: bucket, name: name}
}

func (s *BucketImageStore) Put(ctx context.Context, id string, data []byte, contentType string) (string, error) {
	object := objectPath(id)
	token := uuid.NewString()

	w := s.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write image object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize image object: %w", err)
	}

	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.name, url.QueryEscape(object), token), nil
}

func (s *BucketImageStore) Remove(ctx context.Context, imageURL string) error {
	object, ok := ObjectFromURL(imageURL)
	if !ok {
		return fmt.Errorf("cannot derive object path from %q", imageURL)
	}
	if err := s.bucket.Object(object).Delete(ctx); err != nil {
		return fmt.Errorf("delete image object: %w", err)
	}
	return nil
}

// Check probes the bucket so the test-storage route can report reachability.
func (s *BucketImageStore) Check(ctx context.Context) error {
	if _, err := s.bucket.Attrs(ctx); err != nil {
		return fmt.Errorf("bucket attrs: %w", err)
	}
	return nil
}

func (s *BucketImageStore) BucketName() string {
	return s.name
}

func objectPath(id string) string {
	return imageFolder + "/" + id + ".png"
}

// ObjectFromURL recovers the storage object path from a download URL.
func ObjectFromURL(imageURL string) (string, bool) {
	_, rest, ok := strings.Cut(imageURL, "/o/")
	if !ok {
		return "", false
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest = rest[:i]
	}
	object, err := url.QueryUnescape(rest)
	if err != nil || object == "" {
		return "", false
	}
	return object, true
}
