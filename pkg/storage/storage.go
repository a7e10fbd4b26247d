// Package storage abstracts the object store that holds seed catalogs.
// Catalogs are versioned YAML documents addressed by object key, kept on the
// local filesystem or in an S3-compatible bucket (AWS S3, MinIO, OSS).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/yi-nology/opsboard/pkg/config"
	"github.com/yi-nology/opsboard/pkg/storage/local"
	"github.com/yi-nology/opsboard/pkg/storage/s3"
)

// Backend identifiers, as written in storage.type.
const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// CatalogContentType is attached to published catalogs.
const CatalogContentType = "application/yaml"

// ErrObjectNotFound is returned when a key has no stored object.
var ErrObjectNotFound = errors.New("object not found")

// Storage defines the object operations needed to publish and load catalogs.
type Storage interface {
	// PutObject stores data under key, replacing any previous version.
	PutObject(ctx context.Context, key string, data io.Reader, contentType string, size int64) error

	// GetObject returns a ReadCloser that must be closed by the caller.
	// Missing keys yield an error wrapping ErrObjectNotFound.
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)

	ObjectExists(ctx context.Context, key string) (bool, error)

	// Type returns TypeLocal or TypeS3.
	Type() string
}

// New opens the catalog store selected by cfg.Type.
func New(cfg config.StorageConfig) (Storage, error) {
	var (
		store Storage
		err   error
	)
	switch cfg.Type {
	case "", TypeLocal:
		store, err = local.New(cfg.Local.BasePath, ErrObjectNotFound)
	case TypeS3:
		store, err = s3.New(s3.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PathStyle: cfg.S3.PathStyle,
			Prefix:    cfg.S3.Prefix,
			NotFound:  ErrObjectNotFound,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s catalog store: %w", cfg.Type, err)
	}
	log.Printf("[Init] catalog store: %s", store.Type())
	return store, nil
}

// ReadAll fetches the whole object stored under key.
func ReadAll(ctx context.Context, store Storage, key string) ([]byte, error) {
	rc, err := store.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// PutBytes stores data under key with an exact content length.
func PutBytes(ctx context.Context, store Storage, key string, data []byte, contentType string) error {
	return store.PutObject(ctx, key, bytes.NewReader(data), contentType, int64(len(data)))
}
