package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/yi-nology/opsboard/pkg/config"
)

func TestNewSelectsBackend(t *testing.T) {
	store, err := New(config.StorageConfig{Type: TypeLocal, Local: config.LocalConfig{BasePath: t.TempDir()}})
	if err != nil {
		t.Fatalf("New local: %v", err)
	}
	if store.Type() != TypeLocal {
		t.Fatalf("expected local, got %s", store.Type())
	}

	if _, err := New(config.StorageConfig{Type: "ftp"}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := New(config.StorageConfig{Type: TypeS3}); err == nil {
		t.Fatalf("expected error for s3 without bucket")
	}
}

func TestPutBytesAndReadAll(t *testing.T) {
	ctx := context.Background()
	store, err := New(config.StorageConfig{Type: TypeLocal, Local: config.LocalConfig{BasePath: t.TempDir()}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := PutBytes(ctx, store, "catalogs/test.yaml", []byte("version: t1\n"), CatalogContentType); err != nil {
		t.Fatalf("PutBytes: %v", err)
	}
	data, err := ReadAll(ctx, store, "catalogs/test.yaml")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "version: t1\n" {
		t.Fatalf("unexpected content %q", data)
	}

	if _, err := ReadAll(ctx, store, "catalogs/missing.yaml"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}
