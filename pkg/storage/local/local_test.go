package local

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	body := "projects: []\n"
	if err := store.PutObject(ctx, "catalogs/v2.yaml", strings.NewReader(body), "application/yaml", int64(len(body))); err != nil {
		t.Fatalf("PutObject: %v", err)
	}

	exists, err := store.ObjectExists(ctx, "catalogs/v2.yaml")
	if err != nil || !exists {
		t.Fatalf("expected object to exist, got %v/%v", exists, err)
	}

	rc, err := store.GetObject(ctx, "catalogs/v2.yaml")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != body {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestGetMissingObject(t *testing.T) {
	sentinel := errors.New("missing")
	store, err := New(t.TempDir(), sentinel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := store.GetObject(context.Background(), "nope.yaml"); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	exists, err := store.ObjectExists(context.Background(), "nope.yaml")
	if err != nil || exists {
		t.Fatalf("expected missing object, got %v/%v", exists, err)
	}
}

func TestKeyCannotEscapeBase(t *testing.T) {
	base := t.TempDir()
	store, err := New(base, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := store.PutObject(context.Background(), "../../escape.yaml", strings.NewReader("x"), "", 1); err != nil {
		t.Fatalf("PutObject: %v", err)
	}
	if _, err := os.Stat(base + "/escape.yaml"); err != nil {
		t.Fatalf("expected object to stay under base path: %v", err)
	}
	if _, err := store.GetObject(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
