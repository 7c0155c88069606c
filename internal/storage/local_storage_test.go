package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating storage: %v", err)
	}
	ctx := context.Background()

	key, err := store.Save(ctx, []byte("payload"), SaveOptions{
		Category:  "avatars",
		Extension: "png",
		BaseName:  "My Avatar",
	})
	if err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if !strings.HasPrefix(key, "avatars/") || !strings.HasSuffix(key, "/my-avatar.png") {
		t.Fatalf("unexpected object key %q", key)
	}

	absPath := filepath.Join(store.LocalBaseDir(), filepath.FromSlash(key))
	data, err := os.ReadFile(absPath)
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected file contents %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := os.Stat(absPath); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}

	// Deleting again is not an error.
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("unexpected repeat delete error: %v", err)
	}
}

func TestLocalStorageSkipIfExists(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating storage: %v", err)
	}
	ctx := context.Background()
	opts := SaveOptions{Category: "images", Extension: "webp", BaseName: "banner", SkipIfExists: true}

	key, err := store.Save(ctx, []byte("first"), opts)
	if err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if _, err := store.Save(ctx, []byte("second"), opts); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.LocalBaseDir(), filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(data) != "first" {
		t.Fatalf("expected original contents to survive, got %q", data)
	}
}

func TestLocalStorageRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating storage: %v", err)
	}
	if _, err := store.Save(context.Background(), nil, SaveOptions{Category: "images"}); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestLocalStorageDeleteRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error creating storage: %v", err)
	}
	for _, key := range []string{"../secrets.txt", "a/../../etc/passwd", ""} {
		if err := store.Delete(context.Background(), key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
