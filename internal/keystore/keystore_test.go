package keystore

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		if err := store.Set("pin_hash", []byte("blob")); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		got, err := store.Get("pin_hash")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if string(got) != "blob" {
			t.Errorf("expected blob, got %q", got)
		}
	})

	t.Run("missing_key", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		_, err = store.Get("absent")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("overwrite_replaces_blob", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		if err := store.Set("enc_key", []byte("first")); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := store.Set("enc_key", []byte("second")); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		got, err := store.Get("enc_key")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("expected second, got %q", got)
		}
	})

	t.Run("delete_is_idempotent", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		if err := store.Set("pin_hash", []byte("blob")); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := store.Delete("pin_hash"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if err := store.Delete("pin_hash"); err != nil {
			t.Errorf("expected deleting an absent key to succeed, got %v", err)
		}

		if _, err := store.Get("pin_hash"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("blob_files_are_private", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		if err := store.Set("enc_key", []byte("secret")); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		info, err := os.Stat(filepath.Join(dir, hex.EncodeToString([]byte("enc_key"))))
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("expected 0600 blob file, got %o", perm)
		}
	})

	t.Run("key_names_are_hex_encoded", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		// A hostile key name must not escape the keystore directory.
		if err := store.Set("../escape", []byte("blob")); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape")); !os.IsNotExist(err) {
			t.Error("expected no file outside the keystore directory")
		}
		if _, err := store.Get("../escape"); err != nil {
			t.Errorf("expected hostile key to round-trip inside the store, got %v", err)
		}
	})
}

func TestMemStore(t *testing.T) {
	t.Run("copies_are_defensive", func(t *testing.T) {
		store := NewMemStore()

		blob := []byte("original")
		if err := store.Set("k", blob); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		blob[0] = 'X'

		got, err := store.Get("k")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if string(got) != "original" {
			t.Errorf("expected stored blob to be isolated from caller mutation, got %q", got)
		}
	})
}
