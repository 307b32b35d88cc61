package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "diacare.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStore_InitTwice(t *testing.T) {
	store := setupJSONStore(t)

	again := NewJSONStore(store.GetConfigPath())
	if err := again.Init(); err == nil {
		t.Error("expected error initializing an existing store")
	}
}

func TestJSONStore_LoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	err := store.Load()
	if err == nil {
		t.Fatal("expected error loading a missing store")
	}
	if !strings.Contains(err.Error(), "diacare init") {
		t.Errorf("expected init hint in error, got %v", err)
	}
}

func TestJSONStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	err := NewJSONStore(path).Load()
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestJSONStore_SetGetPersists(t *testing.T) {
	ctx := context.Background()
	store := setupJSONStore(t)

	if err := store.Set(ctx, "@diabetes_care/points", []byte(`{"totalPoints":10}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, err := reopened.Get(ctx, "@diabetes_care/points")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"totalPoints":10}` {
		t.Errorf("unexpected value %s", got)
	}
}

func TestJSONStore_GetMissingKey(t *testing.T) {
	store := setupJSONStore(t)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONStore_RejectsInvalidJSON(t *testing.T) {
	store := setupJSONStore(t)

	if err := store.Set(context.Background(), "k", []byte("{")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestJSONStore_NotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "x.json"))

	if _, err := store.Get(context.Background(), "k"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable from Get, got %v", err)
	}
	if err := store.Set(context.Background(), "k", []byte("1")); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable from Set, got %v", err)
	}
}

func TestJSONStore_DeleteAndKeys(t *testing.T) {
	ctx := context.Background()
	store := setupJSONStore(t)

	for _, k := range []string{"b", "a", "c"} {
		if err := store.Set(ctx, k, []byte(`true`)); err != nil {
			t.Fatalf("Set(%s) failed: %v", k, err)
		}
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if strings.Join(keys, ",") != "a,b,c" {
		t.Errorf("expected sorted keys a,b,c, got %v", keys)
	}

	if err := store.Delete(ctx, "a", "c", "missing"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	keys, _ = store.Keys(ctx)
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("expected only b after delete, got %v", keys)
	}
}

func TestJSONStore_FilePermissions(t *testing.T) {
	store := setupJSONStore(t)

	info, err := os.Stat(store.GetConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected file mode 0600, got %o", perm)
	}
}

func TestJSONStore_WriteFailureKeepsPreviousValue(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, directory permissions are not enforced")
	}
	ctx := context.Background()
	store := setupJSONStore(t)
	if err := store.Set(ctx, "k", []byte(`1`)); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Dir(store.GetConfigPath())
	if err := os.Chmod(dir, 0500); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(dir, 0700)

	err := store.Set(ctx, "k", []byte(`2`))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1" {
		t.Errorf("expected previous value 1, got %s", got)
	}
}

func TestJSONStore_SharedFileSeesOtherWriters(t *testing.T) {
	ctx := context.Background()
	first := setupJSONStore(t)
	second := NewJSONStore(first.GetConfigPath())
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := first.Set(ctx, "completed", []byte(`["water"]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := second.Get(ctx, "completed")
	if err != nil {
		t.Fatalf("second store missed the write: %v", err)
	}
	if string(got) != `["water"]` {
		t.Errorf("expected [\"water\"], got %s", got)
	}

	// A write from the second store must keep the first store's key.
	if err := second.Set(ctx, "points", []byte(`{"totalPoints":10}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := first.Set(ctx, "snoozed", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := NewJSONStore(first.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	keys, err := reopened.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if strings.Join(keys, ",") != "completed,points,snoozed" {
		t.Errorf("expected every writer's key on disk, got %v", keys)
	}
}
