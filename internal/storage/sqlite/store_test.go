package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/diacare/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "diacare.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	if err := store.Set(ctx, "@diabetes_care/habits", []byte(`[{"id":"water"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "@diabetes_care/habits", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := store.Get(ctx, "@diabetes_care/habits")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("expected overwritten value [], got %s", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_DeleteAndKeys(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	for _, k := range []string{"c", "a", "b"} {
		if err := store.Set(ctx, k, []byte(`1`)); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(keys, ",") != "a,b,c" {
		t.Errorf("expected a,b,c, got %v", keys)
	}

	if err := store.Delete(ctx, "a", "b"); err != nil {
		t.Fatal(err)
	}
	keys, _ = store.Keys(ctx)
	if len(keys) != 1 || keys[0] != "c" {
		t.Errorf("expected [c], got %v", keys)
	}
}

func TestStore_Reload(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	if err := store.Set(ctx, "k", []byte(`"v"`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened := NewStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	if err != nil || string(got) != `"v"` {
		t.Errorf("expected \"v\", got %s (%v)", got, err)
	}
}

func TestStore_LoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "none.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading missing database")
	}
}

func TestStore_NotLoaded(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "none.db"))
	if _, err := store.Get(context.Background(), "k"); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestStore_RejectsInvalidJSON(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Set(context.Background(), "k", []byte("nope")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestStore_SchemaVersions(t *testing.T) {
	store := setupTestStore(t)

	current, latest, err := store.SchemaVersions()
	if err != nil {
		t.Fatalf("SchemaVersions failed: %v", err)
	}
	if current != latest || latest == 0 {
		t.Errorf("current = %d, latest = %d after Init", current, latest)
	}

	unloaded := NewStore(filepath.Join(t.TempDir(), "none.db"))
	if _, _, err := unloaded.SchemaVersions(); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func verifyPragma(t *testing.T, store *Store, name, want string) {
	t.Helper()
	var got string
	if err := store.DB().QueryRow("PRAGMA " + name).Scan(&got); err != nil {
		t.Fatalf("PRAGMA %s failed: %v", name, err)
	}
	if got != want {
		t.Errorf("PRAGMA %s = %q, want %q", name, got, want)
	}
}

func TestPragma_AfterInit(t *testing.T) {
	store := setupTestStore(t)

	verifyPragma(t, store, "journal_mode", "wal")
	verifyPragma(t, store, "busy_timeout", "5000")
	// NORMAL = 1
	verifyPragma(t, store, "synchronous", "1")
}

func TestPragma_AfterLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diacare.db")
	initialized := NewStore(path)
	if err := initialized.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := initialized.Close(); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	verifyPragma(t, store, "journal_mode", "wal")
	verifyPragma(t, store, "busy_timeout", "5000")
}
