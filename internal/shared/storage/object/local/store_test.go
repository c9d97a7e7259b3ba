package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gamelog-gateway/internal/shared/storage/object"
)

func TestSaveCreatesDirectoryAndWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := New(dir)

	n, err := store.Save(context.Background(), "a.json", strings.NewReader(`{"events":[]}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != int64(len(`{"events":[]}`)) {
		t.Fatalf("unexpected size %d", n)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"events":[]}` {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestSaveRefusesOverwrite(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Save(ctx, "dup.csv", strings.NewReader("first")); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, err := store.Save(ctx, "dup.csv", strings.NewReader("second"))
	if !errors.Is(err, object.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(store.Dir(), "dup.csv"))
	if string(data) != "first" {
		t.Fatalf("file was overwritten: %q", data)
	}
}

func TestSaveRejectsNestedKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"", "..", "../x", "a/b", `a\b`} {
		if _, err := store.Save(context.Background(), key, strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestSaveRemovesPartialFileOnError(t *testing.T) {
	store := New(t.TempDir())

	r := io.MultiReader(strings.NewReader("partial"), failingReader{})
	if _, err := store.Save(context.Background(), "broken.json", r); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "broken.json")); !os.IsNotExist(err) {
		t.Fatalf("expected partial file to be removed, stat err=%v", err)
	}
}

func TestEnsureReportsCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store := New(dir)

	created, err := store.Ensure()
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}
	created, err = store.Ensure()
	if err != nil || created {
		t.Fatalf("expected existing dir, got created=%v err=%v", created, err)
	}
}

func TestListAndDelete(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Save(ctx, "one.json", strings.NewReader("1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.Mkdir(filepath.Join(store.Dir(), "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "one.json" || entries[0].Size != 1 {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if time.Since(entries[0].ModTime) > time.Minute {
		t.Fatalf("unexpected mod time %s", entries[0].ModTime)
	}

	if err := store.Delete(ctx, "one.json"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "one.json"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	entries, _ = store.List(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected empty store, got %+v", entries)
	}
}

func TestListMissingDirectory(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing"))
	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries")
	}
}
