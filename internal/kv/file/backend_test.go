package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestBackend_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "store")

	b, err := NewBackend(dir)
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	defer b.Close()

	if _, ok, err := b.Get(ctx, "todoList"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := b.Set(ctx, "todoList", `[{"id":"1","title":"a"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Set(ctx, "todoList", `[]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, ok, err := b.Get(ctx, "todoList")
	if err != nil || !ok || v != `[]` {
		t.Fatalf("expected overwritten value, got %q ok=%v err=%v", v, ok, err)
	}

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "todoList.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected directory contents: %v", names)
	}

	if err := b.Delete(ctx, "todoList"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.Get(ctx, "todoList"); ok {
		t.Error("expected key removed")
	}
	if err := b.Delete(ctx, "todoList"); err != nil {
		t.Errorf("deleting absent key should succeed, got %v", err)
	}
}

func TestBackend_DatabasePathUsesDirectory(t *testing.T) {
	dir := t.TempDir()

	b, err := NewBackend(filepath.Join(dir, "todo.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Set(context.Background(), "todoList", "[]"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "todoList.json")); err != nil {
		t.Errorf("expected value stored next to the configured path: %v", err)
	}
}

func TestBackend_RejectsBadKeys(t *testing.T) {
	b, err := NewBackend(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		if err := b.Set(context.Background(), key, "x"); err == nil {
			t.Errorf("expected key %q to be rejected", key)
		}
	}
}
