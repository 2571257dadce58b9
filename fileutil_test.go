package wavfx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := os.WriteFile(dst, []byte("older and longer"), 0o644); err != nil {
		t.Fatalf("write dst: %v", err)
	}

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}

	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Fatalf("dst=%q, want %q", got, "new")
	}

	err := copyFile(filepath.Join(dir, "missing"), dst)
	if !errors.Is(err, ErrFileOpen) {
		t.Fatalf("err=%v, want %v", err, ErrFileOpen)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := moveFile(src, dst); err != nil {
		t.Fatalf("moveFile failed: %v", err)
	}

	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("src still exists (err=%v)", err)
	}

	got, _ := os.ReadFile(dst)
	if string(got) != "data" {
		t.Fatalf("dst=%q, want %q", got, "data")
	}
}

func TestRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone")

	if err := removeIfExists(path); err != nil {
		t.Fatalf("removing a missing file failed: %v", err)
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := removeIfExists(path); err != nil {
		t.Fatalf("removeIfExists failed: %v", err)
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file still exists (err=%v)", err)
	}
}
