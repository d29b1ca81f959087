package osfilesystem

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "encoded", "a__2x1__5.mkv")

	if err := fs.WriteFile(path, []byte("video")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "video" {
		t.Errorf("expected %q, got %q", "video", data)
	}

	size, err := fs.Size(path)
	if err != nil || size != 5 {
		t.Errorf("Size = %d, %v; want 5", size, err)
	}
}

func TestFileSystem_CreateAndOpen(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "decoded", "out.bin")

	w, err := fs.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := fs.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()
	data, _ := io.ReadAll(r)
	if !reflect.DeepEqual(data, []byte{1, 2, 3}) {
		t.Errorf("unexpected content %v", data)
	}
}

func TestFileSystem_RenameAndList(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	for _, name := range []string{"b.partial", "a.png", "c.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := fs.Rename(filepath.Join(dir, "b.partial"), filepath.Join(dir, "b.png")); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	names, err := fs.List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"a.png", "b.png", "c.png"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}
}

func TestFileSystem_ExistsAndRemove(t *testing.T) {
	fs := New()
	dir := filepath.Join(t.TempDir(), "frames")
	if err := fs.MkdirAll(dir); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := fs.WriteFile(filepath.Join(dir, "frame_0000.png"), []byte("x")); err != nil {
		t.Fatal(err)
	}

	exists, err := fs.Exists(dir)
	if err != nil || !exists {
		t.Fatalf("expected directory to exist: %v", err)
	}

	if err := fs.Remove(dir); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	exists, _ = fs.Exists(dir)
	if exists {
		t.Error("expected directory tree to be removed")
	}

	if _, err := fs.List(dir); err == nil {
		t.Error("expected List of missing dir to fail")
	}
}
