package osfilesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "osfilesystem_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	path := filepath.Join(tempDir(t), "a", "b", "frame.yuv")

	if err := fs.WriteFile(path, []byte{16, 128, 128}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string([]byte{16, 128, 128}) {
		t.Errorf("unexpected contents: %v", data)
	}
}

func TestFileSystem_CreateAndOpen(t *testing.T) {
	fs := New()
	path := filepath.Join(tempDir(t), "nested", "stream.y4m")

	w, err := fs.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := io.WriteString(w, "YUV4MPEG2 W2 H2\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r, err := fs.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "YUV4MPEG2 W2 H2\n" {
		t.Errorf("unexpected contents: %q", data)
	}

	if _, err := fs.Open(filepath.Join(filepath.Dir(path), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileSystem_MkdirAllAndExists(t *testing.T) {
	fs := New()
	dir := tempDir(t)

	path := filepath.Join(dir, "a", "b", "c")
	if err := fs.MkdirAll(path); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	exists, err := fs.Exists(path)
	if err != nil || !exists {
		t.Errorf("expected directory to exist (err=%v)", err)
	}

	exists, err = fs.Exists(filepath.Join(dir, "nonexistent.txt"))
	if err != nil || exists {
		t.Errorf("expected file to not exist (err=%v)", err)
	}
}
