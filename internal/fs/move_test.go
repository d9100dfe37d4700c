package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/babarot/rsycle/internal/core"
)

func TestMove(t *testing.T) {
	dir := tempDir(t)
	srcPath := filepath.Join(dir, "source.txt")
	dstPath := filepath.Join(dir, "destination.txt")
	content := "test content"
	createTestFile(t, srcPath, content)

	if err := Move(srcPath, dstPath, MoveOptions{}); err != nil {
		t.Fatalf("Failed to move file: %v", err)
	}

	if _, err := os.Stat(srcPath); !os.IsNotExist(err) {
		t.Fatal("Source file should not exist after move")
	}

	dstContent, err := os.ReadFile(dstPath)
	if err != nil {
		t.Fatalf("Failed to read destination file: %v", err)
	}
	if string(dstContent) != content {
		t.Fatalf("Destination file content mismatch. Expected %q, got %q", content, dstContent)
	}
}

func TestMoveDirectory(t *testing.T) {
	dir := tempDir(t)
	src := filepath.Join(dir, "tree")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	createTestFile(t, filepath.Join(src, "nested", "leaf"), "leaf")

	dst := filepath.Join(dir, "moved")
	if err := Move(src, dst, MoveOptions{}); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "nested", "leaf")); err != nil {
		t.Errorf("moved tree incomplete: %v", err)
	}
}

func TestMoveNeverReplaces(t *testing.T) {
	dir := tempDir(t)
	src := filepath.Join(dir, "a")
	dst := filepath.Join(dir, "b")
	createTestFile(t, src, "new")
	createTestFile(t, dst, "old")

	err := Move(src, dst, MoveOptions{})
	if !errors.Is(err, core.ErrDestinationExists) {
		t.Fatalf("Move() error = %v, want ErrDestinationExists", err)
	}
	var me *MoveError
	if !errors.As(err, &me) {
		t.Errorf("Move() error should be a *MoveError, got %T", err)
	}

	got, _ := os.ReadFile(dst)
	if string(got) != "old" {
		t.Errorf("destination was overwritten: %q", got)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source should be untouched: %v", err)
	}
}

func TestMoveSourceNotFound(t *testing.T) {
	dir := tempDir(t)
	err := Move(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"), MoveOptions{})
	if !errors.Is(err, core.ErrSourceNotFound) {
		t.Errorf("Move() error = %v, want ErrSourceNotFound", err)
	}
}

func TestMoveMissingParent(t *testing.T) {
	dir := tempDir(t)
	src := filepath.Join(dir, "a")
	createTestFile(t, src, "a")
	err := Move(src, filepath.Join(dir, "nope", "a"), MoveOptions{})
	if !errors.Is(err, core.ErrMoveFailed) {
		t.Errorf("Move() error = %v, want ErrMoveFailed", err)
	}
}

func TestCopyAndDelete(t *testing.T) {
	dir := tempDir(t)
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	createTestFile(t, src, "payload")

	if err := copyAndDelete(src, dst); err != nil {
		t.Fatalf("copyAndDelete() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be removed after copy")
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "payload" {
		t.Errorf("destination = %q, %v", got, err)
	}

	createTestFile(t, src, "again")
	if err := copyAndDelete(src, dst); !errors.Is(err, core.ErrDestinationExists) {
		t.Errorf("copyAndDelete() onto existing error = %v, want ErrDestinationExists", err)
	}
}

func TestDirSize(t *testing.T) {
	dir := tempDir(t)
	createTestFile(t, filepath.Join(dir, "a"), "12345")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	createTestFile(t, filepath.Join(dir, "sub", "b"), "123")

	size, err := DirSize(dir)
	if err != nil {
		t.Fatalf("DirSize() error = %v", err)
	}
	if size != 8 {
		t.Errorf("DirSize() = %d, want 8", size)
	}

	size, err = DirSize(filepath.Join(dir, "a"))
	if err != nil || size != 5 {
		t.Errorf("DirSize(file) = %d, %v, want 5", size, err)
	}
}
