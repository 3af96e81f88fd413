package rewrite

import (
	"context"
	"os"
)

// 💾 FileSystem is the file access a Rewriter needs
type FileSystem interface {
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte, perm os.FileMode) error
}

// OSFileSystem reads and writes the local disk
type OSFileSystem struct{}

func (OSFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (OSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile truncates and rewrites an existing file. It never creates one.
// The truncate happens on open, so a failed Write leaves the file empty or
// partially written.
func (OSFileSystem) WriteFile(ctx context.Context, path string, content []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
