package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileStorage persists uploaded assets under a single content root and hands
// back collision-free relative references.
type FileStorage struct {
	Root string
}

func New(root string) *FileStorage {
	return &FileStorage{Root: root}
}

// EnsureDir creates the content root if it does not exist yet. Safe to call
// repeatedly.
func (fs *FileStorage) EnsureDir() error {
	if err := os.MkdirAll(fs.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory %s: %w", fs.Root, err)
	}
	return nil
}

// Store writes the asset under a generated filename and returns the filename
// as a forward-slash relative reference. The filename keeps the original
// extension so the static file server can infer the content type.
func (fs *FileStorage) Store(src io.Reader, originalName string) (string, error) {
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(originalName))
	savePath := filepath.Join(fs.Root, filename)

	dst, err := os.Create(savePath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", savePath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(savePath)
		return "", fmt.Errorf("failed to write %s: %w", savePath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", savePath, err)
	}

	// The reference is only handed out once the file is verifiably on disk.
	if _, err := os.Stat(savePath); err != nil {
		return "", fmt.Errorf("uploaded file was not saved correctly: %w", err)
	}

	return filename, nil
}
