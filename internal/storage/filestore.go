package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore is the profile-picture collaborator. Remove is best-effort by
// contract: the cascade deletion engine calls it outside the transaction and
// ignores failures.
type FileStore interface {
	Save(userID uint, filename string, r io.Reader) (string, error)
	Remove(filename string) error
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const maxFileSize = 5 << 20 // 5 MiB

// LocalFileStore keeps uploads in a directory on local disk.
type LocalFileStore struct {
	dir string
}

func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalFileStore{dir: dir}, nil
}

func (s *LocalFileStore) Save(userID uint, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %q not allowed", ext)
	}

	name := fmt.Sprintf("user_%d_%s%s", userID, uuid.New().String(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, maxFileSize+1)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	if info, err := f.Stat(); err == nil && info.Size() > maxFileSize {
		os.Remove(path)
		return "", fmt.Errorf("file exceeds %d bytes", maxFileSize)
	}

	return name, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *LocalFileStore) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	// Guard against path traversal from stored values.
	name := filepath.Base(filename)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
