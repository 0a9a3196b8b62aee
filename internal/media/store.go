// Package media stores uploaded post images on disk. Files are
// path-addressable: the relative path recorded on the post is enough
// to serve the file back from the media root.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chirpnet/chirp/pkg/config"
	"github.com/chirpnet/chirp/pkg/logging"
)

const postPrefix = "posts"

// Store writes uploaded files below a configured root directory.
type Store struct {
	root   string
	logger *zap.Logger
}

// NewStore creates a new media store
func NewStore(cfg *config.MediaConfig) *Store {
	return &Store{
		root:   cfg.Root,
		logger: logging.WithComponent("media-store"),
	}
}

// SavePostImage stores an uploaded image and returns its relative
// path. The original filename only contributes its extension; the
// stored name is random so uploads never collide.
func (s *Store) SavePostImage(r io.Reader, originalName string) (string, error) {
	dir := filepath.Join(s.root, postPrefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	name := uuid.New().String() + filepath.Ext(originalName)
	relPath := filepath.Join(postPrefix, name)

	f, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	s.logger.Debug("stored post image", zap.String("path", relPath))
	return relPath, nil
}

// Open returns a reader for a previously stored file.
func (s *Store) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, relPath))
}
