// Package storage archives uploaded invoice documents on the local
// filesystem so a stored invoice can always be traced back to its source
// PDF.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileStorage saves uploaded documents and returns their archive path
type FileStorage interface {
	SaveUpload(filename string, content []byte) (string, error)
}

// LocalFileStorage implements FileStorage on the local filesystem.
// Uploads are grouped into one directory per month.
type LocalFileStorage struct {
	baseDir string
	logger  *zap.Logger

	now func() time.Time
}

// NewLocalFileStorage creates a new LocalFileStorage rooted at baseDir
func NewLocalFileStorage(baseDir string, logger *zap.Logger) *LocalFileStorage {
	return &LocalFileStorage{
		baseDir: baseDir,
		logger:  logger,
		now:     time.Now,
	}
}

// SaveUpload writes an uploaded document under baseDir/YYYY-MM/ and
// returns the stored path. The original filename is sanitized and
// prefixed with a timestamp to keep paths unique and traversal-safe.
func (s *LocalFileStorage) SaveUpload(filename string, content []byte) (string, error) {
	now := s.now()
	dir := filepath.Join(s.baseDir, now.Format("2006-01"))
	fullPath := filepath.Join(dir, fmt.Sprintf("%d_%s", now.UnixNano(), sanitizeFilename(filename)))

	if err := s.validatePath(fullPath); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		s.logger.Error("Failed to create upload directory", zap.String("dir", dir), zap.Error(err))
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write upload", zap.String("path", fullPath), zap.Error(err))
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	s.logger.Debug("Upload archived",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))
	return fullPath, nil
}

// validatePath checks that the path stays within baseDir
func (s *LocalFileStorage) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}
	return nil
}

// sanitizeFilename strips directory components and characters that are
// unsafe in archive paths
func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "upload.pdf"
	}
	return name
}
