package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaveUpload(t *testing.T) {
	base := t.TempDir()
	s := NewLocalFileStorage(base, zap.NewNop())
	s.now = func() time.Time { return time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC) }

	path, err := s.SaveUpload("invoice.pdf", []byte("%PDF-1.4 test"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "2024-03"), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_invoice.pdf"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(content))
}

func TestSaveUpload_SanitizesFilename(t *testing.T) {
	base := t.TempDir()
	s := NewLocalFileStorage(base, zap.NewNop())

	path, err := s.SaveUpload("../../etc/passwd", []byte("data"))
	require.NoError(t, err)

	rel, err := filepath.Rel(base, path)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."), "archived path must stay inside the base directory")
	assert.True(t, strings.HasSuffix(path, "_passwd"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"invoice.pdf", "invoice.pdf"},
		{"my invoice (1).pdf", "my_invoice__1_.pdf"},
		{"..", "upload.pdf"},
		{"", "upload.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), tt.in)
	}
}
