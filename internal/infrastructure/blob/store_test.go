package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreUploadAndURL(t *testing.T) {
	root := t.TempDir()
	s := NewFileStore(root, "https://cp.example.com/", "/evidence/")

	require.NoError(t, s.Upload(context.Background(), "evidence", "WARD-1/BAN-1/100.png", []byte("png-bytes"), "image/png"))

	data, err := os.ReadFile(filepath.Join(root, "evidence", "WARD-1", "BAN-1", "100.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	u, err := s.PublicURL("evidence", "WARD-1/BAN-1/100.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cp.example.com/evidence/WARD-1/BAN-1/100.png", u)
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	s := NewFileStore(t.TempDir(), "http://localhost", "/evidence")

	err := s.Upload(context.Background(), "evidence", "../../etc/passwd", []byte("x"), "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.PublicURL("../evidence", "a.png")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	s := NewFileStore(t.TempDir(), "http://localhost", "/evidence")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Upload(ctx, "evidence", "a/b.png", []byte("x"), "image/png")
	assert.ErrorIs(t, err, context.Canceled)
}
