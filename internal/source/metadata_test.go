package source

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMetadata(t *testing.T) {
	content := []byte("known content for hashing")
	path := filepath.Join(t.TempDir(), "artifact.bin")
	require.NoError(t, os.WriteFile(path, content, 0644))

	meta := FileMetadata(context.Background(), path)
	require.NotNil(t, meta)

	assert.Equal(t, "artifact.bin", meta.Name)
	assert.True(t, filepath.IsAbs(meta.Path))
	assert.Equal(t, int64(len(content)), meta.Size)

	md5sum := md5.Sum(content)
	sha1sum := sha1.Sum(content)
	sha256sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(md5sum[:]), meta.MD5)
	assert.Equal(t, hex.EncodeToString(sha1sum[:]), meta.SHA1)
	assert.Equal(t, hex.EncodeToString(sha256sum[:]), meta.SHA256)

	assert.False(t, meta.ModifiedAt.IsZero())
	// Stat times the portable API cannot provide fall back to mtime.
	assert.Equal(t, meta.ModifiedAt, meta.AccessedAt)
	assert.Equal(t, meta.ModifiedAt, meta.CreatedAt)
}

func TestFileMetadataIsAdvisory(t *testing.T) {
	// A missing file is reported as nil metadata, never as a failure.
	assert.Nil(t, FileMetadata(context.Background(), "/nonexistent/path.bin"))
}

func TestFileMetadataEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	meta := FileMetadata(context.Background(), path)
	require.NotNil(t, meta)
	assert.Equal(t, int64(0), meta.Size)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", meta.MD5)
}
