package source

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/parsekit/internal/ctxlog"
)

// Metadata describes a file-backed source on the local system. Times are
// reported in UTC.
type Metadata struct {
	Name       string    `json:"file_name"`
	Path       string    `json:"file_path"`
	Size       int64     `json:"file_size"`
	MD5        string    `json:"md5hash"`
	SHA1       string    `json:"sha1hash"`
	SHA256     string    `json:"sha2hash"`
	ModifiedAt time.Time `json:"modify_time"`
	AccessedAt time.Time `json:"access_time"`
	CreatedAt  time.Time `json:"create_time"`
}

// FileMetadata collects name, size, hashes and stat times for the file at
// path. Failures are logged and reported as a nil Metadata rather than an
// error: metadata is advisory, never a reason to abort a parse. Access and
// creation times fall back to the modification time, the only stat time the
// portable API exposes.
func FileMetadata(ctx context.Context, path string) *Metadata {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		logger.Error("Failed to retrieve metadata for file.", "path", path, "error", err)
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		logger.Error("Failed to resolve absolute path for file.", "path", path, "error", err)
		return nil
	}

	md5sum, err := hashFile(path, md5.New())
	if err != nil {
		logger.Error("Unable to obtain md5 hash of file.", "path", path, "error", err)
		return nil
	}
	sha1sum, err := hashFile(path, sha1.New())
	if err != nil {
		logger.Error("Unable to obtain sha1 hash of file.", "path", path, "error", err)
		return nil
	}
	sha256sum, err := hashFile(path, sha256.New())
	if err != nil {
		logger.Error("Unable to obtain sha256 hash of file.", "path", path, "error", err)
		return nil
	}

	mtime := info.ModTime().UTC()
	return &Metadata{
		Name:       filepath.Base(abs),
		Path:       abs,
		Size:       info.Size(),
		MD5:        md5sum,
		SHA1:       sha1sum,
		SHA256:     sha256sum,
		ModifiedAt: mtime,
		AccessedAt: mtime,
		CreatedAt:  mtime,
	}
}

// hashFile streams the file through h in 4 KiB chunks and returns the hex
// digest.
func hashFile(path string, h hash.Hash) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 4096)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
