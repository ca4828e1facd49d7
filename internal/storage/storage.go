// Package storage handles image ingestion: extension validation, unique
// object naming and delivery of the bytes to a blob store that serves them
// back over public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnsupportedFormat is returned for any file outside the image allow-list.
var ErrUnsupportedFormat = errors.New("not supported format")

// BlobStore persists named blobs and returns the public URL they will be
// served from.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// Upload is one incoming file: the client-supplied name plus the raw bytes.
type Upload struct {
	OriginalName string
	Data         []byte
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ValidateExt checks the file name against the image allow-list,
// case-insensitively.
func ValidateExt(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := contentTypes[ext]; !ok {
		return ErrUnsupportedFormat
	}
	return nil
}

// ObjectName derives a collision-resistant storage name from the original
// file name, keeping the base name for readability.
func ObjectName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	return fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixNano(), uuid.NewString(), ext)
}

func contentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
