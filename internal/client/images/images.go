// Package images turns a local picture into the image reference stored on a
// service record: either an inline data URL or the public URL of an upload.
package images

import (
	"context"
	"errors"
	"strings"
)

// MaxFileSize is the largest image accepted, 5 MiB.
const MaxFileSize int64 = 5 << 20

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotImage     = errors.New("file is not an image")
)

// Encoder converts the file at path into an image reference.
type Encoder interface {
	Encode(ctx context.Context, path string) (string, error)
}

// IsReference reports whether value is already usable as an image reference.
func IsReference(value string) bool {
	v := strings.ToLower(value)
	return strings.HasPrefix(v, "http://") ||
		strings.HasPrefix(v, "https://") ||
		strings.HasPrefix(v, "data:")
}

// Resolve returns value unchanged when it is empty or already a reference,
// and otherwise encodes it as a file path with enc.
func Resolve(ctx context.Context, enc Encoder, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || IsReference(value) {
		return value, nil
	}
	return enc.Encode(ctx, value)
}
