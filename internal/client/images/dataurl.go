package images

import (
	"context"
	"encoding/base64"
)

// DataURLEncoder inlines the image as a base64 data URL.
type DataURLEncoder struct {
	// MaxSize overrides MaxFileSize when positive.
	MaxSize int64
}

func (e DataURLEncoder) Encode(_ context.Context, path string) (string, error) {
	limit := MaxFileSize
	if e.MaxSize > 0 {
		limit = e.MaxSize
	}

	data, mime, err := readImage(path, limit)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
