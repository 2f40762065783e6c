package images

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// readImage loads path, enforcing limit and sniffing the content type.
func readImage(path string, limit int64) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	if info.Size() > limit {
		return nil, "", fmt.Errorf("%s is %d bytes: %w", path, info.Size(), ErrFileTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%s: %w", path, ErrFileTooLarge)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", fmt.Errorf("%s (%s): %w", path, mime, ErrNotImage)
	}
	return data, mime, nil
}
