package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/evently/internal/common"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = common.ErrorUnauthorized
	ErrInvalidData   = errors.New("invalid data")
	ErrAlreadyExists = errors.New("already exists")
	ErrRequestFailed = errors.New("request failed")
)

// APIError is a non-2xx backend response. It unwraps to one of the sentinel
// errors above (or common.ErrorNotFound) so callers can use errors.Is.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidData
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	default:
		return ErrRequestFailed
	}
}
