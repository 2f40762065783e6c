package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/evently/internal/client/models"
	"github.com/dmitrijs2005/evently/internal/common"
	"github.com/dmitrijs2005/evently/internal/logging"
	"github.com/google/uuid"
)

const maxErrorBody = 4 << 10

// HTTPClient is the JSON/HTTP implementation of Client.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     logging.Logger
}

type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) { h.http = c }
}

func WithLogger(l logging.Logger) HTTPOption {
	return func(h *HTTPClient) { h.log = l }
}

// NewHTTPClient targets apiURL (scheme and host, "/api" is appended).
// A zero timeout disables the per-request deadline.
func NewHTTPClient(apiURL string, timeout time.Duration, opts ...HTTPOption) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(apiURL))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", apiURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api url %q: missing host", apiURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/") + "/api",
		timeout: timeout,
		http:    &http.Client{},
		log:     logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root requests are sent to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

type serviceEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *HTTPClient) Register(ctx context.Context, in models.UserRegistration) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListServices(ctx context.Context) ([]models.ServiceRecord, error) {
	var out models.ListServiceResponse
	if err := c.do(ctx, http.MethodGet, "/services", "", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return []models.ServiceRecord{}, nil
	}
	return out.Data, nil
}

// GetService fetches one record. A response whose data is missing, null or an
// array is reported as common.ErrorNotFound.
func (c *HTTPClient) GetService(ctx context.Context, id string) (*models.ServiceRecord, error) {
	var env serviceEnvelope
	if err := c.do(ctx, http.MethodGet, servicePath(id), "", nil, &env); err != nil {
		return nil, err
	}
	rec, err := decodeRecord(env.Data)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("service %s: %w", id, common.ErrorNotFound)
	}
	return rec, nil
}

func (c *HTTPClient) CreateService(ctx context.Context, token string, in models.ServiceRegistration) (*models.ServiceRecord, error) {
	var env serviceEnvelope
	if err := c.do(ctx, http.MethodPost, "/services", token, in, &env); err != nil {
		return nil, err
	}
	return decodeRecord(env.Data)
}

func (c *HTTPClient) UpdateService(ctx context.Context, token string, id string, in models.ServiceRegistration) (*models.ServiceRecord, error) {
	var env serviceEnvelope
	if err := c.do(ctx, http.MethodPut, servicePath(id), token, in, &env); err != nil {
		return nil, err
	}
	return decodeRecord(env.Data)
}

func (c *HTTPClient) DeleteService(ctx context.Context, token string, id string) error {
	return c.do(ctx, http.MethodDelete, servicePath(id), token, nil, nil)
}

func servicePath(id string) string {
	return "/services/" + url.PathEscape(id)
}

// decodeRecord returns nil when raw does not hold a single object.
func decodeRecord(raw json.RawMessage) (*models.ServiceRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}
	var rec models.ServiceRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, fmt.Errorf("decode service: %w", err)
	}
	return &rec, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	log := c.log.With("request_id", reqID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "err", err)
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func errorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var env errorEnvelope
	if json.Unmarshal(b, &env) == nil {
		if env.Message != "" {
			return env.Message
		}
		return env.Error
	}
	return strings.TrimSpace(string(b))
}
