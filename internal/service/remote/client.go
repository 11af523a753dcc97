package remote

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

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	applog "github.com/janisto/profile-console/internal/platform/logging"
	"github.com/janisto/profile-console/internal/profile"
)

const (
	defaultBaseURL = "http://localhost:8081/v1"
	userAgent      = "profile-console"
	acceptHeader   = "application/json, application/problem+json"

	// maxErrorBody bounds how much of an error response is read for its problem document.
	maxErrorBody = 64 << 10
)

// Client implements Service against the profile HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API base URL, e.g. "http://localhost:8081/v1".
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// NewClient creates a new profile API client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Name    string           `json:"name"`
	Profile *profile.Profile `json:"profile"`
}

type problemDocument struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		req.Header.Set(chimiddleware.RequestIDHeader, reqID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		applog.LogWarn(ctx, "profile api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &UpstreamError{Kind: UpstreamErrorKindTransport, cause: errors.Join(ErrTransport, err)}
	}
	return resp, nil
}

func (c *Client) decodeResponse(ctx context.Context, resp *http.Response, target any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if target == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return &UpstreamError{
				Kind:   UpstreamErrorKindUpstream,
				Status: resp.StatusCode,
				cause:  fmt.Errorf("%w: decoding response: %w", ErrUpstream, err),
			}
		}
		return nil
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return upstreamErrorFromResponse(resp, UpstreamErrorKindNotFound, ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return upstreamErrorFromResponse(resp, UpstreamErrorKindRejected, ErrRejected)
	default:
		applog.LogWarn(ctx, "profile api returned error", zap.Int("status", resp.StatusCode))
		return upstreamErrorFromResponse(resp, UpstreamErrorKindUpstream, ErrUpstream)
	}
}

// CreateOrUpdate posts the draft to the login endpoint.
func (c *Client) CreateOrUpdate(ctx context.Context, name string, draft *profile.Profile) (*profile.Profile, error) {
	if draft == nil {
		return nil, errors.New("remote: nil draft")
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/login", loginRequest{Name: name, Profile: draft})
	if err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var p profile.Profile
	if err := c.decodeResponse(ctx, resp, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchCurrent reads the current profile; a 404 reports absence.
func (c *Client) FetchCurrent(ctx context.Context) (*profile.Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/profile", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var p profile.Profile
	if err := c.decodeResponse(ctx, resp, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes the profile with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.decodeResponse(ctx, resp, nil)
}

func upstreamErrorFromResponse(resp *http.Response, kind UpstreamErrorKind, cause error) *UpstreamError {
	return &UpstreamError{
		Kind:    kind,
		Status:  resp.StatusCode,
		Message: problemMessage(resp),
		cause:   cause,
	}
}

// problemMessage extracts detail, or title, from a problem document body.
func problemMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var doc problemDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ""
	}
	if doc.Detail != "" {
		return doc.Detail
	}
	return doc.Title
}

// Compile-time interface check
var _ Service = (*Client)(nil)
