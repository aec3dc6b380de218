// Package remote implements posts.Store over the Remote Post Store's REST API.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Blogsync/internal/core/posts"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	defaultUserAgent = "Blogsync/1.0"

	// maxErrorBody bounds how much of a failed response is kept in the error
	maxErrorBody = 1024
)

// Client talks to a Remote Post Store rooted at a base URL
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
	timeout    *time.Duration
}

// Ensure Client implements posts.Store.
var _ posts.Store = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the pooled cleanhttp client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets an overall per-request timeout, applied to a copy of the
// HTTP client so a client passed to WithHTTPClient is never modified.
// Zero leaves requests bounded only by the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// NewClient validates baseURL and builds a Client
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		httpClient: cleanhttp.DefaultPooledClient(),
		baseURL:    u,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches GET /posts
func (c *Client) List(ctx context.Context) ([]posts.Post, error) {
	var out []posts.Post
	if err := c.do(ctx, "listPosts", http.MethodGet, postsPath(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []posts.Post{}
	}
	return out, nil
}

// Create sends POST /posts
func (c *Client) Create(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	var out posts.Post
	if err := c.do(ctx, "createPost", http.MethodPost, postsPath(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Patch sends PATCH /posts/{id} with only the fields set in req
func (c *Client) Patch(ctx context.Context, id posts.PostID, req posts.PatchPostRequest) (*posts.Post, error) {
	var out posts.Post
	if err := c.do(ctx, "patchPost", http.MethodPatch, postPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Put sends PUT /posts/{id} with the full representation
func (c *Client) Put(ctx context.Context, id posts.PostID, req posts.PutPostRequest) (*posts.Post, error) {
	var out posts.Post
	if err := c.do(ctx, "putPost", http.MethodPut, postPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete sends DELETE /posts/{id}; any response body is ignored
func (c *Client) Delete(ctx context.Context, id posts.PostID) error {
	return c.do(ctx, "deletePost", http.MethodDelete, postPath(id), nil, nil)
}

func postsPath() string {
	return "posts"
}

func postPath(id posts.PostID) string {
	return "posts/" + url.PathEscape(id.String())
}

func (c *Client) resolve(path string) string {
	// JoinPath keeps any path prefix on the base URL
	return c.baseURL.JoinPath(path).String()
}

// do performs one JSON round trip. body and out may be nil.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return wrapStatusError(resp, operation)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", operation, err)
	}
	return nil
}

// wrapStatusError maps a non-2xx response onto the typed errors
func wrapStatusError(resp *http.Response, operation string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		sentinel = ErrBadRequest
	case resp.StatusCode == http.StatusNotFound:
		sentinel = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		sentinel = ErrConflict
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		sentinel = ErrPayloadTooLarge
	case resp.StatusCode == http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	case resp.StatusCode >= 500:
		sentinel = ErrServer
	default:
		sentinel = ErrUnexpectedStatus
	}

	return fmt.Errorf("%s: %w (status %d): %s", operation, sentinel, resp.StatusCode, message)
}
