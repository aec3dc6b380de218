package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Blogsync/internal/core/posts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "https", baseURL: "https://jsonplaceholder.typicode.com"},
		{name: "http with prefix", baseURL: "http://localhost:8082/api"},
		{name: "relative", baseURL: "/posts", wantErr: true},
		{name: "ftp", baseURL: "ftp://example.com", wantErr: true},
		{name: "empty", baseURL: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.baseURL)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBaseURL)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWithTimeout(t *testing.T) {
	c, err := NewClient("http://localhost", WithTimeout(3*time.Second), WithUserAgent("test-agent"))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.Equal(t, "test-agent", c.userAgent)
}

func TestWithTimeout_OptionOrder(t *testing.T) {
	tests := []struct {
		name string
		opts func(shared *http.Client) []Option
	}{
		{
			name: "timeout after client",
			opts: func(shared *http.Client) []Option {
				return []Option{WithHTTPClient(shared), WithTimeout(2 * time.Second)}
			},
		},
		{
			name: "timeout before client",
			opts: func(shared *http.Client) []Option {
				return []Option{WithTimeout(2 * time.Second), WithHTTPClient(shared)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shared := &http.Client{Timeout: time.Minute}

			c, err := NewClient("http://localhost", tt.opts(shared)...)
			require.NoError(t, err)

			assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
			assert.Equal(t, time.Minute, shared.Timeout)
			assert.NotSame(t, shared, c.httpClient)
		})
	}
}

func TestWithHTTPClient_NoTimeoutKeepsClient(t *testing.T) {
	shared := &http.Client{}
	c, err := NewClient("http://localhost", WithHTTPClient(shared))
	require.NoError(t, err)
	assert.Same(t, shared, c.httpClient)
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"userId":1,"id":1,"title":"sunt aut","body":"quia et"},{"userId":1,"id":"abc","title":"qui est","body":"est rerum"}]`)
	})

	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, posts.PostID("1"), got[0].ID)
	assert.Equal(t, "sunt aut", got[0].Title)
	assert.Equal(t, 1, got[0].UserID)
	assert.Equal(t, posts.PostID("abc"), got[1].ID)
}

func TestList_EmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"title": "foo", "body": "bar", "userId": float64(1)}, body)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":101,"title":"foo","body":"bar","userId":1}`)
	})

	got, err := c.Create(context.Background(), posts.CreatePostRequest{Title: "foo", Body: "bar", UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, posts.PostID("101"), got.ID)
}

func TestPatch_SendsOnlySetFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/posts/1", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"new"}`, string(raw))

		_, _ = io.WriteString(w, `{"id":1,"title":"new","body":"old","userId":1}`)
	})

	title := "new"
	got, err := c.Patch(context.Background(), "1", posts.PatchPostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "old", got.Body)
}

func TestPut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/posts/7", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":7,"title":"t","body":"b","userId":2}`, string(raw))

		_, _ = w.Write(raw)
	})

	got, err := c.Put(context.Background(), "7", posts.PutPostRequest{ID: "7", Title: "t", Body: "b", UserID: 2})
	require.NoError(t, err)
	assert.Equal(t, posts.PostID("7"), got.ID)
	assert.Equal(t, 2, got.UserID)
}

func TestDelete_EscapesID(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, `{}`)
	})

	require.NoError(t, c.Delete(context.Background(), "a/b c"))
	assert.Equal(t, "/posts/a%2Fb%20c", gotPath)
}

func TestBaseURLPrefixIsKept(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/posts", r.URL.Path)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	c, err := NewClient(server.URL+"/api/v1/", WithHTTPClient(server.Client()))
	require.NoError(t, err)
	_, err = c.List(context.Background())
	require.NoError(t, err)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, want: ErrBadRequest},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, want: ErrConflict},
		{name: "too large", status: http.StatusRequestEntityTooLarge, want: ErrPayloadTooLarge},
		{name: "rate limited", status: http.StatusTooManyRequests, want: ErrRateLimited},
		{name: "server error", status: http.StatusInternalServerError, want: ErrServer},
		{name: "bad gateway", status: http.StatusBadGateway, want: ErrServer},
		{name: "teapot", status: http.StatusTeapot, want: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"error":"Oops","message":"nope"}`)
			})

			_, err := c.Create(context.Background(), posts.CreatePostRequest{Title: "t", Body: "b"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "createPost")
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestErrorBodyIsTruncated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, strings.Repeat("x", 4*maxErrorBody))
	})

	err := c.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 2*maxErrorBody)
	assert.True(t, IsRetryable(err))
}

func TestIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	err := c.Delete(context.Background(), "999")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	})

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
