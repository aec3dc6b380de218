package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"Blogsync/internal/core/posts"
	"Blogsync/internal/core/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory posts.Store that records calls
type fakeStore struct {
	mu      sync.Mutex
	items   []posts.Post
	listErr error
	calls   map[string]int
	nextID  int
}

func newFakeStore(n int) *fakeStore {
	s := &fakeStore{calls: make(map[string]int), nextID: n + 1}
	for i := 1; i <= n; i++ {
		s.items = append(s.items, posts.Post{
			ID:     posts.PostID(fmt.Sprintf("%d", i)),
			Title:  fmt.Sprintf("title %d", i),
			Body:   "body",
			UserID: 1,
		})
	}
	return s
}

func (s *fakeStore) record(name string) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()
}

func (s *fakeStore) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *fakeStore) List(ctx context.Context) ([]posts.Post, error) {
	s.record("list")
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]posts.Post(nil), s.items...), nil
}

func (s *fakeStore) Create(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	s.record("create")
	s.mu.Lock()
	defer s.mu.Unlock()
	p := posts.Post{ID: posts.PostID(fmt.Sprintf("%d", s.nextID)), Title: req.Title, Body: req.Body, UserID: req.UserID}
	s.nextID++
	s.items = append(s.items, p)
	return &p, nil
}

func (s *fakeStore) Patch(ctx context.Context, id posts.PostID, req posts.PatchPostRequest) (*posts.Post, error) {
	s.record("patch")
	return &posts.Post{ID: id}, nil
}

func (s *fakeStore) Put(ctx context.Context, id posts.PostID, req posts.PutPostRequest) (*posts.Post, error) {
	s.record("put")
	return &posts.Post{ID: id, Title: req.Title, Body: req.Body, UserID: req.UserID}, nil
}

func (s *fakeStore) Delete(ctx context.Context, id posts.PostID) error {
	s.record("delete")
	return nil
}

func newTestSession(t *testing.T, store posts.Store) *Session {
	t.Helper()
	s := New(store, DefaultOptions(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(s.Close)
	return s
}

func TestRefresh_RevealsFirstPage(t *testing.T) {
	s := newTestSession(t, newFakeStore(7))

	assert.Empty(t, s.Posts())
	require.Equal(t, status.Succeeded, s.Refresh(context.Background()))

	assert.Equal(t, 7, s.Collection().Len())
	assert.Len(t, s.Posts(), 5)
	assert.Equal(t, 1, s.View().Page())
	assert.Equal(t, status.Succeeded, s.Status(status.List))
}

func TestRefresh_FailureRevealsNothing(t *testing.T) {
	store := newFakeStore(7)
	store.listErr = errors.New("offline")
	s := newTestSession(t, store)

	assert.Equal(t, status.Failed, s.Refresh(context.Background()))
	assert.Empty(t, s.Posts())
	assert.Zero(t, s.Collection().Len())
}

func TestScrolled_SevenPosts(t *testing.T) {
	s := newTestSession(t, newFakeStore(7))
	require.Equal(t, status.Succeeded, s.Refresh(context.Background()))

	assert.Equal(t, 0, s.Scrolled(0))
	assert.Equal(t, 2, s.Scrolled(4))
	assert.Len(t, s.Posts(), 7)
	assert.Equal(t, 2, s.View().Page())

	assert.Equal(t, 0, s.LoadMore())
	assert.Len(t, s.Posts(), 7)
	assert.Equal(t, 2, s.View().Page())
}

func TestCreate_CollectionStaleUntilRefresh(t *testing.T) {
	store := newFakeStore(3)
	s := newTestSession(t, store)
	ctx := context.Background()
	require.Equal(t, status.Succeeded, s.Refresh(ctx))

	require.Equal(t, status.Succeeded, s.Create(ctx, posts.CreatePostRequest{Title: "new", Body: "b", UserID: 1}))
	assert.Equal(t, 3, s.Collection().Len())
	assert.Equal(t, 1, store.count("list"))

	require.Equal(t, status.Succeeded, s.Refresh(ctx))
	assert.Equal(t, 4, s.Collection().Len())
	// Initialize does not run again, and the next page starts at index 5
	assert.Len(t, s.Posts(), 3)
	assert.Equal(t, 0, s.LoadMore())
	assert.Len(t, s.Posts(), 3)
}

func TestMutationsDelegate(t *testing.T) {
	store := newFakeStore(2)
	s := newTestSession(t, store)
	ctx := context.Background()
	title := "patched"

	assert.Equal(t, status.Succeeded, s.Patch(ctx, "1", posts.PatchPostRequest{Title: &title}))
	assert.Equal(t, status.Succeeded, s.Put(ctx, "1", posts.PutPostRequest{ID: "1", Title: "t", Body: "b", UserID: 1}))

	confirm := s.RequestDelete(posts.Post{ID: "2", Title: "title 2"})
	assert.Equal(t, status.Idle, s.Status(status.Delete))
	assert.Equal(t, status.Succeeded, confirm.Confirm(ctx))

	assert.Equal(t, 1, store.count("patch"))
	assert.Equal(t, 1, store.count("put"))
	assert.Equal(t, 1, store.count("delete"))
	assert.Equal(t, status.Succeeded, s.Tracker().Get(status.Delete))
}

func TestClose_StopsInitialize(t *testing.T) {
	s := New(newFakeStore(4), DefaultOptions(), nil)
	s.Close()
	s.Close()

	require.Equal(t, status.Succeeded, s.Refresh(context.Background()))
	assert.Equal(t, 4, s.Collection().Len())
	assert.Empty(t, s.Posts())
}

func TestNew_InvalidPageSizeFallsBack(t *testing.T) {
	s := newTestSession(t, newFakeStore(1))
	assert.Equal(t, 5, s.View().PageSize())

	s2 := New(newFakeStore(1), Options{PageSize: -3}, nil)
	defer s2.Close()
	assert.Equal(t, 5, s2.View().PageSize())
}
