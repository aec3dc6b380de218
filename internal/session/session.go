// Package session holds the per-session state of the blog client: the status
// tracker, the post collection, the paged view, and the mutation coordinator.
// A Session is built once and passed by reference to whatever drives it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"Blogsync/internal/core/collection"
	"Blogsync/internal/core/mutations"
	"Blogsync/internal/core/paging"
	"Blogsync/internal/core/posts"
	"Blogsync/internal/core/status"
)

// Options tunes the paged view
type Options struct {
	PageSize int
	Trigger  paging.Trigger
}

// DefaultOptions returns page size 5 and the default load-more threshold
func DefaultOptions() Options {
	return Options{
		PageSize: paging.DefaultPageSize,
		Trigger:  paging.DefaultTrigger(),
	}
}

// Session wires the core components together
type Session struct {
	tracker     *status.Tracker
	cache       *collection.Cache
	view        *paging.View
	coordinator *mutations.Coordinator
	trigger     paging.Trigger
	logger      *slog.Logger

	closeOnce   sync.Once
	unsubscribe func()
}

// New builds a session over store. The view is subscribed to collection
// replacements so every successful list fetch runs Initialize.
func New(store posts.Store, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = paging.DefaultPageSize
	}

	tracker := status.NewTracker()
	cache := collection.New()
	view := paging.NewView(cache, opts.PageSize)

	s := &Session{
		tracker:     tracker,
		cache:       cache,
		view:        view,
		coordinator: mutations.NewCoordinator(store, tracker, cache, logger),
		trigger:     opts.Trigger,
		logger:      logger,
	}

	s.unsubscribe = cache.Subscribe(func(current []posts.Post) {
		if view.Initialize() {
			logger.Debug("[SESSION] first page revealed", "collection", len(current), "revealed", view.Len())
		}
	})

	return s
}

// Refresh fetches the full collection
func (s *Session) Refresh(ctx context.Context) status.Status {
	return s.coordinator.FetchPosts(ctx)
}

// Scrolled reports the index of the last visible item; it loads the next
// page when that index is close enough to the end. Returns the number of
// posts appended.
func (s *Session) Scrolled(position int) int {
	return s.view.Scrolled(position, s.trigger)
}

// LoadMore reveals the next page
func (s *Session) LoadMore() int {
	return s.view.LoadMore()
}

func (s *Session) Create(ctx context.Context, req posts.CreatePostRequest) status.Status {
	return s.coordinator.CreatePost(ctx, req)
}

func (s *Session) Patch(ctx context.Context, id posts.PostID, req posts.PatchPostRequest) status.Status {
	return s.coordinator.PatchPost(ctx, id, req)
}

func (s *Session) Put(ctx context.Context, id posts.PostID, req posts.PutPostRequest) status.Status {
	return s.coordinator.PutPost(ctx, id, req)
}

func (s *Session) RequestDelete(post posts.Post) *mutations.DeleteConfirmation {
	return s.coordinator.RequestDelete(post)
}

func (s *Session) Tracker() *status.Tracker {
	return s.tracker
}

func (s *Session) Collection() *collection.Cache {
	return s.cache
}

func (s *Session) View() *paging.View {
	return s.view
}

// Posts returns the revealed prefix
func (s *Session) Posts() []posts.Post {
	return s.view.Revealed()
}

// Status returns the current status of op
func (s *Session) Status(op status.Op) status.Status {
	return s.tracker.Get(op)
}

// Close drops the view's collection subscription. Safe to call twice.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.unsubscribe()
	})
}
