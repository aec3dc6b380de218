// Package mutations issues list/create/patch/put/delete calls against the
// Remote Post Store and records their outcome in the status tracker.
//
// Failures stop here: they are logged and flagged as failed, never returned.
// Mutations do not touch the collection; only a list fetch replaces it.
package mutations

import (
	"context"
	"log/slog"

	"Blogsync/internal/core/collection"
	"Blogsync/internal/core/posts"
	"Blogsync/internal/core/status"
)

// Coordinator is the Mutation Coordinator
type Coordinator struct {
	store   posts.Store
	tracker *status.Tracker
	cache   *collection.Cache
	logger  *slog.Logger
}

// NewCoordinator wires a coordinator to its collaborators
// logger may be nil, in which case slog.Default() is used
func NewCoordinator(store posts.Store, tracker *status.Tracker, cache *collection.Cache, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		store:   store,
		tracker: tracker,
		cache:   cache,
		logger:  logger,
	}
}

// FetchPosts loads the full collection and replaces the cache on success
func (c *Coordinator) FetchPosts(ctx context.Context) status.Status {
	c.tracker.Begin(status.List)

	items, err := c.store.List(ctx)
	if err != nil {
		return c.fail(status.List, err)
	}

	c.cache.ReplaceAll(items)
	c.tracker.Succeed(status.List)
	c.logger.Debug("[POSTS] collection replaced", "count", len(items))
	return status.Succeeded
}

// CreatePost issues POST /posts
func (c *Coordinator) CreatePost(ctx context.Context, req posts.CreatePostRequest) status.Status {
	c.tracker.Begin(status.Create)

	created, err := c.store.Create(ctx, req)
	if err != nil {
		return c.fail(status.Create, err)
	}

	c.logger.Info("[POSTS] post created", "id", created.ID)
	c.tracker.Succeed(status.Create)
	return status.Succeeded
}

// PatchPost issues PATCH /posts/{id}
func (c *Coordinator) PatchPost(ctx context.Context, id posts.PostID, req posts.PatchPostRequest) status.Status {
	c.tracker.Begin(status.Patch)

	if _, err := c.store.Patch(ctx, id, req); err != nil {
		return c.fail(status.Patch, err, "id", id)
	}

	c.logger.Info("[POSTS] post patched", "id", id)
	c.tracker.Succeed(status.Patch)
	return status.Succeeded
}

// PutPost issues PUT /posts/{id}
func (c *Coordinator) PutPost(ctx context.Context, id posts.PostID, req posts.PutPostRequest) status.Status {
	c.tracker.Begin(status.Put)

	if _, err := c.store.Put(ctx, id, req); err != nil {
		return c.fail(status.Put, err, "id", id)
	}

	c.logger.Info("[POSTS] post replaced", "id", id)
	c.tracker.Succeed(status.Put)
	return status.Succeeded
}

// RequestDelete opens a confirmation exchange for deleting post.
// Nothing is sent until the confirmation is answered with Confirm.
func (c *Coordinator) RequestDelete(post posts.Post) *DeleteConfirmation {
	return &DeleteConfirmation{
		coordinator: c,
		post:        post,
		prompt:      deletePrompt(post),
	}
}

// deletePost issues DELETE /posts/{id}; only reachable through a confirmation
func (c *Coordinator) deletePost(ctx context.Context, id posts.PostID) status.Status {
	c.tracker.Begin(status.Delete)

	if err := c.store.Delete(ctx, id); err != nil {
		return c.fail(status.Delete, err, "id", id)
	}

	c.logger.Info("[POSTS] post deleted", "id", id)
	c.tracker.Succeed(status.Delete)
	return status.Succeeded
}

func (c *Coordinator) fail(op status.Op, err error, attrs ...any) status.Status {
	args := append([]any{"op", op.String(), "error", err}, attrs...)
	c.logger.Error("[POSTS] request failed", args...)
	c.tracker.Fail(op)
	return status.Failed
}
