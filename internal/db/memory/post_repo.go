// Package memory is an in-process posts.Repository for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"Blogsync/internal/core/posts"
)

// PostRepository keeps posts in insertion order
type PostRepository struct {
	byID  map[posts.PostID]posts.StoredPost
	order []posts.PostID
	mu    sync.RWMutex
}

// Ensure PostRepository implements posts.Repository.
var _ posts.Repository = (*PostRepository)(nil)

// NewPostRepository creates an empty repository
func NewPostRepository() *PostRepository {
	return &PostRepository{
		byID: make(map[posts.PostID]posts.StoredPost),
	}
}

// List returns copies of every post in insertion order
func (r *PostRepository) List(ctx context.Context) ([]posts.StoredPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]posts.StoredPost, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result, nil
}

// Get returns a copy so callers cannot mutate stored state
func (r *PostRepository) Get(ctx context.Context, id posts.PostID) (*posts.StoredPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, posts.NewNotFoundError(id)
	}
	return &p, nil
}

func (r *PostRepository) Create(ctx context.Context, post *posts.StoredPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[post.ID]; exists {
		return fmt.Errorf("post already exists: %s", post.ID)
	}
	r.byID[post.ID] = *post
	r.order = append(r.order, post.ID)
	return nil
}

func (r *PostRepository) Update(ctx context.Context, post *posts.StoredPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[post.ID]
	if !ok {
		return posts.NewNotFoundError(post.ID)
	}

	existing.Title = post.Title
	existing.Body = post.Body
	existing.UserID = post.UserID
	existing.UpdatedAt = post.UpdatedAt
	r.byID[post.ID] = existing
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id posts.PostID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return posts.NewNotFoundError(id)
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored posts
func (r *PostRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
