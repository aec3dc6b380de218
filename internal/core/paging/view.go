// Package paging projects an incrementally revealed prefix of the post collection.
//
// Paging here is client-side: the full collection is already fetched and the
// view only reveals it page by page as the consumer scrolls.
package paging

import (
	"sync"

	"Blogsync/internal/core/posts"
)

// DefaultPageSize is the number of posts revealed per page
const DefaultPageSize = 5

// Source is the collection a View reveals; collection.Cache satisfies it
type Source interface {
	Len() int
	Slice(start, end int) []posts.Post
}

// View is the Paged View Projection.
// revealed is always the prefix page*pageSize of the source (or shorter at the
// end of data) and never shrinks.
type View struct {
	source   Source
	revealed []posts.Post
	page     int
	pageSize int
	loading  bool
	mu       sync.Mutex
}

// NewView creates an empty view over source
// A non-positive pageSize falls back to DefaultPageSize
func NewView(source Source, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		source:   source,
		page:     1,
		pageSize: pageSize,
	}
}

// Initialize fills the first page when the view is empty and the source is not.
// Once anything is revealed it is a no-op, even if the source has grown since.
// Reports whether the view changed.
func (v *View) Initialize() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.revealed) > 0 || v.source.Len() == 0 {
		return false
	}

	v.revealed = v.source.Slice(0, v.pageSize)
	v.page = 1
	return true
}

// LoadMore reveals the next page and returns how many posts were appended.
// It does nothing while another load is in flight. At the end of data the
// view is left unchanged and LoadMore returns 0.
func (v *View) LoadMore() int {
	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return 0
	}
	v.loading = true
	nextPage := v.page + 1
	v.mu.Unlock()

	start := (nextPage - 1) * v.pageSize
	end := start + v.pageSize
	// Read outside the lock; a re-entrant LoadMore from here sees loading=true
	batch := v.source.Slice(start, end)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false

	if len(batch) == 0 {
		return 0
	}
	v.revealed = append(v.revealed, batch...)
	v.page = nextPage
	return len(batch)
}

// Scrolled applies the trigger policy for a consumer whose last visible item
// is at position, loading the next page when the end is near
func (v *View) Scrolled(position int, trigger Trigger) int {
	if !trigger.Reached(position, v.Len()) {
		return 0
	}
	return v.LoadMore()
}

// Revealed returns a copy of the revealed posts
func (v *View) Revealed() []posts.Post {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]posts.Post, len(v.revealed))
	copy(out, v.revealed)
	return out
}

// Len returns the number of revealed posts
func (v *View) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.revealed)
}

// Page returns the last revealed page number (1-based)
func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// PageSize returns the fixed page size
func (v *View) PageSize() int {
	return v.pageSize
}

// Loading reports whether a LoadMore is in flight
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}
