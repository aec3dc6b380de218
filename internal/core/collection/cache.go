// Package collection holds the full set of posts from the last successful list fetch.
package collection

import (
	"sync"

	"Blogsync/internal/core/posts"
)

// ReplacedFunc observes a wholesale replacement of the collection
type ReplacedFunc func(current []posts.Post)

// Cache is the in-memory Post Collection.
// It is only ever replaced wholesale; mutation results are never merged in.
type Cache struct {
	posts     []posts.Post
	observers map[int]ReplacedFunc
	nextID    int
	mu        sync.RWMutex
}

// New creates an empty cache
func New() *Cache {
	return &Cache{
		observers: make(map[int]ReplacedFunc),
	}
}

// ReplaceAll overwrites the collection, preserving the given order, and
// notifies subscribers. The cache keeps its own copy of the slice.
func (c *Cache) ReplaceAll(items []posts.Post) {
	next := make([]posts.Post, len(items))
	copy(next, items)

	c.mu.Lock()
	c.posts = next
	observers := make([]ReplacedFunc, 0, len(c.observers))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(clonePosts(next))
	}
}

// All returns a copy of the current collection
func (c *Cache) All() []posts.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clonePosts(c.posts)
}

// Len returns the number of cached posts
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.posts)
}

// Slice returns a copy of posts[start:end), clamped to the collection bounds
func (c *Cache) Slice(start, end int) []posts.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if start < 0 {
		start = 0
	}
	if end > len(c.posts) {
		end = len(c.posts)
	}
	if start >= end {
		return nil
	}
	return clonePosts(c.posts[start:end])
}

// Find returns the cached post with the given ID
func (c *Cache) Find(id posts.PostID) (posts.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.posts {
		if p.ID == id {
			return p, true
		}
	}
	return posts.Post{}, false
}

// Subscribe registers fn for "collection replaced" events
func (c *Cache) Subscribe(fn ReplacedFunc) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

func clonePosts(src []posts.Post) []posts.Post {
	if len(src) == 0 {
		return []posts.Post{}
	}
	out := make([]posts.Post, len(src))
	copy(out, src)
	return out
}
