package posts

import "context"

// Store is the client's view of the Remote Post Store
// Implemented over HTTP by remote.Client; every call blocks until the
// server answers or ctx is done
type Store interface {
	// List returns the full collection in server order (GET /posts)
	List(ctx context.Context) ([]Post, error)

	// Create adds a post and returns it with its server-assigned ID (POST /posts)
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)

	// Patch applies a partial update (PATCH /posts/{id})
	Patch(ctx context.Context, id PostID, req PatchPostRequest) (*Post, error)

	// Put replaces the full representation (PUT /posts/{id})
	Put(ctx context.Context, id PostID, req PutPostRequest) (*Post, error)

	// Delete removes a post (DELETE /posts/{id})
	Delete(ctx context.Context, id PostID) error
}

// Service defines the business logic of the development post store
// It validates input and assigns identifiers before delegating to a Repository
type Service interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id PostID) (*Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	PatchPost(ctx context.Context, id PostID, req PatchPostRequest) (*Post, error)
	PutPost(ctx context.Context, id PostID, req PutPostRequest) (*Post, error)
	DeletePost(ctx context.Context, id PostID) error
}

// Repository defines the persistence interface for the development post store
// Backed by memory, PostgreSQL, or S3
type Repository interface {
	// List returns every stored post ordered by creation time
	List(ctx context.Context) ([]StoredPost, error)

	// Get returns ErrNotFound when the post does not exist
	Get(ctx context.Context, id PostID) (*StoredPost, error)

	// Create inserts a new post; the ID is already assigned by the service
	Create(ctx context.Context, post *StoredPost) error

	// Update overwrites title, body, user and updated_at of an existing post
	// Returns ErrNotFound when the post does not exist
	Update(ctx context.Context, post *StoredPost) error

	// Delete returns ErrNotFound when the post does not exist
	Delete(ctx context.Context, id PostID) error
}
