package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Blogsync/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// List returns every post ordered by creation time
func (r *postgresPostRepo) List(ctx context.Context) ([]posts.StoredPost, error) {
	query := `
		SELECT id, title, body, user_id, created_at, updated_at
		FROM posts
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []posts.StoredPost{}
	for rows.Next() {
		var p posts.StoredPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}

// Get retrieves a post by id
func (r *postgresPostRepo) Get(ctx context.Context, id posts.PostID) (*posts.StoredPost, error) {
	query := `
		SELECT id, title, body, user_id, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	var p posts.StoredPost
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Body, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, posts.NewNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &p, nil
}

// Create inserts a post whose id is already assigned
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.StoredPost) error {
	query := `
		INSERT INTO posts (id, title, body, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Body, post.UserID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("post already exists: %s", post.ID)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// Update overwrites the mutable columns of an existing post
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.StoredPost) error {
	query := `
		UPDATE posts
		SET title = $2, body = $3, user_id = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Body, post.UserID, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return posts.NewNotFoundError(post.ID)
	}

	return nil
}

// Delete removes a post
func (r *postgresPostRepo) Delete(ctx context.Context, id posts.PostID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return posts.NewNotFoundError(id)
	}

	return nil
}
