package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTitleLength is the maximum title length in runes
const MaxTitleLength = 300

type postService struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() PostID
}

// NewPostService creates the post service used by the development post store
// logger may be nil, in which case slog.Default() is used
func NewPostService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() PostID { return PostID(uuid.NewString()) },
	}
}

// ListPosts returns every post in creation order
func (s *postService) ListPosts(ctx context.Context) ([]Post, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	result := make([]Post, len(stored))
	for i := range stored {
		result[i] = stored[i].Post
	}
	return result, nil
}

// GetPost returns a single post
func (s *postService) GetPost(ctx context.Context, id PostID) (*Post, error) {
	if id.IsZero() {
		return nil, NewValidationError("id", "id is required")
	}

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &stored.Post, nil
}

// CreatePost validates the request, assigns an ID, and persists the post
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if err := validateContent(title, body, req.UserID); err != nil {
		return nil, err
	}

	now := s.now()
	stored := &StoredPost{
		Post: Post{
			ID:     s.newID(),
			Title:  title,
			Body:   body,
			UserID: req.UserID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("[POST-CREATE] post created", "id", stored.ID, "user_id", stored.UserID)
	return &stored.Post, nil
}

// PatchPost applies only the provided fields
func (s *postService) PatchPost(ctx context.Context, id PostID, req PatchPostRequest) (*Post, error) {
	if id.IsZero() {
		return nil, NewValidationError("id", "id is required")
	}

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// An empty patch is accepted and returns the current representation
	if req.Title != nil {
		stored.Title = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		stored.Body = strings.TrimSpace(*req.Body)
	}
	if err := validateContent(stored.Title, stored.Body, stored.UserID); err != nil {
		return nil, err
	}

	stored.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to patch post: %w", err)
	}

	s.logger.Info("[POST-PATCH] post patched", "id", id)
	return &stored.Post, nil
}

// PutPost replaces title, body and user of an existing post
// The path ID wins over any ID carried in the body
func (s *postService) PutPost(ctx context.Context, id PostID, req PutPostRequest) (*Post, error) {
	if id.IsZero() {
		return nil, NewValidationError("id", "id is required")
	}

	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if err := validateContent(title, body, req.UserID); err != nil {
		return nil, err
	}

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.ID.IsZero() && req.ID != id {
		s.logger.Warn("[POST-PUT] body id differs from path id, using path id",
			"path_id", id, "body_id", req.ID)
	}

	stored.Title = title
	stored.Body = body
	stored.UserID = req.UserID
	stored.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to put post: %w", err)
	}

	s.logger.Info("[POST-PUT] post replaced", "id", id)
	return &stored.Post, nil
}

// DeletePost removes a post
func (s *postService) DeletePost(ctx context.Context, id PostID) error {
	if id.IsZero() {
		return NewValidationError("id", "id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("[POST-DELETE] post deleted", "id", id)
	return nil
}

func validateContent(title, body string, userID int) error {
	if title == "" {
		return NewValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("title",
			fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if body == "" {
		return NewValidationError("body", "body is required")
	}
	if userID < 0 {
		return NewValidationError("userId", "userId cannot be negative")
	}
	return nil
}
