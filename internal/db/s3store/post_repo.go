// Package s3store stores posts as JSON objects in an S3 bucket, one object per post
// under the posts/ prefix.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"Blogsync/internal/core/posts"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/goccy/go-json"
)

const (
	keyPrefix   = "posts/"
	keySuffix   = ".json"
	contentType = "application/json"
)

// API is the subset of the S3 client the repository uses
type API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// PostRepository implements posts.Repository on S3
type PostRepository struct {
	client API
	bucket string
	logger *slog.Logger
}

// Ensure PostRepository implements posts.Repository.
var _ posts.Repository = (*PostRepository)(nil)

// NewPostRepository wraps an existing client
// logger may be nil, in which case slog.Default() is used
func NewPostRepository(client API, bucket string, logger *slog.Logger) *PostRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostRepository{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// NewPostRepositoryFromEnv loads the default AWS configuration (environment,
// shared config files, instance role) and builds a repository for bucket
func NewPostRepositoryFromEnv(ctx context.Context, bucket string, logger *slog.Logger) (*PostRepository, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewPostRepository(s3.NewFromConfig(cfg), bucket, logger), nil
}

func objectKey(id posts.PostID) string {
	return keyPrefix + id.String() + keySuffix
}

// isNotFoundError matches both GetObject and HeadObject misses
func isNotFoundError(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}

// List reads every posts/*.json object and orders them by creation time.
// Objects that cannot be read or decoded are logged and skipped.
func (r *PostRepository) List(ctx context.Context) ([]posts.StoredPost, error) {
	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(keyPrefix),
	})

	result := []posts.StoredPost{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list posts: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, keySuffix) {
				continue
			}

			post, err := r.getByKey(ctx, key)
			if err != nil {
				r.logger.Error("[S3-REPO] failed to read post", "key", key, "error", err)
				continue
			}
			result = append(result, *post)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	r.logger.Debug("[S3-REPO] listed posts", "bucket", r.bucket, "count", len(result))
	return result, nil
}

// Get reads posts/<id>.json
func (r *PostRepository) Get(ctx context.Context, id posts.PostID) (*posts.StoredPost, error) {
	post, err := r.getByKey(ctx, objectKey(id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, posts.NewNotFoundError(id)
		}
		return nil, err
	}
	return post, nil
}

// Create writes a new object; an existing key is an error
func (r *PostRepository) Create(ctx context.Context, post *posts.StoredPost) error {
	exists, err := r.exists(ctx, post.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("post already exists: %s", post.ID)
	}
	return r.save(ctx, post)
}

// Update overwrites an existing object
func (r *PostRepository) Update(ctx context.Context, post *posts.StoredPost) error {
	existing, err := r.Get(ctx, post.ID)
	if err != nil {
		return err
	}

	existing.Title = post.Title
	existing.Body = post.Body
	existing.UserID = post.UserID
	existing.UpdatedAt = post.UpdatedAt
	return r.save(ctx, existing)
}

// Delete removes the object. S3 deletes are idempotent so existence is
// checked first to report ErrNotFound.
func (r *PostRepository) Delete(ctx context.Context, id posts.PostID) error {
	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return posts.NewNotFoundError(id)
	}

	_, err = r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectKey(id)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	r.logger.Debug("[S3-REPO] deleted post", "id", id)
	return nil
}

func (r *PostRepository) getByKey(ctx context.Context, key string) (*posts.StoredPost, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read post body: %w", err)
	}

	var post posts.StoredPost
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) save(ctx context.Context, post *posts.StoredPost) error {
	body, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	key := objectKey(post.ID)
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}

	r.logger.Debug("[S3-REPO] saved post", "key", key)
	return nil
}

func (r *PostRepository) exists(ctx context.Context, id posts.PostID) (bool, error) {
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectKey(id)),
	})
	if err == nil {
		return true, nil
	}
	if isNotFoundError(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check post: %w", err)
}
