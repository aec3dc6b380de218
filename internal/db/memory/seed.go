package memory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"Blogsync/internal/core/posts"
)

// Seed inserts n sample posts with ids "1".."n", spread over ten users
// like the public JSONPlaceholder data set
func Seed(ctx context.Context, repo posts.Repository, n int) error {
	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)

	for i := 1; i <= n; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		p := &posts.StoredPost{
			Post: posts.Post{
				ID:     posts.PostID(strconv.Itoa(i)),
				Title:  fmt.Sprintf("Sample post %d", i),
				Body:   fmt.Sprintf("This is the body of sample post %d.", i),
				UserID: (i-1)/10 + 1,
			},
			CreatedAt: at,
			UpdatedAt: at,
		}
		if err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed post %d: %w", i, err)
		}
	}
	return nil
}
