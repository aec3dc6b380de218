package posts

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// PostID is the opaque, server-assigned identifier of a post.
// Remote stores disagree on the wire type (JSONPlaceholder uses numbers, the
// development store uses UUID strings), so PostID accepts both on decode and
// writes canonical integers back as numbers.
type PostID string

// String returns the identifier as text
func (id PostID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset
func (id PostID) IsZero() bool {
	return id == ""
}

// MarshalJSON encodes canonical decimal integers as JSON numbers and everything else as strings
func (id PostID) MarshalJSON() ([]byte, error) {
	if isCanonicalInt(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON string, a JSON number, or null
func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid post id: %w", err)
		}
		*id = PostID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid post id %s: %w", string(data), err)
	}
	*id = PostID(n.String())
	return nil
}

// isCanonicalInt matches -?(0|[1-9][0-9]*), the integer subset of JSON numbers
func isCanonicalInt(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Post represents a blog entry as served by the Remote Post Store
// Identity is immutable once created; Title and Body change via patch/put
type Post struct {
	ID     PostID `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// CreatePostRequest is the body of POST /posts
type CreatePostRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// PatchPostRequest is the partial body of PATCH /posts/{id}
// Nil fields are left untouched by the server
type PatchPostRequest struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (r PatchPostRequest) IsEmpty() bool {
	return r.Title == nil && r.Body == nil
}

// PutPostRequest is the full representation sent with PUT /posts/{id}
type PutPostRequest struct {
	ID     PostID `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// StoredPost is a post as persisted by the development post store.
// CreatedAt and UpdatedAt never leave the server; the wire shape is Post.
type StoredPost struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Post
}
