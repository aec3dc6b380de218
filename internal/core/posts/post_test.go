package posts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PostID
		wantErr bool
	}{
		{name: "number", input: `1`, want: "1"},
		{name: "large number", input: `101`, want: "101"},
		{name: "string", input: `"a1b2"`, want: "a1b2"},
		{name: "uuid", input: `"7c9e6679-7425-40de-944b-e07fc1f90ae7"`, want: "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
		{name: "null", input: `null`, want: ""},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id PostID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestPostID_MarshalJSON(t *testing.T) {
	tests := []struct {
		id   PostID
		want string
	}{
		{id: "1", want: `1`},
		{id: "42", want: `42`},
		{id: "0", want: `0`},
		{id: "007", want: `"007"`},
		{id: "abc", want: `"abc"`},
		{id: "", want: `""`},
		{id: "-5", want: `-5`},
		{id: "-0", want: `-0`},
		{id: "+1", want: `"+1"`},
		{id: "-07", want: `"-07"`},
		{id: "-", want: `"-"`},
		{id: "1e3", want: `"1e3"`},
		{id: "12345678901234567890123", want: `12345678901234567890123`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			b, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
			assert.True(t, json.Valid(b))
		})
	}
}

func TestPutPostRequest_SignedIDsStayValidJSON(t *testing.T) {
	for _, raw := range []string{`"+1"`, `"-07"`, `"-0"`} {
		t.Run(raw, func(t *testing.T) {
			var id PostID
			require.NoError(t, json.Unmarshal([]byte(raw), &id))

			b, err := json.Marshal(PutPostRequest{ID: id, Title: "t", Body: "b", UserID: 1})
			require.NoError(t, err)
			require.True(t, json.Valid(b), string(b))

			var back PutPostRequest
			require.NoError(t, json.Unmarshal(b, &back))
			assert.Equal(t, id, back.ID)
		})
	}
}

func TestPost_DecodesJSONPlaceholderShape(t *testing.T) {
	raw := `[{"userId":1,"id":1,"title":"sunt aut facere","body":"quia et suscipit"},
	         {"userId":1,"id":2,"title":"qui est esse","body":"est rerum tempore"}]`

	var got []Post
	require.NoError(t, json.Unmarshal([]byte(raw), &got))

	require.Len(t, got, 2)
	assert.Equal(t, Post{ID: "1", Title: "sunt aut facere", Body: "quia et suscipit", UserID: 1}, got[0])
	assert.Equal(t, PostID("2"), got[1].ID)
}

func TestPatchPostRequest_OmitsNilFields(t *testing.T) {
	title := "new title"
	b, err := json.Marshal(PatchPostRequest{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"new title"}`, string(b))

	assert.False(t, PatchPostRequest{Title: &title}.IsEmpty())
	assert.True(t, PatchPostRequest{}.IsEmpty())
}

func TestErrors(t *testing.T) {
	err := NewValidationError("title", "title is required")
	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrInvalidContent)
	assert.Equal(t, "validation error (title): title is required", err.Error())

	nf := NewNotFoundError("9")
	assert.True(t, IsNotFound(nf))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(err))
}
