package subscription

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	raw := json.RawMessage(`{
		"data": {
			"blogPostPublished": {
				"id": "42",
				"title": "Hello",
				"content": "World",
				"published": true,
				"createdAt": "2025-06-01T10:00:00Z",
				"updatedAt": "2025-06-01T10:00:00Z",
				"author": {"id": "7", "username": "alice", "email": "alice@example.com"}
			}
		}
	}`)

	evt, err := decodeEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), evt.Post.ID)
	assert.Equal(t, int64(7), evt.Post.AuthorID)
	assert.Equal(t, "Hello", evt.Post.Title)
	assert.True(t, evt.Post.Published)
	assert.True(t, evt.Post.CreatedAt.Valid)
	assert.Equal(t, "alice", evt.Author.Username)
	assert.False(t, evt.OccurredAt.IsZero())
}

func TestDecodeEvent_MalformedID(t *testing.T) {
	raw := json.RawMessage(`{"data": {"blogPostPublished": {"id": "not-a-number"}}}`)

	_, err := decodeEvent(raw)
	require.Error(t, err)
}

func TestDecodeEvent_NotJSON(t *testing.T) {
	_, err := decodeEvent(json.RawMessage(`{`))
	require.Error(t, err)
}
