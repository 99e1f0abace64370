package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		content  string
		expected []string
	}{
		{
			name:    "valid post",
			title:   "My Valid Test Post",
			content: "This is the content of the valid test post.",
		},
		{
			name:     "blank title",
			title:    "",
			content:  "This is the content of the test post.",
			expected: []string{MsgTitleBlank},
		},
		{
			name:     "blank content",
			title:    "My Test Post",
			content:  "",
			expected: []string{MsgContentBlank},
		},
		{
			name:     "both blank reports title first",
			expected: []string{MsgTitleBlank, MsgContentBlank},
		},
		{
			name:     "title too long",
			title:    strings.Repeat("a", MaxTitleLength+1),
			content:  "body",
			expected: []string{MsgTitleTooLong},
		},
		{
			name:    "title at max length counts runes",
			title:   strings.Repeat("é", MaxTitleLength),
			content: "body",
		},
		{
			name:    "whitespace is not blank",
			title:   " ",
			content: " ",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePost(tc.title, tc.content)
			if tc.expected == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "error should wrap ErrValidation")

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.expected, verr.Messages)
		})
	}
}

func TestPostTouch(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	post := &Post{ID: 1, Title: "old", Content: "old", CreatedAt: created}

	later := created.Add(90 * time.Second)
	post.Touch("new title", "new content", later)

	assert.Equal(t, "new title", post.Title)
	assert.Equal(t, "new content", post.Content)
	require.NotNil(t, post.UpdatedAt)
	assert.Equal(t, later, *post.UpdatedAt)
	assert.Equal(t, created, post.CreatedAt, "CreatedAt must not change")

	// A clock running behind must not produce UpdatedAt < CreatedAt
	post.Touch("again", "again", created.Add(-time.Hour))
	require.NotNil(t, post.UpdatedAt)
	assert.False(t, post.UpdatedAt.Before(post.CreatedAt))
}

func TestPostFormattedTimestamps(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	post := &Post{
		CreatedAt: time.Date(2024, time.March, 1, 12, 30, 45, 987654321, loc),
	}

	created := post.FormattedCreatedAt()
	require.NotNil(t, created)
	assert.Equal(t, "2024-03-01 10:30:45", *created)
	assert.Nil(t, post.FormattedUpdatedAt())

	post.Touch(post.Title, post.Content, time.Date(2024, time.March, 2, 8, 0, 1, 0, time.UTC))
	updated := post.FormattedUpdatedAt()
	require.NotNil(t, updated)
	assert.Equal(t, "2024-03-02 08:00:01", *updated)

	assert.Nil(t, (&Post{}).FormattedCreatedAt())
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError(MsgTitleBlank, MsgContentBlank)
	assert.Equal(t,
		"validation failed: Title should not be blank; Content should not be blank",
		err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}
