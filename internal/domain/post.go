package domain

import (
	"time"
	"unicode/utf8"
)

// Validation messages returned to API clients. They are part of the public
// contract and must not change.
const (
	MsgTitleBlank   = "Title should not be blank"
	MsgTitleTooLong = "Title cannot be longer than 255 characters"
	MsgContentBlank = "Content should not be blank"
)

// MaxTitleLength is the width of the title column.
const MaxTitleLength = 255

// TimestampLayout is the wire format of post timestamps: second precision,
// no zone suffix. Timestamps are always rendered in UTC.
const TimestampLayout = "2006-01-02 15:04:05"

// Post is a blog post: a title/content pair with timestamps.
//
// ID and CreatedAt are assigned by the store when the post is created and
// never change afterwards. UpdatedAt is nil until the first update.
type Post struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Touch replaces title and content and stamps UpdatedAt with now.
// UpdatedAt never goes before CreatedAt, even with a skewed clock.
func (p *Post) Touch(title, content string, now time.Time) {
	p.Title = title
	p.Content = content

	now = now.UTC()
	if now.Before(p.CreatedAt) {
		now = p.CreatedAt
	}
	p.UpdatedAt = &now
}

// FormattedCreatedAt returns CreatedAt in TimestampLayout, or nil for a zero time.
func (p *Post) FormattedCreatedAt() *string {
	if p.CreatedAt.IsZero() {
		return nil
	}
	return FormatTimestamp(p.CreatedAt)
}

// FormattedUpdatedAt returns UpdatedAt in TimestampLayout, or nil if the post
// was never updated.
func (p *Post) FormattedUpdatedAt() *string {
	if p.UpdatedAt == nil || p.UpdatedAt.IsZero() {
		return nil
	}
	return FormatTimestamp(*p.UpdatedAt)
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) *string {
	s := t.UTC().Format(TimestampLayout)
	return &s
}

// ValidatePost applies the post field rules in field order (title, then
// content). All rules run; the returned *ValidationError lists every failure.
// Returns nil when the input is valid.
func ValidatePost(title, content string) error {
	verr := NewValidationError()

	if title == "" {
		verr.Add(MsgTitleBlank)
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		verr.Add(MsgTitleTooLong)
	}

	if content == "" {
		verr.Add(MsgContentBlank)
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
