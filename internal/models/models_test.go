package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slugFormat = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Getting Started with Web Development", "getting-started-with-web-development"},
		{"  Modern JavaScript: ES6+ Features!  ", "modern-javascript-es6-features"},
		{"---Go___is   fun---", "go-is-fun"},
		{"Café & Crème", "caf-cr-me"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNewSlug_UniqueForSameTitle(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	a := NewSlug("Hello World", now)
	b := NewSlug("Hello World", now)

	assert.NotEqual(t, a, b)
	for _, s := range []string{a, b} {
		assert.True(t, strings.HasPrefix(s, "hello-world-"), s)
		assert.Regexp(t, slugFormat, s)
	}
}

func TestNewSlug_EmptyBase(t *testing.T) {
	s := NewSlug("???", time.Now())
	assert.True(t, strings.HasPrefix(s, "post-"))
	assert.Regexp(t, slugFormat, s)
}

func TestReadTime(t *testing.T) {
	words := func(n int) string { return strings.TrimSpace(strings.Repeat("word ", n)) }

	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{1001, 6},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d words", tt.words), func(t *testing.T) {
			assert.Equal(t, tt.want, ReadTime(words(tt.words)))
		})
	}
}

func TestBlogPatch_Apply(t *testing.T) {
	b := Blog{Title: "Old", Content: "short", Category: "Go", ReadTime: 1}
	content := strings.Repeat("w ", 450)
	published := false
	tags := []string{" go ", "", "go", "web"}

	BlogPatch{Content: &content, Published: &published, Tags: &tags}.Apply(&b)

	assert.Equal(t, "Old", b.Title)
	assert.Equal(t, "Go", b.Category)
	assert.False(t, b.Published)
	assert.Equal(t, []string{"go", "web"}, b.Tags)
	assert.Equal(t, 3, b.ReadTime)
}

func TestIsValidContactStatus(t *testing.T) {
	for _, s := range []string{"unread", "read", "replied", "archived"} {
		assert.True(t, IsValidContactStatus(s), s)
	}
	for _, s := range []string{"", "READ", "spam"} {
		assert.False(t, IsValidContactStatus(s), s)
	}
}

func TestPage(t *testing.T) {
	p := NewPage(0, 0, 10)
	assert.Equal(t, Page{Page: 1, Limit: 10}, p)
	assert.Equal(t, 0, p.Offset())

	p = NewPage(3, 500, 10)
	assert.Equal(t, MaxPageLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())

	huge := NewPage(4611686018427387904, 100, 10)
	assert.Positive(t, huge.Offset())
	assert.LessOrEqual(t, huge.Offset(), math.MaxInt32)
	assert.Positive(t, NewPage(math.MaxInt, 1, 10).Offset())

	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 21, Pages: 3}, NewPage(1, 10, 10).Paginate(21))
	assert.Equal(t, 0, NewPage(1, 10, 10).Paginate(0).Pages)
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewValidationError("email: must be a valid email address"))

	require.True(t, errors.Is(err, ErrValidation))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"email: must be a valid email address"}, ve.Details)
	assert.False(t, errors.Is(err, ErrNotFound))
}
