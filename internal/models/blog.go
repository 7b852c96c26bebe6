package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBlogCategory = "Technology"
	DefaultBlogImageAlt = "Blog image"
	wordsPerMinute      = 200
)

type Blog struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt"`
	Author         string    `json:"author"`
	Image          string    `json:"image"`
	ImageAlt       string    `json:"imageAlt"`
	Tags           []string  `json:"tags"`
	Category       string    `json:"category"`
	Featured       bool      `json:"featured"`
	Published      bool      `json:"published"`
	Views          int       `json:"views"`
	ReadTime       int       `json:"readTime"`
	SEOTitle       string    `json:"seoTitle"`
	SEODescription string    `json:"seoDescription"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BlogPatch is a partial update; nil fields are left untouched.
type BlogPatch struct {
	Title          *string
	Content        *string
	Excerpt        *string
	Author         *string
	Image          *string
	ImageAlt       *string
	Tags           *[]string
	Category       *string
	Featured       *bool
	Published      *bool
	SEOTitle       *string
	SEODescription *string
}

// Apply copies the set fields onto b and recomputes the read time.
func (p BlogPatch) Apply(b *Blog) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&b.Title, p.Title)
	setString(&b.Content, p.Content)
	setString(&b.Excerpt, p.Excerpt)
	setString(&b.Author, p.Author)
	setString(&b.Image, p.Image)
	setString(&b.ImageAlt, p.ImageAlt)
	setString(&b.Category, p.Category)
	setString(&b.SEOTitle, p.SEOTitle)
	setString(&b.SEODescription, p.SEODescription)
	if p.Tags != nil {
		b.Tags = NormalizeTags(*p.Tags)
	}
	if p.Featured != nil {
		b.Featured = *p.Featured
	}
	if p.Published != nil {
		b.Published = *p.Published
	}
	b.ReadTime = ReadTime(b.Content)
}

// BlogFilter narrows blog listings. Zero values mean "any".
type BlogFilter struct {
	PublishedOnly bool
	Category      string
	Tag           string
	Featured      *bool
}

// Slugify lower-cases s, collapses every run of non [a-z0-9] into one hyphen
// and trims hyphens from both ends.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// NewSlug derives a unique slug from title. The suffix combines a base36
// millisecond timestamp with random characters so identical titles never
// collide and no lookup-and-retry is needed.
func NewSlug(title string, now time.Time) string {
	base := Slugify(title)
	if base == "" {
		base = "post"
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return base + "-" + strconv.FormatInt(now.UnixMilli(), 36) + random
}

// ReadTime is ceil(words/200) minutes, never below one.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// NormalizeTags trims tags and drops empties and duplicates, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
