package validate

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// BlogInput is the admin create/update payload. Pointer fields distinguish
// "absent" from "empty" so PUT can apply partial updates.
type BlogInput struct {
	Title          *string   `json:"title"`
	Content        *string   `json:"content"`
	Excerpt        *string   `json:"excerpt"`
	Author         *string   `json:"author"`
	Image          *string   `json:"image"`
	ImageAlt       *string   `json:"imageAlt"`
	Tags           *[]string `json:"tags"`
	Category       *string   `json:"category"`
	Featured       *bool     `json:"featured"`
	Published      *bool     `json:"published"`
	SEOTitle       *string   `json:"seoTitle"`
	SEODescription *string   `json:"seoDescription"`
}

func (in *BlogInput) Normalize() {
	for _, field := range []*string{in.Title, in.Excerpt, in.Author, in.ImageAlt, in.Category, in.SEOTitle, in.SEODescription, in.Image} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
	if in.Content != nil {
		*in.Content = strings.TrimSpace(*in.Content)
	}
	if in.Tags != nil {
		tags := models.NormalizeTags(*in.Tags)
		in.Tags = &tags
	}
}

// ValidateCreate requires title and content.
func (in BlogInput) ValidateCreate() error {
	var missing []string
	if in.Title == nil || *in.Title == "" {
		missing = append(missing, "title: title is required")
	}
	if in.Content == nil || *in.Content == "" {
		missing = append(missing, "content: content is required")
	}
	if len(missing) > 0 {
		return models.NewValidationError(missing...)
	}
	return in.validateFields()
}

// ValidateUpdate rejects blanking out title or content.
func (in BlogInput) ValidateUpdate() error {
	var blank []string
	if in.Title != nil && *in.Title == "" {
		blank = append(blank, "title: title cannot be empty")
	}
	if in.Content != nil && *in.Content == "" {
		blank = append(blank, "content: content cannot be empty")
	}
	if len(blank) > 0 {
		return models.NewValidationError(blank...)
	}
	return in.validateFields()
}

func (in BlogInput) validateFields() error {
	return toValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.RuneLength(0, 200).Error("title cannot exceed 200 characters")),
		validation.Field(&in.Excerpt, validation.RuneLength(0, 500).Error("excerpt cannot exceed 500 characters")),
		validation.Field(&in.ImageAlt, validation.RuneLength(0, 200).Error("imageAlt cannot exceed 200 characters")),
		validation.Field(&in.SEOTitle, validation.RuneLength(0, 60).Error("seoTitle cannot exceed 60 characters")),
		validation.Field(&in.SEODescription, validation.RuneLength(0, 160).Error("seoDescription cannot exceed 160 characters")),
	))
}

// Patch converts the input into a models.BlogPatch.
func (in BlogInput) Patch() models.BlogPatch {
	return models.BlogPatch{
		Title:          in.Title,
		Content:        in.Content,
		Excerpt:        in.Excerpt,
		Author:         in.Author,
		Image:          in.Image,
		ImageAlt:       in.ImageAlt,
		Tags:           in.Tags,
		Category:       in.Category,
		Featured:       in.Featured,
		Published:      in.Published,
		SEOTitle:       in.SEOTitle,
		SEODescription: in.SEODescription,
	}
}
