package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

func strPtr(s string) *string { return &s }

func details(t *testing.T, err error) []string {
	t.Helper()
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return ve.Details
}

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@sub.example.org", "x+tag@mail.co"}
	invalid := []string{"", "a@b", "no-at.example.com", "a b@c.com", "@b.com", "a@.com "}

	for _, e := range valid {
		assert.True(t, IsEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsEmail(e), e)
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", Sanitize("<script>alert(1)</script>", 0))
	assert.Equal(t, "hello", Sanitize("  hello  ", 10))
	assert.Equal(t, "héllo", Sanitize("héllo wörld", 5))
	assert.Len(t, []rune(Sanitize(strings.Repeat("ü", 300), 120)), 120)
}

func TestSubscribeInput(t *testing.T) {
	in := SubscribeInput{Email: "  A@B.COM "}
	in.Normalize()
	assert.Equal(t, "a@b.com", in.Email)
	assert.NoError(t, in.Validate())

	err := SubscribeInput{Email: "not-an-email"}.Validate()
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, []string{"email: must be a valid email address"}, details(t, err))

	long := SubscribeInput{Email: strings.Repeat("a", 300) + "@example.com"}
	assert.Equal(t, []string{"email: the length must be no more than 255"}, details(t, long.Validate()))
	assert.NoError(t, SubscribeInput{Email: strings.Repeat("a", 243) + "@example.com"}.Validate())
}

func TestContactInput(t *testing.T) {
	t.Run("valid after sanitize", func(t *testing.T) {
		in := ContactInput{
			Name:    " <b>Jane</b> ",
			Email:   "Jane@Example.com",
			Message: "Hello there, I'd like to talk.",
		}
		in.Sanitize()
		require.NoError(t, in.Validate())
		assert.Equal(t, "bJane/b", in.Name)
		assert.Equal(t, "jane@example.com", in.Email)
	})

	t.Run("truncates long fields", func(t *testing.T) {
		in := ContactInput{
			Name:    strings.Repeat("n", 500),
			Email:   "a@b.com",
			Subject: strings.Repeat("s", 500),
			Message: strings.Repeat("m", 5000),
		}
		in.Sanitize()
		assert.Len(t, in.Name, ContactNameMax)
		assert.Len(t, in.Subject, ContactSubjectMax)
		assert.Len(t, in.Message, ContactMessageMax)
	})

	t.Run("short message", func(t *testing.T) {
		err := ContactInput{Name: "J", Email: "a@b.com", Message: "too short"}.Validate()
		require.ErrorIs(t, err, models.ErrValidation)
		assert.Equal(t, []string{"message: message must be at least 10 characters"}, details(t, err))
	})

	t.Run("missing fields", func(t *testing.T) {
		err := ContactInput{}.Validate()
		assert.Equal(t, []string{
			"email: email is required",
			"message: message is required",
			"name: name is required",
		}, details(t, err))
	})
}

func TestCommentInput(t *testing.T) {
	in := CommentInput{Name: strings.Repeat("x", 150), Email: "c@d.io", Comment: strings.Repeat("y", 1500)}
	in.Sanitize()
	require.NoError(t, in.Validate())
	assert.Len(t, in.Name, CommentNameMax)
	assert.Len(t, in.Comment, CommentTextMax)

	err := CommentInput{Name: "a", Email: "bad", Comment: ""}.Validate()
	assert.Len(t, details(t, err), 2)
}

func TestLoginInput(t *testing.T) {
	assert.NoError(t, LoginInput{Email: "admin@admin.local", Password: "x"}.Validate())
	assert.ErrorIs(t, LoginInput{Email: "admin", Password: "x"}.Validate(), models.ErrValidation)
	assert.ErrorIs(t, LoginInput{Email: "admin@admin.local"}.Validate(), models.ErrValidation)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret"))
	assert.ErrorIs(t, ValidatePassword("12345"), models.ErrValidation)
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("p", 73)), models.ErrValidation)
}

func TestAdminInput(t *testing.T) {
	in := AdminInput{Username: " faran ", Email: "Faran@Example.com", Password: "Admin@123", Name: "Faran"}
	in.Normalize()
	require.NoError(t, in.Validate())
	assert.Equal(t, models.RoleAdmin, in.Role)

	bad := AdminInput{Username: "abc", Email: "faran@example.com", Password: "Admin@123", Name: "A", Role: "root"}
	assert.Equal(t, []string{
		"role: role must be admin or super-admin",
		"username: username must be between 4 and 50 characters",
	}, details(t, bad.Validate()))

	for _, role := range models.ValidRoles {
		in := AdminInput{Username: "faran", Email: "faran@example.com", Password: "Admin@123", Name: "Faran", Role: role}
		assert.NoError(t, in.Validate(), role)
	}
	assert.False(t, models.IsValidRole("Admin"))
}

func TestContactStatusInput(t *testing.T) {
	for _, s := range models.ContactStatuses {
		assert.NoError(t, ContactStatusInput{Status: s}.Validate(), s)
	}
	assert.ErrorIs(t, ContactStatusInput{Status: "spam"}.Validate(), models.ErrValidation)
	assert.ErrorIs(t, ContactStatusInput{}.Validate(), models.ErrValidation)
}

func TestBlogInput(t *testing.T) {
	t.Run("create requires title and content", func(t *testing.T) {
		err := BlogInput{Title: strPtr("  ")}.withNormalize().ValidateCreate()
		assert.Equal(t, []string{"title: title is required", "content: content is required"}, details(t, err))
	})

	t.Run("create ok", func(t *testing.T) {
		in := BlogInput{Title: strPtr("Hello"), Content: strPtr("Body")}
		assert.NoError(t, in.withNormalize().ValidateCreate())
	})

	t.Run("update allows partial", func(t *testing.T) {
		assert.NoError(t, BlogInput{Excerpt: strPtr("short")}.ValidateUpdate())
	})

	t.Run("update rejects blank title", func(t *testing.T) {
		err := BlogInput{Title: strPtr("")}.ValidateUpdate()
		assert.Equal(t, []string{"title: title cannot be empty"}, details(t, err))
	})

	t.Run("length limits", func(t *testing.T) {
		err := BlogInput{SEOTitle: strPtr(strings.Repeat("s", 61))}.ValidateUpdate()
		assert.Equal(t, []string{"seoTitle: seoTitle cannot exceed 60 characters"}, details(t, err))
	})

	t.Run("normalizes tags", func(t *testing.T) {
		tags := []string{" go", "go ", "", "api"}
		in := BlogInput{Tags: &tags}
		in.Normalize()
		assert.Equal(t, []string{"go", "api"}, *in.Tags)
	})
}

func (in BlogInput) withNormalize() BlogInput {
	in.Normalize()
	return in
}
