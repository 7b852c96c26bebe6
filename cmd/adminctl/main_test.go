package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

func TestParseCommand(t *testing.T) {
	t.Run("valid invocations", func(t *testing.T) {
		for _, args := range [][]string{
			{"check"},
			{"create", "-username", "faran", "-email", "Faran@Example.com", "-password", "secret123"},
			{"create", "-username", "owner", "-email", "owner@example.com", "-password", "secret123", "-role", "super-admin"},
			{"reset-password", "-email", "faran@example.com", "-password", "secret123"},
			{"seed-blogs", "-force"},
		} {
			cmd, err := parseCommand(args)
			require.NoError(t, err, args)
			assert.Equal(t, args[0], cmd.name)
			assert.NotNil(t, cmd.run)
		}
	})

	t.Run("rejected before connecting", func(t *testing.T) {
		for _, args := range [][]string{
			nil,
			{"launch"},
			{"create", "-username", "faran"},
			{"create", "-username", "faran", "-email", "faran@example.com", "-password", "secret123", "-role", "root"},
			{"reset-password", "-password", "secret123"},
			{"reset-password", "-email", "faran@example.com", "-password", "123"},
			{"check", "-unknown"},
		} {
			_, err := parseCommand(args)
			assert.Error(t, err, args)
		}
	})

	t.Run("validation errors carry details", func(t *testing.T) {
		_, err := parseCommand([]string{"create", "-username", "fa", "-email", "nope", "-password", "secret123"})
		var ve *models.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Details, 2)
	})
}

func TestSampleBlogsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range sampleBlogs {
		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.Content)
		assert.False(t, seen[b.Title], "duplicate title %q", b.Title)
		seen[b.Title] = true
	}
}
