// Package validate holds the input rules for every public and admin payload.
// Rules are declared with ozzo-validation; failures come back as
// *models.ValidationError so handlers can render them uniformly.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// local@domain.tld with at least one dot in the domain.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var emailRules = []validation.Rule{
	validation.Required.Error("email is required"),
	validation.Match(emailRegex).Error("must be a valid email address"),
	is.EmailFormat.Error("must be a valid email address"),
}

func emailRulesMax(max int) []validation.Rule {
	rules := make([]validation.Rule, 0, len(emailRules)+1)
	rules = append(rules, emailRules...)
	return append(rules, validation.RuneLength(0, max))
}

// Field length limits applied by sanitization before validation.
const (
	ContactNameMax    = 120
	ContactEmailMax   = 255
	ContactSubjectMax = 200
	ContactMessageMax = 2000
	ContactMessageMin = 10

	CommentNameMax  = 100
	CommentEmailMax = 200
	CommentTextMax  = 1000
)

// IsEmail reports whether s passes the email rules.
func IsEmail(s string) bool {
	return validation.Validate(s, emailRules...) == nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Sanitize strips angle brackets, trims whitespace and cuts s to max runes.
func Sanitize(s string, max int) string {
	s = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if max > 0 {
		runes := []rune(s)
		if len(runes) > max {
			s = strings.TrimSpace(string(runes[:max]))
		}
	}
	return s
}

// toValidationError flattens ozzo errors into sorted "field: message" details.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return fmt.Errorf("validation rule failed: %w", internal.InternalError())
		}
		return models.NewValidationError(err.Error())
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, field+": "+errs[field].Error())
	}
	return models.NewValidationError(details...)
}
