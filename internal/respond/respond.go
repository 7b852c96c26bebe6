// Package respond writes JSON responses and renders domain errors.
package respond

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// Error codes carried in the "error" field of every error body.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountDisabled    = "ACCOUNT_DISABLED"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeAlreadySubscribed  = "ALREADY_SUBSCRIBED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgAlreadySubscribed  = "You are already subscribed!"
	MsgRateLimited        = "Too many requests, please try again later."
	MsgInternal           = "Internal server error"
)

type ErrorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

func ErrorCode(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Error: code, Message: message})
}

// Error maps err onto the error taxonomy. Anything unrecognised is logged
// and answered with a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		JSON(w, http.StatusBadRequest, ErrorBody{Error: CodeValidation, Message: "Validation failed", Details: ve.Details})
	case errors.Is(err, models.ErrValidation):
		ErrorCode(w, http.StatusBadRequest, CodeValidation, sentence(err.Error()))
	case errors.Is(err, models.ErrInvalidCredentials):
		ErrorCode(w, http.StatusUnauthorized, CodeInvalidCredentials, MsgInvalidCredentials)
	case errors.Is(err, models.ErrAccountDisabled):
		ErrorCode(w, http.StatusForbidden, CodeAccountDisabled, "Account is disabled")
	case errors.Is(err, models.ErrMissingToken):
		ErrorCode(w, http.StatusUnauthorized, CodeMissingToken, "No token provided")
	case errors.Is(err, models.ErrInvalidToken):
		ErrorCode(w, http.StatusUnauthorized, CodeInvalidToken, "Invalid or expired token")
	case errors.Is(err, models.ErrNotFound):
		ErrorCode(w, http.StatusNotFound, CodeNotFound, sentence(err.Error()))
	case errors.Is(err, models.ErrAlreadySubscribed):
		ErrorCode(w, http.StatusBadRequest, CodeAlreadySubscribed, MsgAlreadySubscribed)
	case errors.Is(err, models.ErrRateLimited):
		ErrorCode(w, http.StatusTooManyRequests, CodeRateLimited, MsgRateLimited)
	default:
		logging.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request failed")
		ErrorCode(w, http.StatusInternalServerError, CodeInternal, MsgInternal)
	}
}

// sentence upper-cases the first letter, so "blog not found" reads "Blog not found".
func sentence(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
