package handlers

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// decodeJSON reads one JSON object from the body into dst. Any decode
// failure is a validation error.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return models.NewValidationError("body: request body is required")
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return models.NewValidationError("body: request body is too large")
	case errors.Is(err, io.EOF):
		return models.NewValidationError("body: request body is required")
	default:
		return models.NewValidationError("body: invalid JSON body")
	}
}

func parsePositiveInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// pageFromQuery reads page and limit; limit is capped at models.MaxPageLimit.
func pageFromQuery(r *http.Request, defaultLimit int) models.Page {
	q := r.URL.Query()
	return models.NewPage(
		parsePositiveInt(q.Get("page"), 1),
		parsePositiveInt(q.Get("limit"), defaultLimit),
		defaultLimit,
	)
}

// clientIP returns the request's source address without the port. RealIP
// middleware has already applied proxy headers from trusted proxies.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
