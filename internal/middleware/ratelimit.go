package middleware

import (
	"net/http"

	"github.com/go-chi/httprate"

	"github.com/FaranAlam/faran-portfolio/internal/config"
	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/metrics"
	"github.com/FaranAlam/faran-portfolio/internal/models"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
)

// RateLimiter caps requests per client IP within a sliding window. Counters
// live in process memory; each limiter has its own.
type RateLimiter struct {
	name    string
	handler func(http.Handler) http.Handler
}

// NewRateLimiter builds a limiter. name labels its metrics and log lines.
func NewRateLimiter(name string, limit config.RateLimit) *RateLimiter {
	rl := &RateLimiter{name: name}
	rl.handler = httprate.Limit(
		limit.Requests,
		limit.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rl.onLimit),
	)
	return rl
}

func (rl *RateLimiter) onLimit(w http.ResponseWriter, r *http.Request) {
	metrics.RateLimitedTotal.WithLabelValues(rl.name).Inc()
	logging.Warn().
		Str("limiter", rl.name).
		Str("remote_addr", r.RemoteAddr).
		Str("path", r.URL.Path).
		Msg("rate limit exceeded")
	respond.Error(w, r, models.ErrRateLimited)
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return rl.handler(next)
}
