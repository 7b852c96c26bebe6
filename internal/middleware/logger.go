package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
)

// Logger writes one access log line per request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logging.Error()
		case status >= 400:
			event = logging.Warn()
		default:
			event = logging.Info()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// Recover turns a panic into a logged 500 with the generic error body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("panic recovered")
			respond.ErrorCode(w, http.StatusInternalServerError, respond.CodeInternal, respond.MsgInternal)
		}()
		next.ServeHTTP(w, r)
	})
}
