package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/mailer"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
)

const dbCheckTimeout = 5 * time.Second

type HealthHandler struct {
	db   Pinger
	mail MailVerifier
	now  func() time.Time
}

func NewHealthHandler(db Pinger, mail MailVerifier) *HealthHandler {
	return &HealthHandler{db: db, mail: mail, now: time.Now}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   h.now().UTC(),
	})
}

func (h *HealthHandler) DBCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logging.Error().Err(err).Msg("database check failed")
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "Database unreachable",
		})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Database connected"})
}

// SMTPCheck verifies the mail server. The verifier enforces its own timeout.
func (h *HealthHandler) SMTPCheck(w http.ResponseWriter, r *http.Request) {
	err := h.mail.Verify(r.Context())
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "SMTP connection verified"})
	case errors.Is(err, mailer.ErrNotConfigured):
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "SMTP is not configured",
		})
	default:
		logging.Error().Err(err).Msg("smtp check failed")
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "SMTP verification failed",
		})
	}
}
