package handlers

import (
	"errors"
	"net/http"

	"github.com/FaranAlam/faran-portfolio/internal/auth"
	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/metrics"
	"github.com/FaranAlam/faran-portfolio/internal/models"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
	"github.com/FaranAlam/faran-portfolio/internal/validate"
)

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{auth: svc}
}

type loginResponse struct {
	Message string `json:"message"`
	*auth.LoginResult
}

// Login authenticates an admin and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req validate.LoginInput
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		if errors.Is(err, models.ErrInvalidCredentials) || errors.Is(err, models.ErrAccountDisabled) {
			logging.Warn().Err(err).Str("ip", clientIP(r)).Msg("admin login rejected")
		}
		respond.Error(w, r, err)
		return
	}
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	logging.Info().Str("admin_id", res.Admin.ID).Str("ip", clientIP(r)).Msg("admin logged in")
	respond.JSON(w, http.StatusOK, loginResponse{Message: "Login successful", LoginResult: res})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, models.ErrValidation):
		return metrics.ResultInvalid
	case errors.Is(err, models.ErrAccountDisabled):
		return metrics.ResultDisabled
	default:
		return metrics.ResultFailure
	}
}

// Me returns the admin the token belongs to.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, models.ErrMissingToken)
		return
	}
	admin, err := h.auth.Admin(r.Context(), claims.AdminID())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"admin": admin})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, models.ErrMissingToken)
		return
	}
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if req.CurrentPassword == "" {
		respond.Error(w, r, models.NewValidationError("currentPassword: current password is required"))
		return
	}
	if err := h.auth.ChangePassword(r.Context(), claims.AdminID(), req.CurrentPassword, req.NewPassword); err != nil {
		respond.Error(w, r, err)
		return
	}
	logging.Info().Str("admin_id", claims.AdminID()).Msg("admin password changed")
	respond.Message(w, http.StatusOK, "Password updated successfully")
}
