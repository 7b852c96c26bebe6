package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/models"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
	"github.com/FaranAlam/faran-portfolio/internal/validate"
)

var (
	errContactNotFound    = fmt.Errorf("contact %w", models.ErrNotFound)
	errSubscriberNotFound = fmt.Errorf("subscriber %w", models.ErrNotFound)
)

// ModerationHandler serves the admin dashboard's contact, subscriber and
// stats endpoints.
type ModerationHandler struct {
	contacts    ContactStore
	subscribers SubscriberStore
	stats       StatsStore
}

func NewModerationHandler(contacts ContactStore, subscribers SubscriberStore, stats StatsStore) *ModerationHandler {
	return &ModerationHandler{contacts: contacts, subscribers: subscribers, stats: stats}
}

func (h *ModerationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

// ListContacts pages through contact messages. An unknown status filter is
// ignored rather than rejected.
func (h *ModerationHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r, 10)
	status := r.URL.Query().Get("status")
	if !models.IsValidContactStatus(status) {
		status = ""
	}
	contacts, total, err := h.contacts.ListContacts(r.Context(), status, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"contacts":   contacts,
		"pagination": page.Paginate(total),
	})
}

func (h *ModerationHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	var in validate.ContactStatusInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, r, err)
		return
	}
	contact, err := h.contacts.UpdateContactStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if contact == nil {
		respond.Error(w, r, errContactNotFound)
		return
	}
	logging.Info().Str("contact_id", contact.ID).Str("status", contact.Status).Msg("contact status updated")
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Contact updated successfully",
		"contact": contact,
	})
}

func (h *ModerationHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ok, err := h.contacts.DeleteContact(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if !ok {
		respond.Error(w, r, errContactNotFound)
		return
	}
	respond.Message(w, http.StatusOK, "Contact deleted successfully")
}

func (h *ModerationHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r, 50)
	subs, total, err := h.subscribers.ListSubscribers(r.Context(), page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"subscribers": subs,
		"pagination":  page.Paginate(total),
	})
}

func (h *ModerationHandler) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	ok, err := h.subscribers.DeleteSubscriber(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if !ok {
		respond.Error(w, r, errSubscriberNotFound)
		return
	}
	respond.Message(w, http.StatusOK, "Subscriber deleted successfully")
}
