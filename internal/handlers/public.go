package handlers

import (
	"errors"
	"net/http"

	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/metrics"
	"github.com/FaranAlam/faran-portfolio/internal/models"
	"github.com/FaranAlam/faran-portfolio/internal/respond"
	"github.com/FaranAlam/faran-portfolio/internal/validate"
)

// IntakeHandler serves the unauthenticated newsletter and contact forms.
type IntakeHandler struct {
	subscribers SubscriberStore
	contacts    ContactStore
	notifier    Notifier
}

func NewIntakeHandler(subscribers SubscriberStore, contacts ContactStore, notifier Notifier) *IntakeHandler {
	return &IntakeHandler{subscribers: subscribers, contacts: contacts, notifier: notifier}
}

func (h *IntakeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in validate.SubscribeInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		metrics.SubscriptionsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		respond.Error(w, r, err)
		return
	}

	sub, err := h.subscribers.CreateSubscriber(r.Context(), in.Email)
	if err != nil {
		if errors.Is(err, models.ErrAlreadySubscribed) {
			metrics.SubscriptionsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
		} else {
			metrics.SubscriptionsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		}
		respond.Error(w, r, err)
		return
	}
	metrics.SubscriptionsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	logging.Info().Str("subscriber_id", sub.ID).Msg("new subscriber")

	h.notifier.WelcomeSubscriber(sub.Email)
	respond.Message(w, http.StatusOK, "Subscription successful!")
}

// Contact stores a contact form message and notifies the owner. The
// notification goes out even when storing fails.
func (h *IntakeHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var in validate.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	in.Sanitize()
	if err := in.Validate(); err != nil {
		metrics.ContactMessagesTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		respond.Error(w, r, err)
		return
	}

	contact := models.Contact{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    models.ContactUnread,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
	if contact.Subject == "" {
		contact.Subject = models.DefaultContactSubject
	}

	saved, err := h.contacts.CreateContact(r.Context(), contact)
	h.notifier.NotifyContact(contact)
	if err != nil {
		metrics.ContactMessagesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		respond.Error(w, r, err)
		return
	}
	metrics.ContactMessagesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	logging.Info().Str("contact_id", saved.ID).Msg("contact message received")

	respond.JSON(w, http.StatusCreated, map[string]string{
		"message": "Thank you for your message! I'll get back to you soon.",
		"id":      saved.ID,
	})
}
