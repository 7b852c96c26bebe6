package mailer

import (
	"fmt"
	"strings"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// NotifyContact forwards a contact form submission to the site owner.
func (m *Mailer) NotifyContact(c models.Contact) {
	to := m.cfg.NotifyEmail
	if to == "" {
		to = m.cfg.User
	}

	var body strings.Builder
	fmt.Fprintf(&body, "New message from the %s contact form.\n\n", m.siteName())
	fmt.Fprintf(&body, "Name: %s\n", c.Name)
	fmt.Fprintf(&body, "Email: %s\n", c.Email)
	fmt.Fprintf(&body, "Subject: %s\n", c.Subject)
	if c.IPAddress != "" {
		fmt.Fprintf(&body, "IP: %s\n", c.IPAddress)
	}
	fmt.Fprintf(&body, "\n%s\n", c.Message)

	subject := c.Subject
	if subject == "" {
		subject = models.DefaultContactSubject
	}
	m.dispatch(KindContact, Message{
		To:      to,
		ReplyTo: c.Email,
		Subject: fmt.Sprintf("[%s] %s", m.siteName(), subject),
		Body:    body.String(),
	})
}

// WelcomeSubscriber thanks a new newsletter subscriber.
func (m *Mailer) WelcomeSubscriber(email string) {
	site := m.siteName()
	m.dispatch(KindWelcome, Message{
		To:      email,
		Subject: fmt.Sprintf("Welcome to the %s newsletter", site),
		Body: fmt.Sprintf("Hi,\n\nThanks for subscribing to the %s newsletter. "+
			"You'll hear from us when new posts are published.\n\n%s\n", site, site),
	})
}

func (m *Mailer) siteName() string {
	if m.cfg.SiteName != "" {
		return m.cfg.SiteName
	}
	return "Portfolio"
}
