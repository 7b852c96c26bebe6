// Package mailer sends the site's notification emails over SMTP. Sends go
// through a circuit breaker that opens after three consecutive failures.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/FaranAlam/faran-portfolio/internal/config"
	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/metrics"
)

const (
	// notifyTimeout bounds one background send, detached from the request.
	notifyTimeout = 30 * time.Second

	breakerFailures = 3
	breakerTimeout  = 30 * time.Second

	KindContact = "contact"
	KindWelcome = "welcome"
)

var ErrNotConfigured = errors.New("smtp is not configured")

type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

type sendFunc func(ctx context.Context, msg Message) error

type Mailer struct {
	cfg     config.SMTP
	send    sendFunc
	breaker *gobreaker.CircuitBreaker[struct{}]
	log     zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func New(cfg config.SMTP) *Mailer {
	m := &Mailer{
		cfg: cfg,
		log: logging.With().Str("component", "mailer").Logger(),
	}
	m.send = m.sendSMTP
	m.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			m.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("smtp circuit breaker state changed")
		},
	})
	return m
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// Send delivers msg synchronously.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}
	msg.To = headerValue(msg.To)
	msg.ReplyTo = headerValue(msg.ReplyTo)
	msg.Subject = headerValue(msg.Subject)
	if msg.To == "" {
		return errors.New("message has no recipient")
	}
	_, err := m.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, m.send(ctx, msg)
	})
	return err
}

// dispatch sends msg in the background. The outcome is only logged and counted.
func (m *Mailer) dispatch(kind string, msg Message) {
	if !m.Enabled() {
		m.log.Debug().Str("kind", kind).Msg("smtp not configured; notification skipped")
		metrics.NotificationsTotal.WithLabelValues(kind, metrics.ResultDisabled).Inc()
		return
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.log.Warn().Str("kind", kind).Msg("mailer closed; notification dropped")
		return
	}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := m.Send(ctx, msg); err != nil {
			m.log.Error().Err(err).Str("kind", kind).Msg("notification failed")
			metrics.NotificationsTotal.WithLabelValues(kind, metrics.ResultFailure).Inc()
			return
		}
		m.log.Info().Str("kind", kind).Msg("notification sent")
		metrics.NotificationsTotal.WithLabelValues(kind, metrics.ResultSuccess).Inc()
	}()
}

// Verify dials, greets and authenticates against the server without sending
// anything. It gives up after SMTP_VERIFY_TIMEOUT.
func (m *Mailer) Verify(ctx context.Context) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}
	timeout := m.cfg.VerifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()
	return client.Quit()
}

// Close stops accepting notifications and waits for in-flight ones, or for
// ctx to end.
func (m *Mailer) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.User
}

// connect returns an authenticated client. The connection deadline follows ctx.
func (m *Mailer) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	if m.cfg.Secure {
		dialer := &tls.Dialer{Config: tlsConfig}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	} else {
		dialer := &net.Dialer{}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to smtp server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp greeting: %w", err)
	}

	if !m.cfg.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				_ = client.Close()
				return nil, fmt.Errorf("start tls: %w", err)
			}
		}
	}

	if m.cfg.User != "" && m.cfg.Password != "" {
		auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("smtp authentication failed: %w", err)
		}
	}
	return client, nil
}

func (m *Mailer) sendSMTP(ctx context.Context, msg Message) error {
	client, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(m.from()); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("start message: %w", err)
	}
	if _, err := w.Write([]byte(m.buildMessage(msg))); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	// The message is accepted once DATA is closed.
	_ = client.Quit()
	return nil
}

func (m *Mailer) buildMessage(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", headerValue(m.siteName()), headerValue(m.from()))
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	return b.String()
}

// headerValue drops CR and LF so user input cannot add headers.
func headerValue(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(s))
}
