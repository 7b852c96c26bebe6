package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

const contactColumns = `id::text, name, email, subject, message, status,
	COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at, updated_at`

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Subject,
		&c.Message,
		&c.Status,
		&c.IPAddress,
		&c.UserAgent,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateContact persists a sanitized message. Status always starts unread.
func (s *Store) CreateContact(ctx context.Context, c models.Contact) (*models.Contact, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	subject := c.Subject
	if subject == "" {
		subject = models.DefaultContactSubject
	}
	query := `
		INSERT INTO contacts (name, email, subject, message, status, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
		RETURNING ` + contactColumns

	created, err := scanContact(s.pool.QueryRow(ctx, query,
		c.Name, c.Email, subject, c.Message, models.ContactUnread, c.IPAddress, c.UserAgent))
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return created, nil
}

// ListContacts returns one page, newest first. An empty status lists all.
func (s *Store) ListContacts(ctx context.Context, status string, page models.Page) ([]models.Contact, int, error) {
	if s.pool == nil {
		return nil, 0, errNotInitialized
	}
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.pool.Query(ctx, query, status, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0, page.Limit)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	total, err := s.CountContacts(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// UpdateContactStatus returns nil, nil when the contact does not exist.
func (s *Store) UpdateContactStatus(ctx context.Context, id, status string) (*models.Contact, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	if !validID(id) {
		return nil, nil
	}
	query := `
		UPDATE contacts SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + contactColumns

	updated, err := scanContact(s.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	return updated, nil
}

func (s *Store) DeleteContact(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "contacts", id)
}

// CountContacts counts contacts with the given status, or all of them.
func (s *Store) CountContacts(ctx context.Context, status string) (int, error) {
	if s.pool == nil {
		return 0, errNotInitialized
	}
	var total int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE ($1 = '' OR status = $1)`, status).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return total, nil
}
