package db

import (
	"context"
	"fmt"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// CreateSubscriber stores email, which callers normalize first. A duplicate
// returns models.ErrAlreadySubscribed.
func (s *Store) CreateSubscriber(ctx context.Context, email string) (*models.Subscriber, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	const query = `
		INSERT INTO subscribers (email)
		VALUES ($1)
		RETURNING id::text, email, subscribed_at
	`
	var sub models.Subscriber
	err := s.pool.QueryRow(ctx, query, email).Scan(&sub.ID, &sub.Email, &sub.SubscribedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("create subscriber: %w", err)
	}
	return &sub, nil
}

func (s *Store) ListSubscribers(ctx context.Context, page models.Page) ([]models.Subscriber, int, error) {
	if s.pool == nil {
		return nil, 0, errNotInitialized
	}
	const query = `
		SELECT id::text, email, subscribed_at
		FROM subscribers
		ORDER BY subscribed_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.pool.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	subs := make([]models.Subscriber, 0, page.Limit)
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt); err != nil {
			return nil, 0, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	total, err := s.CountSubscribers(ctx)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (s *Store) CountSubscribers(ctx context.Context) (int, error) {
	if s.pool == nil {
		return 0, errNotInitialized
	}
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return total, nil
}

// DeleteSubscriber reports whether a row was removed.
func (s *Store) DeleteSubscriber(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "subscribers", id)
}

// deleteByID removes one row from table. table is never user input.
func (s *Store) deleteByID(ctx context.Context, table, id string) (bool, error) {
	if s.pool == nil {
		return false, errNotInitialized
	}
	if !validID(id) {
		return false, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}
