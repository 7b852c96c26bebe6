package db

import (
	"context"
	"fmt"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

// Stats computes the dashboard counters in one round trip. Nothing is cached.
func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	const query = `
		SELECT
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM contacts WHERE status = 'unread'),
			(SELECT COUNT(*) FROM subscribers),
			(SELECT COUNT(*) FROM blogs),
			(SELECT COUNT(*) FROM comments)
	`
	var st models.Stats
	err := s.pool.QueryRow(ctx, query).Scan(
		&st.TotalContacts,
		&st.UnreadContacts,
		&st.TotalSubscribers,
		&st.TotalBlogs,
		&st.TotalComments,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &st, nil
}
