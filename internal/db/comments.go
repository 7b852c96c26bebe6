package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

const commentColumns = `id::text, blog_slug, name, email, comment, approved, created_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.BlogSlug, &c.Name, &c.Email, &c.Comment, &c.Approved, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateComment stores an approved comment. The caller checks that the post
// exists and is published.
func (s *Store) CreateComment(ctx context.Context, c models.Comment) (*models.Comment, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	query := `
		INSERT INTO comments (blog_slug, name, email, comment, approved)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING ` + commentColumns

	created, err := scanComment(s.pool.QueryRow(ctx, query, c.BlogSlug, c.Name, c.Email, c.Comment))
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// ListCommentsBySlug returns the comments of one post, newest first.
func (s *Store) ListCommentsBySlug(ctx context.Context, slug string, approvedOnly bool, page models.Page) ([]models.Comment, int, error) {
	if s.pool == nil {
		return nil, 0, errNotInitialized
	}
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE blog_slug = $1 AND (approved OR NOT $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	comments, err := s.queryComments(ctx, query, slug, approvedOnly, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	var total int
	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE blog_slug = $1 AND (approved OR NOT $2)`,
		slug, approvedOnly,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}
	return comments, total, nil
}

// ListComments returns comments across all posts for moderation.
func (s *Store) ListComments(ctx context.Context, page models.Page) ([]models.Comment, int, error) {
	if s.pool == nil {
		return nil, 0, errNotInitialized
	}
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	comments, err := s.queryComments(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.CountComments(ctx)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *Store) queryComments(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return comments, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "comments", id)
}

func (s *Store) CountComments(ctx context.Context) (int, error) {
	if s.pool == nil {
		return 0, errNotInitialized
	}
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return total, nil
}
