package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

const blogColumns = `id::text, title, slug, content, excerpt, author, image, image_alt, tags,
	category, featured, published, views, read_time, seo_title, seo_description, created_at, updated_at`

func scanBlog(row pgx.Row) (*models.Blog, error) {
	var b models.Blog
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Slug,
		&b.Content,
		&b.Excerpt,
		&b.Author,
		&b.Image,
		&b.ImageAlt,
		&b.Tags,
		&b.Category,
		&b.Featured,
		&b.Published,
		&b.Views,
		&b.ReadTime,
		&b.SEOTitle,
		&b.SEODescription,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return &b, nil
}

// CreateBlog inserts b as given; slug and read time are derived by the caller.
func (s *Store) CreateBlog(ctx context.Context, b models.Blog) (*models.Blog, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	query := `
		INSERT INTO blogs (title, slug, content, excerpt, author, image, image_alt, tags,
			category, featured, published, read_time, seo_title, seo_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + blogColumns

	created, err := scanBlog(s.pool.QueryRow(ctx, query,
		b.Title,
		b.Slug,
		b.Content,
		b.Excerpt,
		b.Author,
		b.Image,
		b.ImageAlt,
		b.Tags,
		b.Category,
		b.Featured,
		b.Published,
		b.ReadTime,
		b.SEOTitle,
		b.SEODescription,
	))
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// UpdateBlog applies patch to the stored post under a row lock and returns
// the result, or nil, nil when the post does not exist. The slug never changes.
func (s *Store) UpdateBlog(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	if !validID(id) {
		return nil, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := scanBlog(tx.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load blog: %w", err)
	}
	patch.Apply(current)

	query := `
		UPDATE blogs SET
			title = $2, content = $3, excerpt = $4, author = $5, image = $6, image_alt = $7,
			tags = $8, category = $9, featured = $10, published = $11, read_time = $12,
			seo_title = $13, seo_description = $14, updated_at = now()
		WHERE id = $1
		RETURNING ` + blogColumns

	updated, err := scanBlog(tx.QueryRow(ctx, query,
		id,
		current.Title,
		current.Content,
		current.Excerpt,
		current.Author,
		current.Image,
		current.ImageAlt,
		current.Tags,
		current.Category,
		current.Featured,
		current.Published,
		current.ReadTime,
		current.SEOTitle,
		current.SEODescription,
	))
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return updated, nil
}

func (s *Store) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	if !validID(id) {
		return nil, nil
	}
	blog, err := scanBlog(s.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blog by id: %w", err)
	}
	return blog, nil
}

// GetPublishedBlogBySlug reads a published post without touching its view count.
func (s *Store) GetPublishedBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE slug = $1 AND published`
	blog, err := scanBlog(s.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blog by slug: %w", err)
	}
	return blog, nil
}

// IncrementBlogViews bumps the view counter of a published post and returns
// the post as stored afterwards. Concurrent readers never lose an increment.
func (s *Store) IncrementBlogViews(ctx context.Context, slug string) (*models.Blog, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	query := `
		UPDATE blogs SET views = views + 1
		WHERE slug = $1 AND published
		RETURNING ` + blogColumns

	blog, err := scanBlog(s.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("increment blog views: %w", err)
	}
	return blog, nil
}

func blogWhere(filter models.BlogFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.PublishedOnly {
		conds = append(conds, "published")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, "$"+strconv.Itoa(len(args))+" = ANY(tags)")
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conds = append(conds, "featured = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListBlogs returns one page of posts matching filter, newest first.
func (s *Store) ListBlogs(ctx context.Context, filter models.BlogFilter, page models.Page) ([]models.Blog, int, error) {
	if s.pool == nil {
		return nil, 0, errNotInitialized
	}
	where, args := blogWhere(filter)
	n := len(args)
	query := `SELECT ` + blogColumns + ` FROM blogs` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)

	rows, err := s.pool.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]models.Blog, 0, page.Limit)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}
	return blogs, total, nil
}

func (s *Store) CountBlogs(ctx context.Context) (int, error) {
	if s.pool == nil {
		return 0, errNotInitialized
	}
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return total, nil
}

// DeleteBlog removes the post and returns it so the caller can clean up its
// image. Missing posts return nil, nil.
func (s *Store) DeleteBlog(ctx context.Context, id string) (*models.Blog, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	if !validID(id) {
		return nil, nil
	}
	blog, err := scanBlog(s.pool.QueryRow(ctx, `DELETE FROM blogs WHERE id = $1 RETURNING `+blogColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete blog: %w", err)
	}
	return blog, nil
}
