package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

const adminColumns = `id::text, username, email, password_hash, name, role, is_active, last_login, created_at, updated_at`

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	var a models.Admin
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Role,
		&a.IsActive,
		&a.LastLogin,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAdmin inserts a new admin. Duplicate email or username returns
// models.ErrAdminExists.
func (s *Store) CreateAdmin(ctx context.Context, admin models.Admin) (*models.Admin, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	role := admin.Role
	if role == "" {
		role = models.RoleAdmin
	}
	query := `
		INSERT INTO admins (username, email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + adminColumns

	created, err := scanAdmin(s.pool.QueryRow(ctx, query,
		strings.TrimSpace(admin.Username),
		strings.ToLower(strings.TrimSpace(admin.Email)),
		admin.PasswordHash,
		strings.TrimSpace(admin.Name),
		role,
		admin.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrAdminExists
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return created, nil
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`
	admin, err := scanAdmin(s.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return admin, nil
}

func (s *Store) GetAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	admin, err := scanAdmin(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}
	return admin, nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	if s.pool == nil {
		return nil, errNotInitialized
	}
	rows, err := s.pool.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	admins := make([]models.Admin, 0)
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, *admin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return admins, nil
}

func (s *Store) CountAdmins(ctx context.Context) (int, error) {
	if s.pool == nil {
		return 0, errNotInitialized
	}
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return total, nil
}

// TouchLastLogin records a successful login.
func (s *Store) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	if s.pool == nil {
		return errNotInitialized
	}
	if !validID(id) {
		return models.ErrNotFound
	}
	tag, err := s.pool.Exec(ctx, `UPDATE admins SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateAdminPassword(ctx context.Context, id, passwordHash string) error {
	if s.pool == nil {
		return errNotInitialized
	}
	if !validID(id) {
		return models.ErrNotFound
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE admins SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
