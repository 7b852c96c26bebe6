package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FaranAlam/faran-portfolio/internal/config"
	"github.com/FaranAlam/faran-portfolio/internal/logging"
	"github.com/FaranAlam/faran-portfolio/internal/models"
	"github.com/FaranAlam/faran-portfolio/internal/validate"
)

// AdminStore is the credential storage the service needs.
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAdminByID(ctx context.Context, id string) (*models.Admin, error)
	CountAdmins(ctx context.Context) (int, error)
	CreateAdmin(ctx context.Context, admin models.Admin) (*models.Admin, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateAdminPassword(ctx context.Context, id, passwordHash string) error
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     *models.Admin `json:"admin"`
}

type Service struct {
	store  AdminStore
	hasher *Hasher
	tokens *TokenIssuer
	now    func() time.Time

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewService(store AdminStore, hasher *Hasher, tokens *TokenIssuer) (*Service, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Service{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password both return models.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := validate.LoginInput{Email: validate.NormalizeEmail(email), Password: password}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	admin, err := s.store.GetAdminByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		_ = s.hasher.Compare(s.dummyHash, in.Password)
		return nil, models.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(admin.PasswordHash, in.Password); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, models.ErrAccountDisabled
	}

	now := s.now()
	if err := s.store.TouchLastLogin(ctx, admin.ID, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	admin.LastLogin = &now

	token, expiresAt, err := s.tokens.Issue(admin)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// Authorize validates an Authorization header value of the form "Bearer <token>".
// The scheme is matched case-insensitively.
func (s *Service) Authorize(header string) (*Claims, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	raw = strings.TrimSpace(raw)
	if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
		return nil, models.ErrMissingToken
	}
	return s.tokens.Parse(raw)
}

// Admin loads the admin a token belongs to. A deleted admin is ErrNotFound.
func (s *Service) Admin(ctx context.Context, id string) (*models.Admin, error) {
	admin, err := s.store.GetAdminByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, models.ErrNotFound
	}
	return admin, nil
}

// ChangePassword replaces the password of adminID after checking current.
func (s *Service) ChangePassword(ctx context.Context, adminID, current, next string) error {
	if err := validate.ValidatePassword(next); err != nil {
		return err
	}
	admin, err := s.Admin(ctx, adminID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(admin.PasswordHash, current); err != nil {
		return models.ErrInvalidCredentials
	}
	return s.setPassword(ctx, admin.ID, next)
}

// ResetPassword sets a new password without checking the old one. Used by
// the admin CLI.
func (s *Service) ResetPassword(ctx context.Context, email, next string) error {
	if err := validate.ValidatePassword(next); err != nil {
		return err
	}
	admin, err := s.store.GetAdminByEmail(ctx, email)
	if err != nil {
		return err
	}
	if admin == nil {
		return models.ErrNotFound
	}
	return s.setPassword(ctx, admin.ID, next)
}

func (s *Service) setPassword(ctx context.Context, id, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdateAdminPassword(ctx, id, hash)
}

// CreateAdmin validates in and stores a new active admin.
func (s *Service) CreateAdmin(ctx context.Context, in validate.AdminInput) (*models.Admin, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateAdmin(ctx, models.Admin{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		IsActive:     true,
	})
}

// Bootstrap creates a single super-admin from def when no admin exists yet.
// It reports whether an account was created.
func (s *Service) Bootstrap(ctx context.Context, def config.DefaultAdmin) (bool, error) {
	count, err := s.store.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if def.Password == "" {
		logging.Warn().Msg("no admin exists and DEFAULT_ADMIN_PASSWORD is empty; skipping bootstrap")
		return false, nil
	}

	admin, err := s.CreateAdmin(ctx, validate.AdminInput{
		Username: def.Username,
		Email:    def.Email,
		Password: def.Password,
		Name:     def.Name,
		Role:     models.RoleSuperAdmin,
	})
	if errors.Is(err, models.ErrAdminExists) {
		// another instance won the race
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	logging.Info().Str("username", admin.Username).Str("email", admin.Email).Msg("default admin created")
	return true, nil
}
