package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FaranAlam/faran-portfolio/internal/models"
)

const issuer = "faran-portfolio"

// Claims identify the admin a token was issued to. Subject holds the admin id.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AdminID returns the subject claim.
func (c *Claims) AdminID() string {
	return c.Subject
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for admin and returns it with its expiry.
func (t *TokenIssuer) Issue(admin *models.Admin) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies raw and returns its claims. Any failure, including expiry,
// is reported as models.ErrInvalidToken.
func (t *TokenIssuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(models.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, models.ErrInvalidToken
	}
	return claims, nil
}
