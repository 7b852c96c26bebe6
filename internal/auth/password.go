package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies admin passwords with bcrypt.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns nil when password matches hash.
func (h *Hasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
