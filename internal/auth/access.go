// Package auth implements the shared-access-code gate that guards the API.
// There is deliberately no user model: everyone who knows the group code
// shares one identity, matching how a home game actually works.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"pokerpal/internal/storage"
)

var (
	ErrInvalidAccessCode = errors.New("invalid group code")
	ErrEmptyAccessCode   = errors.New("group code is required")
	ErrRosterRequired    = errors.New("an initial roster is required to set up the group")
)

// AccessGate verifies the shared group code and issues bearer tokens.
// The first successful join provisions the group: the code is hashed with
// bcrypt and stored together with the initial roster.
type AccessGate struct {
	store storage.Store
	jwt   *JWTManager
}

// NewAccessGate creates an access gate over the given store and token
// manager.
func NewAccessGate(store storage.Store, jwt *JWTManager) *AccessGate {
	return &AccessGate{store: store, jwt: jwt}
}

// Join checks the code against the stored hash and returns a token. When no
// group exists yet, it provisions one with the given initial roster and
// reports provisioned = true.
func (g *AccessGate) Join(ctx context.Context, code string, initialRoster []string) (token string, provisioned bool, err error) {
	if code == "" {
		return "", false, ErrEmptyAccessCode
	}

	hash, err := g.store.GetAccessHash(ctx)
	switch {
	case errors.Is(err, storage.ErrNotProvisioned):
		if len(initialRoster) == 0 {
			return "", false, ErrRosterRequired
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
		if err != nil {
			return "", false, fmt.Errorf("failed to hash group code: %w", err)
		}
		if err := g.store.ProvisionGroup(ctx, string(hashed), initialRoster); err != nil {
			return "", false, fmt.Errorf("failed to provision group: %w", err)
		}
		provisioned = true
	case err != nil:
		return "", false, err
	default:
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
			return "", false, ErrInvalidAccessCode
		}
	}

	token, err = g.jwt.Generate()
	if err != nil {
		return "", false, err
	}
	return token, provisioned, nil
}
