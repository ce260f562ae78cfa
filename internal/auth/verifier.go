package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"institute-site-backend/internal/model"
	"institute-site-backend/internal/store"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAdmin is returned by CreateAdmin for a blank username or password.
	ErrInvalidAdmin = errors.New("username and password are required")
)

// Verifier checks admin credentials against the store.
type Verifier struct {
	store store.Store
	cost  int
}

// NewVerifier creates a Verifier backed by s.
func NewVerifier(s store.Store) *Verifier {
	return &Verifier{store: s, cost: BcryptCost}
}

// VerifyAdmin returns the admin whose username and password match. Any
// mismatch yields ErrInvalidCredentials; other errors come from the store.
func (v *Verifier) VerifyAdmin(ctx context.Context, username, password string) (*model.Admin, error) {
	admin, err := v.store.FindAdminByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if !CheckPassword(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// CreateAdmin provisions a new admin with a hashed password.
func (v *Verifier) CreateAdmin(ctx context.Context, username, password string) (*model.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidAdmin
	}

	hash, err := HashPassword(password, v.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{Username: username, PasswordHash: hash}
	if err := v.store.InsertAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
