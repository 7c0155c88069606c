package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogkit/internal/entity"

	"gorm.io/gorm"
)

var (
	// ErrUnauthorized covers missing, invalid, and expired credentials.
	// The reason is never surfaced to callers.
	ErrUnauthorized = errors.New("unauthenticated")
	// ErrForbidden means the caller is authenticated but lacks
	// role, permission, or ownership for the action.
	ErrForbidden = errors.New("access denied")

	// ErrInvalidCredentials is the login failure for unknown email or
	// password mismatch. Both cases share one message.
	ErrInvalidCredentials = fmt.Errorf("%w: Invalid Credentials", ErrUnauthorized)
	// ErrAccountNotReady rejects inactive or unverified accounts at login.
	ErrAccountNotReady = fmt.Errorf("%w: Account inactive or email is not verified", ErrUnauthorized)
)

// UserSource is the slice of the repository the resolver needs. Lookups
// must return users with roles preloaded.
type UserSource interface {
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
}

// Resolver resolves the calling user for a single request. It memoizes
// the outcome so repeated GetUser calls cost at most one storage lookup.
// A Resolver must never be shared across requests.
type Resolver struct {
	token  string
	users  UserSource
	tokens *Manager

	resolved bool
	user     *entity.DbUser
}

// NewResolver builds a request-scoped resolver. token may be empty for
// anonymous requests.
func NewResolver(token string, users UserSource, tokens *Manager) *Resolver {
	return &Resolver{
		token:  strings.TrimSpace(token),
		users:  users,
		tokens: tokens,
	}
}

// GetUser returns the calling user, or nil for anonymous requests.
// Missing token, invalid/expired token, and a claim pointing at a
// deleted user all resolve to anonymous without error. Only storage
// failures are returned as errors.
func (r *Resolver) GetUser(ctx context.Context) (*entity.DbUser, error) {
	if r.resolved {
		return r.user, nil
	}
	r.resolved = true

	if r.token == "" {
		return nil, nil
	}
	claims, err := r.tokens.Verify(r.token)
	if err != nil {
		return nil, nil
	}
	user, err := r.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.resolved = false
		return nil, err
	}
	r.user = user
	return r.user, nil
}

// RequireUser returns the calling user or ErrUnauthorized.
func (r *Resolver) RequireUser(ctx context.Context) (*entity.DbUser, error) {
	user, err := r.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Login authenticates email/password and mints an access token carrying
// the user id and username. Exactly one read query, no writes.
func (r *Resolver) Login(ctx context.Context, email, password string) (string, *entity.DbUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := r.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive || !user.EmailVerified {
		return "", nil, ErrAccountNotReady
	}
	if err := VerifySecret(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := r.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
