package auth

import (
	"context"

	"blogkit/internal/entity"
)

// Authorization checks composed from the request's resolver. Each check
// authenticates first (ErrUnauthorized) and authorizes second
// (ErrForbidden); the two failures are distinct at the boundary.

// RequireUser allows any authenticated caller.
func RequireUser(ctx context.Context, r *Resolver) (*entity.DbUser, error) {
	return r.RequireUser(ctx)
}

// RequireUserType allows callers whose tier is in the allowed set.
func RequireUserType(ctx context.Context, r *Resolver, allowed ...string) (*entity.DbUser, error) {
	user, err := r.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range allowed {
		if user.UserType == t {
			return user, nil
		}
	}
	return nil, ErrForbidden
}

// RequirePermission allows callers holding perm in the union of their
// roles' permission sets.
func RequirePermission(ctx context.Context, r *Resolver, perm string) (*entity.DbUser, error) {
	user, err := r.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.HasPermission(perm) {
		return nil, ErrForbidden
	}
	return user, nil
}

// RequireOwnerOrAdmin allows the resource owner or an elevated tier.
// Used for image update/delete.
func RequireOwnerOrAdmin(ctx context.Context, r *Resolver, ownerID uint) (*entity.DbUser, error) {
	user, err := r.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if user.ID == ownerID || user.IsAdminTier() {
		return user, nil
	}
	return nil, ErrForbidden
}

// RequirePassword re-authenticates the caller with their account
// password before sensitive account changes.
func RequirePassword(ctx context.Context, r *Resolver, candidate string) (*entity.DbUser, error) {
	user, err := r.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := VerifySecret(user.PasswordHash, candidate); err != nil {
		return nil, ErrForbidden
	}
	return user, nil
}
