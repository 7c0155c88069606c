package auth

import (
	"context"
	"errors"
	"testing"

	"blogkit/internal/entity"
)

func resolverForUser(t *testing.T, user *entity.DbUser) *Resolver {
	t.Helper()
	mgr := newTestManager(t)
	source := &fakeUserSource{users: map[uint]*entity.DbUser{user.ID: user}}
	token, _, err := mgr.Issue(user)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}
	return NewResolver(token, source, mgr)
}

func anonymousResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver("", &fakeUserSource{}, newTestManager(t))
}

func TestRequireUserTypeAllowsMatchingTier(t *testing.T) {
	resolver := resolverForUser(t, &entity.DbUser{ID: 1, UserType: entity.UserTypeSuperAdmin})

	user, err := RequireUserType(context.Background(), resolver, entity.UserTypeSuperAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected user 1, got %d", user.ID)
	}
}

func TestRequireUserTypeRejectsOtherTier(t *testing.T) {
	resolver := resolverForUser(t, &entity.DbUser{ID: 1, UserType: entity.UserTypeUser})

	if _, err := RequireUserType(context.Background(), resolver, entity.UserTypeSuperAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireUserTypeRejectsAnonymousFirst(t *testing.T) {
	if _, err := RequireUserType(context.Background(), anonymousResolver(t), entity.UserTypeSuperAdmin); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRequirePermissionUnionsRoles(t *testing.T) {
	user := &entity.DbUser{
		ID:       2,
		UserType: entity.UserTypeUser,
		Roles: []entity.DbRole{
			{Name: "moderator", Permissions: entity.StringArray{entity.PermissionManageBlogs}},
			{Name: "empty"},
		},
	}
	resolver := resolverForUser(t, user)

	if _, err := RequirePermission(context.Background(), resolver, entity.PermissionManageBlogs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequirePermissionRejectsMissingPermission(t *testing.T) {
	user := &entity.DbUser{
		ID:       2,
		UserType: entity.UserTypeUser,
		Roles: []entity.DbRole{
			{Name: "moderator", Permissions: entity.StringArray{entity.PermissionManageBlogs}},
		},
	}
	resolver := resolverForUser(t, user)

	if _, err := RequirePermission(context.Background(), resolver, entity.PermissionManageUsers); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	cases := []struct {
		name    string
		user    *entity.DbUser
		ownerID uint
		wantErr error
	}{
		{"owner", &entity.DbUser{ID: 4, UserType: entity.UserTypeUser}, 4, nil},
		{"admin tier", &entity.DbUser{ID: 5, UserType: entity.UserTypeAdmin}, 4, nil},
		{"super admin tier", &entity.DbUser{ID: 6, UserType: entity.UserTypeSuperAdmin}, 4, nil},
		{"stranger", &entity.DbUser{ID: 7, UserType: entity.UserTypeUser}, 4, ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := resolverForUser(t, tc.user)
			_, err := RequireOwnerOrAdmin(context.Background(), resolver, tc.ownerID)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRequirePasswordChecksAccountPassword(t *testing.T) {
	hash, err := HashSecret("hunter2hunter2")
	if err != nil {
		t.Fatalf("unexpected error hashing: %v", err)
	}
	user := &entity.DbUser{ID: 8, UserType: entity.UserTypeUser, PasswordHash: hash}
	resolver := resolverForUser(t, user)

	if _, err := RequirePassword(context.Background(), resolver, "hunter2hunter2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := RequirePassword(context.Background(), resolver, "wrong"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
