package model

import (
	"blogkit/internal/auth"
	"blogkit/internal/config"
	"blogkit/internal/entity"
	"context"
	"errors"

	"gorm.io/gorm"
)

type roleSeed struct {
	Name        string
	Permissions entity.StringArray
}

type userSeed struct {
	Name     string
	Username string
	Email    string
	Password string
	UserType string
	Roles    []string
}

// SeedDefaults ensures the default roles and accounts exist. Existing
// rows are left untouched, so repeated startups are safe.
func SeedDefaults(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil || !cfg.SeedDefaults {
		return nil
	}

	roleIDs := make(map[string]uint)
	for _, seed := range buildDefaultRoleSeeds() {
		role, err := ensureRole(ctx, repo, seed)
		if err != nil {
			return err
		}
		roleIDs[role.Name] = role.ID
	}

	for _, seed := range buildDefaultUserSeeds() {
		if err := ensureUser(ctx, repo, seed, roleIDs); err != nil {
			return err
		}
	}
	return nil
}

func ensureRole(ctx context.Context, repo Repository, seed roleSeed) (*entity.DbRole, error) {
	existing, err := repo.GetRoleByName(ctx, seed.Name)
	switch {
	case err == nil:
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		role := &entity.DbRole{
			Name:        seed.Name,
			Permissions: seed.Permissions,
		}
		if err := repo.CreateRole(ctx, role); err != nil {
			return nil, err
		}
		return role, nil
	default:
		return nil, err
	}
}

func ensureUser(ctx context.Context, repo Repository, seed userSeed, roleIDs map[string]uint) error {
	_, err := repo.GetUserByEmail(ctx, seed.Email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return err
	}

	hash, err := auth.HashSecret(seed.Password)
	if err != nil {
		return err
	}

	user := &entity.DbUser{
		Name:          seed.Name,
		Username:      seed.Username,
		Email:         seed.Email,
		PasswordHash:  hash,
		IsActive:      true,
		EmailVerified: true,
		UserType:      seed.UserType,
		Profile:       &entity.DbProfile{},
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return err
	}

	var assign []uint
	for _, name := range seed.Roles {
		if id, ok := roleIDs[name]; ok {
			assign = append(assign, id)
		}
	}
	if len(assign) > 0 {
		return repo.SetUserRoles(ctx, user.ID, assign)
	}
	return nil
}

func buildDefaultRoleSeeds() []roleSeed {
	return []roleSeed{
		{
			Name:        "moderator",
			Permissions: entity.StringArray{entity.PermissionManageBlogs},
		},
		{
			Name:        "manager",
			Permissions: entity.StringArray{entity.PermissionManageBlogs, entity.PermissionManageUsers},
		},
	}
}

func buildDefaultUserSeeds() []userSeed {
	return []userSeed{
		{
			Name:     "Admin",
			Username: "admin",
			Email:    "admin@example.com",
			Password: "123456789",
			UserType: entity.UserTypeSuperAdmin,
		},
		{
			Name:     "Staff",
			Username: "staff",
			Email:    "staff@example.com",
			Password: "123456789",
			UserType: entity.UserTypeAdmin,
			Roles:    []string{"moderator"},
		},
		{
			Name:     "User",
			Username: "user",
			Email:    "user@example.com",
			Password: "123456789",
			UserType: entity.UserTypeUser,
		},
	}
}
