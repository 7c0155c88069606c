package model

import (
	"blogkit/internal/entity"
	"context"
)

// Repository defines the database operations used by the application.
type Repository interface {
	// Users. Lookups return roles and profile preloaded. DeleteUser
	// cascades profile, images, and role links in one transaction.
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	UpdateProfile(ctx context.Context, userID uint, updates entity.ProfileUpdates) error
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	SetUserRoles(ctx context.Context, userID uint, roleIDs []uint) error
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// Roles.
	CreateRole(ctx context.Context, role *entity.DbRole) error
	UpdateRole(ctx context.Context, id uint, updates entity.RoleUpdates) error
	GetRoleByID(ctx context.Context, id uint) (*entity.DbRole, error)
	GetRoleByName(ctx context.Context, name string) (*entity.DbRole, error)
	FindRolesByIDs(ctx context.Context, ids []uint) ([]entity.DbRole, error)
	ListRoles(ctx context.Context, params *entity.RoleQuery) ([]entity.DbRole, *entity.Meta, error)
	DeleteRole(ctx context.Context, id uint) error

	// One-time codes. ConsumeOtp is a conditional update guarded on
	// is_used and reports whether this caller won the consumption.
	CreateOtp(ctx context.Context, otp *entity.DbOtp) error
	LatestUnusedOtp(ctx context.Context, email, purpose string) (*entity.DbOtp, error)
	ConsumeOtp(ctx context.Context, id uint) (bool, error)

	// Images.
	CreateImage(ctx context.Context, image *entity.DbImage) error
	GetImageByID(ctx context.Context, id uint) (*entity.DbImage, error)
	ListImages(ctx context.Context, params *entity.ImageQuery) ([]entity.DbImage, *entity.Meta, error)
	UpdateImage(ctx context.Context, id uint, updates entity.ImageUpdates) error
	DeleteImage(ctx context.Context, id uint) error

	// Blogs and categories.
	CreateBlog(ctx context.Context, blog *entity.DbBlog) error
	GetBlogByID(ctx context.Context, id uint) (*entity.DbBlog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*entity.DbBlog, error)
	ListBlogs(ctx context.Context, params *entity.BlogQuery) ([]entity.DbBlog, *entity.Meta, error)
	UpdateBlog(ctx context.Context, id uint, updates entity.BlogUpdates) error
	DeleteBlog(ctx context.Context, id uint) error

	CreateBlogCategory(ctx context.Context, category *entity.DbBlogCategory) error
	GetBlogCategoryByID(ctx context.Context, id uint) (*entity.DbBlogCategory, error)
	GetBlogCategoryBySlug(ctx context.Context, slug string) (*entity.DbBlogCategory, error)
	ListBlogCategories(ctx context.Context, params *entity.BlogCategoryQuery) ([]entity.DbBlogCategory, *entity.Meta, error)
	UpdateBlogCategory(ctx context.Context, id uint, updates entity.BlogCategoryUpdates) error
	DeleteBlogCategory(ctx context.Context, id uint) error
}
