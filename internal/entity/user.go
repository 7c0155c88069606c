package entity

import "time"

// User tiers. SuperAdmin owns the admin area, Admin shares the
// elevated checks used by ownership policies, User is the default.
const (
	UserTypeSuperAdmin = "super_admin"
	UserTypeAdmin      = "admin"
	UserTypeUser       = "user"
)

// Role permissions. The set is closed: only these values may appear in
// DbRole.Permissions.
const (
	PermissionManageUsers = "manage_users"
	PermissionManageBlogs = "manage_blogs"
)

// AllPermissions lists every legal permission value.
var AllPermissions = []string{PermissionManageUsers, PermissionManageBlogs}

// IsKnownPermission reports whether perm is a member of the closed permission set.
func IsKnownPermission(perm string) bool {
	for _, known := range AllPermissions {
		if known == perm {
			return true
		}
	}
	return false
}

// DbUser represents a persisted user account.
type DbUser struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Name          string    `gorm:"column:name;type:varchar(30);not null" json:"name"`
	Username      string    `gorm:"column:username;type:varchar(30);uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	EmailVerified bool      `gorm:"column:email_verified;not null;default:false" json:"email_verified"`
	UserType      string    `gorm:"column:user_type;type:varchar(50);index;not null" json:"user_type"`

	Profile *DbProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Images  []DbImage  `gorm:"foreignKey:UserID" json:"-"`
	Roles   []DbRole   `gorm:"many2many:user_role_link" json:"roles"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// IsAdminTier reports whether the user holds an elevated tier.
func (u *DbUser) IsAdminTier() bool {
	if u == nil {
		return false
	}
	return u.UserType == UserTypeAdmin || u.UserType == UserTypeSuperAdmin
}

// HasPermission checks membership of perm in the union of all assigned
// roles' permission sets.
func (u *DbUser) HasPermission(perm string) bool {
	if u == nil {
		return false
	}
	union := make(map[string]struct{})
	for _, role := range u.Roles {
		for _, p := range role.Permissions {
			union[p] = struct{}{}
		}
	}
	_, ok := union[perm]
	return ok
}

// DbRole groups permissions and attaches to users many-to-many.
type DbRole struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Name        string      `gorm:"column:name;type:varchar(30);uniqueIndex;not null" json:"name"`
	Permissions StringArray `gorm:"column:permissions;type:text" json:"permissions"`

	Users []DbUser `gorm:"many2many:user_role_link" json:"-"`
}

// TableName overrides default pluralised name.
func (DbRole) TableName() string {
	return "roles"
}

// DbProfile is the 1:1 companion row created together with its user.
type DbProfile struct {
	ID     uint    `gorm:"primarykey" json:"id"`
	Avatar *string `gorm:"column:avatar;type:varchar(500)" json:"avatar"`
	About  *string `gorm:"column:about;type:text" json:"about"`
	UserID uint    `gorm:"column:user_id;index;not null" json:"-"`
}

// TableName overrides default pluralised name.
func (DbProfile) TableName() string {
	return "profiles"
}

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	UserType      string    `json:"user_type"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoleSummary mirrors a role in API responses.
type RoleSummary struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// ProfileSummary mirrors the profile in API responses.
type ProfileSummary struct {
	ID     uint    `json:"id"`
	Avatar *string `json:"avatar"`
	About  *string `json:"about"`
}

// AccountDetail is the full account view including profile and roles.
type AccountDetail struct {
	UserSummary
	Roles   []RoleSummary   `json:"roles"`
	Profile *ProfileSummary `json:"profile"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	UserType string `json:"user_type" form:"user_type" query:"user_type"`
	Keyword  string `json:"keyword" form:"keyword" query:"keyword"`
}

type UserCreateRequest struct {
	Name          string `json:"name" binding:"required,min=2"`
	Username      string `json:"username" binding:"required,min=2"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	UserType      string `json:"user_type" binding:"required"`
	IsActive      *bool  `json:"is_active"`
	EmailVerified *bool  `json:"email_verified"`
	RoleIDs       []uint `json:"role_ids"`
}

type UserUpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	UserType      *string `json:"user_type,omitempty"`
	Password      *string `json:"password,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	EmailVerified *bool   `json:"email_verified,omitempty"`
	RoleIDs       []uint  `json:"role_ids,omitempty"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *Meta         `json:"meta"`
}

type RoleQuery struct {
	BaseParams
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}

type RoleCreateRequest struct {
	Name        string   `json:"name" binding:"required,min=2"`
	Permissions []string `json:"permissions"`
}

type RoleUpdateRequest struct {
	Name        *string   `json:"name,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
}

type RoleListResponse struct {
	Roles []RoleSummary `json:"roles"`
	Meta  *Meta         `json:"meta"`
}

// UserUpdates carries partial user column updates.
type UserUpdates struct {
	Name          *string
	Email         *string
	UserType      *string
	PasswordHash  *string
	IsActive      *bool
	EmailVerified *bool
}

// ToMap converts to a GORM updates map.
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.UserType != nil {
		updates["user_type"] = *u.UserType
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.EmailVerified != nil {
		updates["email_verified"] = *u.EmailVerified
	}
	return updates
}

// IsEmpty reports whether no update fields are set.
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ProfileUpdates carries partial profile column updates.
type ProfileUpdates struct {
	Avatar *string
	About  *string
}

// ToMap converts to a GORM updates map.
func (u ProfileUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Avatar != nil {
		updates["avatar"] = *u.Avatar
	}
	if u.About != nil {
		updates["about"] = *u.About
	}
	return updates
}

// IsEmpty reports whether no update fields are set.
func (u ProfileUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// RoleUpdates carries partial role column updates.
type RoleUpdates struct {
	Name        *string
	Permissions *StringArray
}

// ToMap converts to a GORM updates map.
func (u RoleUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Permissions != nil {
		updates["permissions"] = *u.Permissions
	}
	return updates
}

// IsEmpty reports whether no update fields are set.
func (u RoleUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
