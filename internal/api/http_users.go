package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"blogkit/internal/auth"
	"blogkit/internal/entity"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// User administration. Every endpoint here is SuperAdmin only.

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ListUsers returns a paginated user listing.
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	if h.requireUserType(c, entity.UserTypeSuperAdmin) == nil {
		return
	}

	var params entity.UserQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c)
		return
	}

	users, meta, err := h.repo.ListUsers(c.Request.Context(), &params)
	if err != nil {
		HandleError(c, err)
		return
	}

	summaries := make([]entity.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, toUserSummary(&users[i]))
	}
	c.JSON(http.StatusOK, entity.UserListResponse{Users: summaries, Meta: meta})
}

// GetUser returns one user with profile and roles.
func (h *HTTPHandler) GetUser(c *gin.Context) {
	if h.requireUserType(c, entity.UserTypeSuperAdmin) == nil {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountDetail(user))
}

// CreateUser creates an account from the admin panel. Unlike
// registration, tier, flags, and roles can be set directly.
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	if h.requireUserType(c, entity.UserTypeSuperAdmin) == nil {
		return
	}

	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if !isValidUserType(req.UserType) {
		BadRequest(c, "invalid user type")
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.repo.GetUserByEmail(ctx, email); err == nil {
		BadRequest(c, "Email is already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		HandleError(c, err)
		return
	}
	if _, err := h.repo.GetUserByUsername(ctx, req.Username); err == nil {
		BadRequest(c, "Username is already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		HandleError(c, err)
		return
	}

	hash, err := auth.HashSecret(req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	emailVerified := false
	if req.EmailVerified != nil {
		emailVerified = *req.EmailVerified
	}

	user := &entity.DbUser{
		Name:          req.Name,
		Username:      strings.TrimSpace(req.Username),
		Email:         email,
		PasswordHash:  hash,
		IsActive:      isActive,
		EmailVerified: emailVerified,
		UserType:      req.UserType,
		Profile:       &entity.DbProfile{},
	}
	if err := h.repo.CreateUser(ctx, user); err != nil {
		HandleError(c, err)
		return
	}
	if len(req.RoleIDs) > 0 {
		if err := h.repo.SetUserRoles(ctx, user.ID, req.RoleIDs); err != nil {
			HandleError(c, err)
			return
		}
	}

	fresh, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountDetail(fresh))
}

// UpdateUser patches user columns and optionally replaces role
// assignments.
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	caller := h.requireUserType(c, entity.UserTypeSuperAdmin)
	if caller == nil {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if req.UserType != nil && !isValidUserType(*req.UserType) {
		BadRequest(c, "invalid user type")
		return
	}
	ctx := c.Request.Context()

	if _, err := h.repo.GetUserByID(ctx, id); err != nil {
		HandleError(c, err)
		return
	}

	updates := entity.UserUpdates{
		Name:          req.Name,
		UserType:      req.UserType,
		IsActive:      req.IsActive,
		EmailVerified: req.EmailVerified,
	}
	if req.Password != nil {
		hash, err := auth.HashSecret(*req.Password)
		if err != nil {
			HandleError(c, err)
			return
		}
		updates.PasswordHash = &hash
	}
	if !updates.IsEmpty() {
		if err := h.repo.UpdateUser(ctx, id, updates); err != nil {
			HandleError(c, err)
			return
		}
	}
	if req.RoleIDs != nil {
		if err := h.repo.SetUserRoles(ctx, id, req.RoleIDs); err != nil {
			HandleError(c, err)
			return
		}
	}

	fresh, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountDetail(fresh))
}

// DeleteUser removes an account. Self-deletion is rejected so the
// panel cannot lock itself out.
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	caller := h.requireUserType(c, entity.UserTypeSuperAdmin)
	if caller == nil {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if id == caller.ID {
		BadRequest(c, "Cannot delete your own account")
		return
	}

	if err := h.repo.DeleteUser(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Detail: "User deleted"})
}

func isValidUserType(value string) bool {
	switch value {
	case entity.UserTypeSuperAdmin, entity.UserTypeAdmin, entity.UserTypeUser:
		return true
	default:
		return false
	}
}
