package api

import (
	"net/http"

	"blogkit/internal/entity"

	"github.com/gin-gonic/gin"
)

// Role administration. SuperAdmin only, like user administration.

// ListRoles returns a paginated role listing.
func (h *HTTPHandler) ListRoles(c *gin.Context) {
	if h.requireUserType(c, entity.UserTypeSuperAdmin) == nil {
		return
	}

	var params entity.RoleQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c)
		return
	}

	roles, meta, err := h.repo.ListRoles(c.Request.Context(), &params)
	if err != nil {
		HandleError(c, err)
		return
	}

	summaries := make([]entity.RoleSummary, 0, len(roles))
	for i := range roles {
		summaries = append(summaries, toRoleSummary(&roles[i]))
	}
	c.JSON(http.StatusOK, entity.RoleListResponse{Roles: summaries, Meta: meta})
}

// GetRole returns a single role.
func (h *HTTPHandler) GetRole(c *gin.Context) {
	if h.requireUserType(c, entity.UserTypeSuperAdmin) == nil {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.repo.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoleSummary(role))
}

// CreateRole creates a role. Permissions outside the known set are
// rejected.
func (h *HTTPHandler) CreateRole(c *gin.Context) {
	if h.requireUserType(c, entity.UserTypeSuperAdmin) == nil {
		return
	}

	var req entity.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if !validPermissions(req.Permissions) {
		BadRequest(c, "unknown permission")
		return
	}

	role := &entity.DbRole{
		Name:        req.Name,
		Permissions: entity.StringArray(req.Permissions),
	}
	if err := h.repo.CreateRole(c.Request.Context(), role); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRoleSummary(role))
}

// UpdateRole patches role name and permission set.
func (h *HTTPHandler) UpdateRole(c *gin.Context) {
	if h.requireUserType(c, entity.UserTypeSuperAdmin) == nil {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()

	updates := entity.RoleUpdates{Name: req.Name}
	if req.Permissions != nil {
		if !validPermissions(*req.Permissions) {
			BadRequest(c, "unknown permission")
			return
		}
		perms := entity.StringArray(*req.Permissions)
		updates.Permissions = &perms
	}
	if err := h.repo.UpdateRole(ctx, id, updates); err != nil {
		HandleError(c, err)
		return
	}

	role, err := h.repo.GetRoleByID(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoleSummary(role))
}

// DeleteRole removes a role; assignments to users are detached.
func (h *HTTPHandler) DeleteRole(c *gin.Context) {
	if h.requireUserType(c, entity.UserTypeSuperAdmin) == nil {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteRole(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Detail: "Role deleted"})
}

func validPermissions(perms []string) bool {
	for _, p := range perms {
		if !entity.IsKnownPermission(p) {
			return false
		}
	}
	return true
}
