package api

import (
	"net/http"
	"strings"

	"blogkit/internal/auth"
	"blogkit/internal/entity"

	"github.com/gin-gonic/gin"
)

// Me returns the calling account with profile and roles.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := h.requireUser(c)
	if user == nil {
		return
	}
	c.JSON(http.StatusOK, toAccountDetail(user))
}

// UpdateAccount updates name, about, and optionally the avatar. The
// payload is multipart so the avatar can ride along as a file.
func (h *HTTPHandler) UpdateAccount(c *gin.Context) {
	user := h.requireUser(c)
	if user == nil {
		return
	}
	ctx := c.Request.Context()

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		BadRequest(c, "name is required")
		return
	}

	if err := h.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Name: &name}); err != nil {
		HandleError(c, err)
		return
	}

	var profileUpdates entity.ProfileUpdates
	if about, ok := c.GetPostForm("about"); ok {
		profileUpdates.About = &about
	}
	if header, err := c.FormFile("avatar"); err == nil && header != nil {
		key, err := h.saveImageUpload(c, header, "avatars")
		if err != nil {
			return
		}
		url := h.publicURL(key)
		profileUpdates.Avatar = &url
	}
	if !profileUpdates.IsEmpty() {
		if err := h.repo.UpdateProfile(ctx, user.ID, profileUpdates); err != nil {
			HandleError(c, err)
			return
		}
	}

	fresh, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountDetail(fresh))
}

// ChangeEmail re-authenticates with the account password, swaps the
// email, drops the verified flag, and mails a code to the new address.
func (h *HTTPHandler) ChangeEmail(c *gin.Context) {
	var req entity.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()

	resolver := RequestResolver(c)
	user, err := auth.RequirePassword(ctx, resolver, req.AccountPassword)
	if err != nil {
		HandleError(c, err)
		return
	}

	newEmail := strings.ToLower(strings.TrimSpace(req.NewEmail))
	if newEmail == strings.ToLower(user.Email) {
		BadRequest(c, "Email not changed! Please provide new email")
		return
	}

	unverified := false
	updates := entity.UserUpdates{Email: &newEmail, EmailVerified: &unverified}
	if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		HandleError(c, err)
		return
	}

	if err := h.sendVerificationCode(c, newEmail, user.Name); err != nil {
		HandleError(c, err)
		return
	}

	fresh, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountDetail(fresh))
}

// ChangePassword re-authenticates with the account password and
// replaces it.
func (h *HTTPHandler) ChangePassword(c *gin.Context) {
	var req entity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()

	resolver := RequestResolver(c)
	user, err := auth.RequirePassword(ctx, resolver, req.AccountPassword)
	if err != nil {
		HandleError(c, err)
		return
	}

	hash, err := auth.HashSecret(req.NewPassword)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{PasswordHash: &hash}); err != nil {
		HandleError(c, err)
		return
	}

	fresh, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountDetail(fresh))
}
