package api

import (
	"errors"
	"net/http"
	"strings"

	"blogkit/internal/auth"
	"blogkit/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Login authenticates email/password and returns a bearer token. The
// token is also installed as a session cookie for the admin pages.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	resolver := RequestResolver(c)
	token, user, err := resolver.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.setAuthCookie(c, token, h.cfg.JWTExpirationMinutes*60)
	c.JSON(http.StatusOK, entity.AuthTokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toAccountDetail(user),
	})
}

// Logout clears the session cookie. Bearer tokens stay valid until
// expiry; the server keeps no session state.
func (h *HTTPHandler) Logout(c *gin.Context) {
	h.clearAuthCookie(c)
	c.JSON(http.StatusOK, entity.SuccessResponse{Detail: "Logged out"})
}

// Register creates a user account and mails a verification code.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
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

	user := &entity.DbUser{
		Name:          req.Name,
		Username:      strings.TrimSpace(req.Username),
		Email:         email,
		PasswordHash:  hash,
		IsActive:      true,
		EmailVerified: false,
		UserType:      entity.UserTypeUser,
		Profile:       &entity.DbProfile{},
	}
	if err := h.repo.CreateUser(ctx, user); err != nil {
		HandleError(c, err)
		return
	}

	if err := h.sendVerificationCode(c, user.Email, user.Name); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Detail: "Registered Successfully, Please verify your email"})
}

// VerifyEmail consumes a verification code and marks the account verified.
func (h *HTTPHandler) VerifyEmail(c *gin.Context) {
	var req entity.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.otpService.VerifyAndConsume(ctx, email, entity.OtpPurposeVerifyEmail, req.Otp); err != nil {
		HandleError(c, err)
		return
	}

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, "Invalid user email")
			return
		}
		HandleError(c, err)
		return
	}

	verified := true
	if err := h.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{EmailVerified: &verified}); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Detail: "Email Verified Successfully"})
}

// ResendVerification mails a fresh verification code to an existing
// account.
func (h *HTTPHandler) ResendVerification(c *gin.Context) {
	var req entity.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, "Invalid user email")
			return
		}
		HandleError(c, err)
		return
	}

	if err := h.sendVerificationCode(c, user.Email, user.Name); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Detail: "Verification Email Sent. Please check your inbox"})
}

// ForgotPassword mails a reset code. The response never discloses
// whether the account exists.
func (h *HTTPHandler) ForgotPassword(c *gin.Context) {
	var req entity.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	detail := "If an account with that email exists, a password reset otp has been sent"

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, entity.SuccessResponse{Detail: detail})
			return
		}
		HandleError(c, err)
		return
	}

	code, record, err := h.otpService.Issue(ctx, user.Email, entity.OtpPurposeResetPassword, h.resetPasswordTTL())
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.mailer.SendPasswordReset(ctx, user.Email, user.Name, code, record.ExpiresAt); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("failed to send password reset mail")
		InternalError(c, "Failed to send email")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Detail: detail})
}

// ResetPassword consumes a reset code and replaces the account password.
func (h *HTTPHandler) ResetPassword(c *gin.Context) {
	var req entity.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.otpService.VerifyAndConsume(ctx, email, entity.OtpPurposeResetPassword, req.Otp); err != nil {
		HandleError(c, err)
		return
	}

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, "Invalid user email")
			return
		}
		HandleError(c, err)
		return
	}

	hash, err := auth.HashSecret(req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{PasswordHash: &hash}); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Detail: "Password Changed Successfully"})
}

// sendVerificationCode issues a verify-email code and mails it.
func (h *HTTPHandler) sendVerificationCode(c *gin.Context, email, name string) error {
	ctx := c.Request.Context()
	code, record, err := h.otpService.Issue(ctx, email, entity.OtpPurposeVerifyEmail, h.verifyEmailTTL())
	if err != nil {
		return err
	}
	if err := h.mailer.SendVerificationCode(ctx, email, name, code, record.ExpiresAt); err != nil {
		logrus.WithError(err).WithField("email", email).Error("failed to send verification mail")
		return err
	}
	return nil
}
