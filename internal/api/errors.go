package api

import (
	"errors"
	"net/http"
	"strings"

	"blogkit/internal/auth"
	"blogkit/internal/otp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// APIError is the uniform error body. Every non-2xx response carries a
// single human readable detail string.
type APIError struct {
	Detail string `json:"detail"`
}

const adminLoginPath = "/admin/login"

// wantsHTML reports whether the client negotiated an HTML response.
// Browser navigation sends Accept: text/html; API clients do not.
func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

// ErrorResponse writes the uniform error body. Unauthenticated HTML
// clients are redirected to the admin login page instead.
func ErrorResponse(c *gin.Context, status int, detail string) {
	if status == http.StatusUnauthorized && wantsHTML(c) {
		c.Redirect(http.StatusFound, adminLoginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, APIError{Detail: detail})
}

func BadRequest(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusBadRequest, detail)
}

func Unauthorized(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusUnauthorized, detail)
}

func Forbidden(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusForbidden, detail)
}

func NotFound(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusNotFound, detail)
}

func Conflict(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusConflict, detail)
}

func InternalError(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusInternalServerError, detail)
}

// InvalidPayload covers binding failures on request bodies.
func InvalidPayload(c *gin.Context) {
	BadRequest(c, "invalid request payload")
}

// HandleError maps domain errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without leaking the
// underlying message.
func HandleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(c, "Invalid Credentials")
	case errors.Is(err, auth.ErrAccountNotReady):
		Unauthorized(c, "Account inactive or email is not verified")
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(c, "Not authenticated")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(c, "Access denied")
	case errors.Is(err, otp.ErrOtpNotFound):
		BadRequest(c, "OTP not found or already used")
	case errors.Is(err, otp.ErrOtpExpired):
		BadRequest(c, "OTP has expired")
	case errors.Is(err, otp.ErrOtpInvalid):
		BadRequest(c, "Invalid OTP")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "Resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		BadRequest(c, "Resource already exists")
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("unhandled api error")
		InternalError(c, "Internal server error")
	}
}
