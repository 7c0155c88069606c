package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogkit/internal/auth"
	"blogkit/internal/otp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newTestContext(t *testing.T, accept string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	if accept != "" {
		c.Request.Header.Set("Accept", accept)
	}
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var body APIError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal error body: %v", err)
	}
	return body
}

func TestErrorResponseWritesDetailBody(t *testing.T) {
	tests := []struct {
		name   string
		write  func(c *gin.Context)
		status int
		detail string
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, "bad input") }, http.StatusBadRequest, "bad input"},
		{"Unauthorized", func(c *gin.Context) { Unauthorized(c, "Not authenticated") }, http.StatusUnauthorized, "Not authenticated"},
		{"Forbidden", func(c *gin.Context) { Forbidden(c, "Access denied") }, http.StatusForbidden, "Access denied"},
		{"NotFound", func(c *gin.Context) { NotFound(c, "Resource not found") }, http.StatusNotFound, "Resource not found"},
		{"Conflict", func(c *gin.Context) { Conflict(c, "Slug already taken") }, http.StatusConflict, "Slug already taken"},
		{"InternalError", func(c *gin.Context) { InternalError(c, "Internal server error") }, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, "")
			tt.write(c)

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if body := decodeError(t, w); body.Detail != tt.detail {
				t.Errorf("expected detail %q, got %q", tt.detail, body.Detail)
			}
		})
	}
}

func TestInvalidPayload(t *testing.T) {
	c, w := newTestContext(t, "")
	InvalidPayload(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if body := decodeError(t, w); body.Detail == "" {
		t.Error("expected a detail message")
	}
}

func TestUnauthorizedRedirectsHTMLClients(t *testing.T) {
	c, w := newTestContext(t, "text/html,application/xhtml+xml")
	Unauthorized(c, "Not authenticated")

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect status %d, got %d", http.StatusFound, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != adminLoginPath {
		t.Errorf("expected redirect to %s, got %s", adminLoginPath, loc)
	}
}

func TestUnauthorizedStaysJSONForAPIClients(t *testing.T) {
	// An Accept header naming both types means a client that can consume
	// the JSON body, so no redirect happens.
	for _, accept := range []string{"", "application/json", "text/html, application/json"} {
		c, w := newTestContext(t, accept)
		Unauthorized(c, "Not authenticated")

		if w.Code != http.StatusUnauthorized {
			t.Errorf("accept %q: expected status %d, got %d", accept, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestForbiddenNeverRedirects(t *testing.T) {
	c, w := newTestContext(t, "text/html")
	Forbidden(c, "Access denied")

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestHandleErrorMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid Credentials"},
		{"account not ready", auth.ErrAccountNotReady, http.StatusUnauthorized, "Account inactive or email is not verified"},
		{"unauthorized", auth.ErrUnauthorized, http.StatusUnauthorized, "Not authenticated"},
		{"forbidden", auth.ErrForbidden, http.StatusForbidden, "Access denied"},
		{"otp not found", otp.ErrOtpNotFound, http.StatusBadRequest, "OTP not found or already used"},
		{"otp expired", otp.ErrOtpExpired, http.StatusBadRequest, "OTP has expired"},
		{"otp invalid", otp.ErrOtpInvalid, http.StatusBadRequest, "Invalid OTP"},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "Resource not found"},
		{"duplicated key", gorm.ErrDuplicatedKey, http.StatusBadRequest, "Resource already exists"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, "")
			HandleError(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			if body := decodeError(t, w); body.Detail != tt.detail {
				t.Errorf("expected detail %q, got %q", tt.detail, body.Detail)
			}
		})
	}
}

func TestHandleErrorWrapsWithErrorsIs(t *testing.T) {
	c, w := newTestContext(t, "")
	HandleError(c, errors.Join(errors.New("lookup user"), gorm.ErrRecordNotFound))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestHandleErrorDoesNotLeakInternalMessages(t *testing.T) {
	c, w := newTestContext(t, "")
	HandleError(c, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	if body := decodeError(t, w); body.Detail != "Internal server error" {
		t.Fatalf("expected generic detail, got %q", body.Detail)
	}
}

func TestHandleErrorIgnoresNil(t *testing.T) {
	c, w := newTestContext(t, "")
	HandleError(c, nil)

	if c.IsAborted() {
		t.Fatal("nil error must not abort the request")
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}
}
