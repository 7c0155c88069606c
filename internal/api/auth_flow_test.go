package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogkit/internal/config"
	"blogkit/internal/entity"
	"blogkit/internal/mail"
	"blogkit/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubRepo implements just the slice of the repository the auth flow
// touches. Anything else panics through the embedded nil interface.
type stubRepo struct {
	model.Repository
	users      map[uint]*entity.DbUser
	byEmail    map[string]*entity.DbUser
	byUsername map[string]*entity.DbUser
	otps       []*entity.DbOtp
	nextUserID uint
	nextOtpID  uint
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:      make(map[uint]*entity.DbUser),
		byEmail:    make(map[string]*entity.DbUser),
		byUsername: make(map[string]*entity.DbUser),
	}
}

func (s *stubRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = user
	s.byEmail[strings.ToLower(user.Email)] = user
	s.byUsername[strings.ToLower(user.Username)] = user
	return nil
}

func (s *stubRepo) UpdateUser(_ context.Context, id uint, updates entity.UserUpdates) error {
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.Email != nil {
		delete(s.byEmail, strings.ToLower(user.Email))
		user.Email = *updates.Email
		s.byEmail[strings.ToLower(user.Email)] = user
	}
	if updates.PasswordHash != nil {
		user.PasswordHash = *updates.PasswordHash
	}
	if updates.IsActive != nil {
		user.IsActive = *updates.IsActive
	}
	if updates.EmailVerified != nil {
		user.EmailVerified = *updates.EmailVerified
	}
	return nil
}

func (s *stubRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	user, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubRepo) GetUserByUsername(_ context.Context, username string) (*entity.DbUser, error) {
	user, ok := s.byUsername[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubRepo) CreateOtp(_ context.Context, otp *entity.DbOtp) error {
	s.nextOtpID++
	otp.ID = s.nextOtpID
	otp.CreatedAt = time.Now().UTC()
	s.otps = append(s.otps, otp)
	return nil
}

func (s *stubRepo) LatestUnusedOtp(_ context.Context, email, purpose string) (*entity.DbOtp, error) {
	var latest *entity.DbOtp
	for _, row := range s.otps {
		if row.Email != email || row.Purpose != purpose || row.IsUsed {
			continue
		}
		if latest == nil || row.ID > latest.ID {
			latest = row
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (s *stubRepo) ConsumeOtp(_ context.Context, id uint) (bool, error) {
	for _, row := range s.otps {
		if row.ID == id && !row.IsUsed {
			row.IsUsed = true
			return true, nil
		}
	}
	return false, nil
}

// recordingMailer captures delivered codes instead of sending mail.
type recordingMailer struct {
	verifyCodes []string
	resetCodes  []string
	recipients  []string
}

func (m *recordingMailer) SendVerificationCode(_ context.Context, toEmail, _, code string, _ time.Time) error {
	m.verifyCodes = append(m.verifyCodes, code)
	m.recipients = append(m.recipients, toEmail)
	return nil
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, toEmail, _, code string, _ time.Time) error {
	m.resetCodes = append(m.resetCodes, code)
	m.recipients = append(m.recipients, toEmail)
	return nil
}

var _ mail.Mailer = (*recordingMailer)(nil)

func newAuthTestServer(t *testing.T) (*gin.Engine, *stubRepo, *recordingMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		AppName:                    "blogkit",
		JWTSecret:                  "flow-test-secret",
		JWTIssuer:                  "blogkit",
		JWTExpirationMinutes:       60,
		OtpVerifyEmailTTLMinutes:   60,
		OtpResetPasswordTTLMinutes: 10,
	}
	repo := newStubRepo()
	mailer := &recordingMailer{}

	handler, err := NewHTTPHandler(cfg, repo, nil, mailer)
	if err != nil {
		t.Fatalf("unexpected error building handler: %v", err)
	}

	r := gin.New()
	r.Use(handler.ResolverMiddleware())
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/verify-email", handler.VerifyEmail)
	r.POST("/api/auth/login", handler.Login)
	return r, repo, mailer
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	r, repo, mailer := newAuthTestServer(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"name":                  "Gopher",
		"username":              "gopher",
		"email":                 "Gopher@Example.com",
		"password":              "longpass1",
		"password_confirmation": "longpass1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(mailer.verifyCodes) != 1 {
		t.Fatalf("expected one verification mail, got %d", len(mailer.verifyCodes))
	}
	if mailer.recipients[0] != "gopher@example.com" {
		t.Fatalf("expected mail to normalised address, got %q", mailer.recipients[0])
	}

	user, err := repo.GetUserByEmail(context.Background(), "gopher@example.com")
	if err != nil {
		t.Fatalf("expected registered user: %v", err)
	}
	if user.EmailVerified {
		t.Fatal("new account must start unverified")
	}
	if user.UserType != entity.UserTypeUser {
		t.Fatalf("expected default tier, got %q", user.UserType)
	}

	// Login before verification is rejected.
	w = postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "gopher@example.com",
		"password": "longpass1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("pre-verify login: expected 401, got %d", w.Code)
	}

	code := mailer.verifyCodes[0]
	w = postJSON(t, r, "/api/auth/verify-email", gin.H{
		"email": "gopher@example.com",
		"otp":   code,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("verify-email: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !user.EmailVerified {
		t.Fatal("expected account to be verified")
	}

	// Replaying the consumed code fails.
	w = postJSON(t, r, "/api/auth/verify-email", gin.H{
		"email": "gopher@example.com",
		"otp":   code,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("replayed code: expected 400, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "gopher@example.com",
		"password": "longpass1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp entity.AuthTokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal login response: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token response: %+v", resp)
	}
	if resp.User.Email != "gopher@example.com" {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r, _, _ := newAuthTestServer(t)

	payload := gin.H{
		"name":                  "Gopher",
		"username":              "gopher",
		"email":                 "gopher@example.com",
		"password":              "longpass1",
		"password_confirmation": "longpass1",
	}
	if w := postJSON(t, r, "/api/auth/register", payload); w.Code != http.StatusOK {
		t.Fatalf("first register: expected 200, got %d", w.Code)
	}

	w := postJSON(t, r, "/api/auth/register", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Detail != "Email is already taken" {
		t.Fatalf("unexpected detail %q", body.Detail)
	}

	payload["email"] = "other@example.com"
	w = postJSON(t, r, "/api/auth/register", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate username: expected 400, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Detail != "Username is already taken" {
		t.Fatalf("unexpected detail %q", body.Detail)
	}
}
