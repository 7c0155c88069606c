package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"blogkit/internal/entity"

	"gorm.io/gorm"
)

type fakeUserSource struct {
	users   map[uint]*entity.DbUser
	byEmail map[string]*entity.DbUser
	idCalls int
	err     error
}

func (f *fakeUserSource) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	f.idCalls++
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserSource) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager("resolver-test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	return mgr
}

func TestResolverAnonymousWithoutToken(t *testing.T) {
	source := &fakeUserSource{}
	resolver := NewResolver("", source, newTestManager(t))

	user, err := resolver.GetUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatal("expected anonymous resolution")
	}
	if source.idCalls != 0 {
		t.Fatalf("expected no storage lookups, got %d", source.idCalls)
	}
}

func TestResolverAnonymousWithInvalidToken(t *testing.T) {
	source := &fakeUserSource{}
	resolver := NewResolver("not-a-jwt", source, newTestManager(t))

	user, err := resolver.GetUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatal("expected anonymous resolution for invalid token")
	}
}

func TestResolverMemoizesLookup(t *testing.T) {
	mgr := newTestManager(t)
	stored := &entity.DbUser{ID: 9, Username: "gopher", Email: "gopher@example.com"}
	source := &fakeUserSource{users: map[uint]*entity.DbUser{9: stored}}

	token, _, err := mgr.Issue(stored)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}
	resolver := NewResolver(token, source, mgr)

	for i := 0; i < 3; i++ {
		user, err := resolver.GetUser(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user == nil || user.ID != 9 {
			t.Fatalf("expected user 9, got %+v", user)
		}
	}
	if source.idCalls != 1 {
		t.Fatalf("expected exactly one storage lookup, got %d", source.idCalls)
	}
}

func TestResolverAnonymousForDeletedUser(t *testing.T) {
	mgr := newTestManager(t)
	token, _, err := mgr.Issue(&entity.DbUser{ID: 5, Username: "ghost"})
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}
	source := &fakeUserSource{users: map[uint]*entity.DbUser{}}
	resolver := NewResolver(token, source, mgr)

	user, err := resolver.GetUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatal("expected anonymous resolution for deleted user")
	}
}

func TestResolverRetriesAfterStorageError(t *testing.T) {
	mgr := newTestManager(t)
	stored := &entity.DbUser{ID: 3, Username: "gopher"}
	source := &fakeUserSource{
		users: map[uint]*entity.DbUser{3: stored},
		err:   errors.New("connection lost"),
	}
	token, _, err := mgr.Issue(stored)
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}
	resolver := NewResolver(token, source, mgr)

	if _, err := resolver.GetUser(context.Background()); err == nil {
		t.Fatal("expected storage error to surface")
	}

	source.err = nil
	user, err := resolver.GetUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if user == nil || user.ID != 3 {
		t.Fatalf("expected user 3 after retry, got %+v", user)
	}
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	resolver := NewResolver("", &fakeUserSource{}, newTestManager(t))

	if _, err := resolver.RequireUser(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginLifecycle(t *testing.T) {
	mgr := newTestManager(t)
	hash, err := HashSecret("correct-horse")
	if err != nil {
		t.Fatalf("unexpected error hashing: %v", err)
	}
	stored := &entity.DbUser{
		ID:            11,
		Username:      "gopher",
		Email:         "gopher@example.com",
		PasswordHash:  hash,
		IsActive:      true,
		EmailVerified: true,
	}
	source := &fakeUserSource{
		users:   map[uint]*entity.DbUser{11: stored},
		byEmail: map[string]*entity.DbUser{"gopher@example.com": stored},
	}
	resolver := NewResolver("", source, mgr)

	token, user, err := resolver.Login(context.Background(), "Gopher@Example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if user.ID != 11 {
		t.Fatalf("expected user 11, got %d", user.ID)
	}

	claims, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("expected issued token to verify: %v", err)
	}
	if claims.UserID != 11 || claims.Username != "gopher" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, _ := HashSecret("correct-horse")
	stored := &entity.DbUser{
		ID: 11, Email: "gopher@example.com", PasswordHash: hash,
		IsActive: true, EmailVerified: true,
	}
	source := &fakeUserSource{byEmail: map[string]*entity.DbUser{"gopher@example.com": stored}}
	resolver := NewResolver("", source, newTestManager(t))

	_, _, err := resolver.Login(context.Background(), "gopher@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	source := &fakeUserSource{byEmail: map[string]*entity.DbUser{}}
	resolver := NewResolver("", source, newTestManager(t))

	_, _, err := resolver.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnverifiedOrInactive(t *testing.T) {
	hash, _ := HashSecret("correct-horse")
	cases := []struct {
		name     string
		active   bool
		verified bool
	}{
		{"inactive", false, true},
		{"unverified", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stored := &entity.DbUser{
				ID: 11, Email: "gopher@example.com", PasswordHash: hash,
				IsActive: tc.active, EmailVerified: tc.verified,
			}
			source := &fakeUserSource{byEmail: map[string]*entity.DbUser{"gopher@example.com": stored}}
			resolver := NewResolver("", source, newTestManager(t))

			_, _, err := resolver.Login(context.Background(), "gopher@example.com", "correct-horse")
			if !errors.Is(err, ErrAccountNotReady) {
				t.Fatalf("expected ErrAccountNotReady, got %v", err)
			}
		})
	}
}
