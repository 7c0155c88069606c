package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func contextWithRequest(t *testing.T, build func(r *http.Request)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	if build != nil {
		build(c.Request)
	}
	return c
}

func TestExtractTokenFromBearerHeader(t *testing.T) {
	c := contextWithRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer abc.def.ghi")
	})
	if got := extractToken(c); got != "abc.def.ghi" {
		t.Fatalf("expected header token, got %q", got)
	}
}

func TestExtractTokenHeaderWinsOverCookie(t *testing.T) {
	c := contextWithRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "bearer header-token")
		r.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie-token"})
	})
	if got := extractToken(c); got != "header-token" {
		t.Fatalf("expected header token to win, got %q", got)
	}
}

func TestExtractTokenFallsBackToCookie(t *testing.T) {
	c := contextWithRequest(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: authCookieName, Value: "cookie-token"})
	})
	if got := extractToken(c); got != "cookie-token" {
		t.Fatalf("expected cookie token, got %q", got)
	}
}

func TestExtractTokenAnonymous(t *testing.T) {
	cases := []struct {
		name  string
		build func(r *http.Request)
	}{
		{"no credentials", nil},
		{"malformed header", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		}},
		{"bearer without token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := contextWithRequest(t, tc.build)
			if got := extractToken(c); got != "" {
				t.Fatalf("expected empty token, got %q", got)
			}
		})
	}
}

func TestRequestResolverWithoutMiddleware(t *testing.T) {
	c := contextWithRequest(t, nil)
	if resolver := RequestResolver(c); resolver != nil {
		t.Fatal("expected nil resolver before middleware runs")
	}
}
