package api

import (
	"net/http"
	"strings"

	"blogkit/internal/auth"
	"blogkit/internal/entity"

	"github.com/gin-gonic/gin"
)

const (
	resolverContextKey = "auth-resolver"
	// authCookieName is the fallback credential for browser sessions on
	// the admin pages. The Authorization header always wins.
	authCookieName = "auth_token"
)

// extractToken pulls the bearer token from the Authorization header,
// falling back to the session cookie. Returns "" for anonymous requests.
func extractToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// ResolverMiddleware attaches a request-scoped user resolver. It never
// rejects: endpoints decide through the policy helpers whether an
// anonymous caller is acceptable.
func (h *HTTPHandler) ResolverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		resolver := auth.NewResolver(extractToken(c), h.repo, h.authManager)
		c.Set(resolverContextKey, resolver)
		c.Next()
	}
}

// RequestResolver returns the resolver installed by ResolverMiddleware.
func RequestResolver(c *gin.Context) *auth.Resolver {
	value, exists := c.Get(resolverContextKey)
	if !exists {
		return nil
	}
	resolver, ok := value.(*auth.Resolver)
	if !ok {
		return nil
	}
	return resolver
}

// requireUser resolves the calling user or writes the error response.
// Returns nil when the response has already been written.
func (h *HTTPHandler) requireUser(c *gin.Context) *entity.DbUser {
	resolver := RequestResolver(c)
	if resolver == nil {
		Unauthorized(c, "Not authenticated")
		return nil
	}
	user, err := auth.RequireUser(c.Request.Context(), resolver)
	if err != nil {
		HandleError(c, err)
		return nil
	}
	return user
}

// requireUserType resolves the caller and checks their tier.
func (h *HTTPHandler) requireUserType(c *gin.Context, allowed ...string) *entity.DbUser {
	resolver := RequestResolver(c)
	if resolver == nil {
		Unauthorized(c, "Not authenticated")
		return nil
	}
	user, err := auth.RequireUserType(c.Request.Context(), resolver, allowed...)
	if err != nil {
		HandleError(c, err)
		return nil
	}
	return user
}

// requirePermission resolves the caller and checks a role permission.
func (h *HTTPHandler) requirePermission(c *gin.Context, perm string) *entity.DbUser {
	resolver := RequestResolver(c)
	if resolver == nil {
		Unauthorized(c, "Not authenticated")
		return nil
	}
	user, err := auth.RequirePermission(c.Request.Context(), resolver, perm)
	if err != nil {
		HandleError(c, err)
		return nil
	}
	return user
}

// setAuthCookie installs the session cookie used by the admin pages.
func (h *HTTPHandler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	secure := strings.HasPrefix(h.cfg.AppURL, "https://")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, maxAge, "/", "", secure, true)
}

// clearAuthCookie removes the session cookie.
func (h *HTTPHandler) clearAuthCookie(c *gin.Context) {
	secure := strings.HasPrefix(h.cfg.AppURL, "https://")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", "", secure, true)
}
