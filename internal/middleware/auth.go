package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"scheduling/internal/access"
	"scheduling/pkg/response"
)

const (
	accessTokenCookie = "access_token"
	principalKey      = "principal"
)

// Verifier checks a raw session token.
type Verifier interface {
	Verify(raw string) (access.Principal, error)
}

// SetTokenCookie stores the session token as an HttpOnly cookie next to the JSON response.
// Release mode needs SameSite=None and Secure for cross-origin frontends.
func SetTokenCookie(c *gin.Context, token string, ttl time.Duration, release bool) {
	sameSite := http.SameSiteLaxMode
	if release {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(accessTokenCookie, token, int(ttl.Seconds()), "/", "", release, true)
}

// ClearTokenCookie expires the session cookie.
func ClearTokenCookie(c *gin.Context, release bool) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", release, true)
}

// tokenFrom tries the cookie first, then the Authorization header.
func tokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(accessTokenCookie); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func attach(c *gin.Context, p access.Principal) {
	c.Set(principalKey, p)
	c.Set("userID", p.ID.String())
	c.Request = c.Request.WithContext(access.NewContext(c.Request.Context(), p))
}

// Authenticate rejects requests without a valid token and attaches the principal.
func Authenticate(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFrom(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized - No Token"))
			return
		}
		p, err := verifier.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized - Invalid Token"))
			return
		}
		attach(c, p)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a token is sent and lets anonymous requests
// through. A token that does not verify is still rejected.
func OptionalAuth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFrom(c)
		if raw == "" {
			c.Next()
			return
		}
		p, err := verifier.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized - Invalid Token"))
			return
		}
		attach(c, p)
		c.Next()
	}
}

// RequireRole must run after Authenticate. The caller needs at least one of roles.
func RequireRole(roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c)
		if p != nil {
			for _, r := range roles {
				if p.Roles.Has(r) {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Forbidden - Insufficient permissions"))
	}
}

// Principal returns the authenticated caller, nil for anonymous requests.
func Principal(c *gin.Context) *access.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, ok := v.(access.Principal)
	if !ok {
		return nil
	}
	return &p
}
