package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/services"
)

const (
	// SessionCookieName is where the browser keeps the session token.
	SessionCookieName = "access_token"

	// LoginPath is where browsers are sent when their session cannot be
	// resolved. The page itself is served by the frontend.
	LoginPath = "/login"

	currentUserKey = "current_user"
)

// AuthMiddleware resolves the session credential on every request. The
// credential is read from the session cookie first, then from the
// Authorization header, so browser sessions and API clients share one code
// path.
type AuthMiddleware struct {
	auth services.AuthService
}

func NewAuthMiddleware(auth services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) credential(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	return c.GetHeader("Authorization")
}

// RequireAuth rejects the request unless the credential resolves to an
// active user. A stale session cookie is cleared so the browser stops
// sending it. Browser navigations degrade to a login redirect; API clients
// get a structured 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.auth.Resolve(c.Request.Context(), m.credential(c))
		if err != nil {
			ClearSessionCookie(c)
			if isBrowserNavigation(c) {
				c.Redirect(http.StatusSeeOther, LoginPath)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: authFailureMessage(err),
			})
			return
		}
		c.Set(currentUserKey, user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// isBrowserNavigation distinguishes a browser following a link (which can
// usefully be sent to the login page) from a fetch/XHR or API client (which
// needs the failure as data).
func isBrowserNavigation(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// OptionalAuth resolves the user when possible and stays silent when not.
// Handlers behind it must tolerate a missing user.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := m.auth.ResolveOptional(c.Request.Context(), m.credential(c)); user != nil {
			c.Set(currentUserKey, user)
			c.Set("user_id", user.ID)
		}
		c.Next()
	}
}

// RequireRoleMiddleware gates a route group to the given roles. It assumes
// RequireAuth already ran.
func (m *AuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
	}
}

// CurrentUser returns the resolved user for this request, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// SetSessionCookie installs the token as an HTTP-only session cookie.
func SetSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// authFailureMessage keeps the 401 body stable per failure class without
// leaking token internals.
func authFailureMessage(err error) string {
	switch err {
	case services.ErrCredentialMissing:
		return "Not authenticated"
	case services.ErrCredentialExpired:
		return "Session expired"
	case services.ErrSessionUserGone:
		return "Account no longer exists"
	case services.ErrUserInactive:
		return "Account is deactivated"
	default:
		return "Invalid session"
	}
}
