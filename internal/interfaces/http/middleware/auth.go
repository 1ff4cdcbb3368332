package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"hostel-desk.backend/internal/domain/entities"
	"hostel-desk.backend/internal/usecases"
	"hostel-desk.backend/pkg/redis"
	"hostel-desk.backend/pkg/token"
)

const (
	// SessionCookieName is the cookie carrying the server-side session ID
	SessionCookieName = "session_id"
	// SessionIDHeader lets non-browser clients pass the session ID directly
	SessionIDHeader = "X-Session-Id"
	// AuthorizationHeader is the header key for bearer tokens
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "

	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey = "principal"
	// SessionIDKey is the context key for the session ID
	SessionIDKey = "sessionId"
	// CSRFTokenKey is the context key for the session's CSRF token
	CSRFTokenKey = "csrfToken"
)

// PrincipalResolver resolves a session ID to an authenticated principal
type PrincipalResolver interface {
	CurrentPrincipal(ctx context.Context, sessionID string) (usecases.Principal, *redis.SessionData, error)
}

// SessionAuth authenticates the request. A session ID (cookie or header) is
// tried first; a bearer access token is accepted as a fallback for API
// clients. Bearer requests carry no session, so CSRF checks do not apply to
// them.
func SessionAuth(resolver PrincipalResolver, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := sessionIDFromRequest(c)
		if sessionID != "" {
			principal, data, err := resolver.CurrentPrincipal(c.Request.Context(), sessionID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Session expired, please log in again",
				})
				return
			}
			c.Set(PrincipalKey, principal)
			c.Set(SessionIDKey, sessionID)
			c.Set(CSRFTokenKey, data.CSRFToken)
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthorizationHeader)
		if strings.HasPrefix(authHeader, BearerPrefix) {
			claims, err := tokens.Validate(strings.TrimPrefix(authHeader, BearerPrefix))
			if err != nil {
				msg := "Invalid token"
				if err == token.ErrExpiredToken {
					msg = "Token has expired"
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
				return
			}
			c.Set(PrincipalKey, usecases.Principal{
				ID:   claims.UserID,
				Role: entities.UserRole(claims.Role),
			})
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
	}
}

func sessionIDFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	return c.GetHeader(SessionIDHeader)
}

// GetPrincipal gets the authenticated principal from context
func GetPrincipal(c *gin.Context) (usecases.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return usecases.Principal{}, false
	}
	p, ok := v.(usecases.Principal)
	return p, ok
}

// GetSessionID gets the session ID from context. Empty for bearer requests.
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// GetCSRFToken gets the session's CSRF token from context
func GetCSRFToken(c *gin.Context) string {
	return c.GetString(CSRFTokenKey)
}

// LandingPath is where a signed-in user of the given role belongs
func LandingPath(role entities.UserRole) string {
	if role == entities.UserRoleAdmin {
		return "/admin/dashboard"
	}
	return "/student/dashboard"
}

// RequireRole gates a route group to one role. A signed-in user of the wrong
// role is sent back to their own landing page rather than shown an error.
func RequireRole(role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		if principal.Role != role {
			c.Redirect(http.StatusSeeOther, LandingPath(principal.Role))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStudent gates a route group to students
func RequireStudent() gin.HandlerFunc {
	return RequireRole(entities.UserRoleStudent)
}

// RequireAdmin gates a route group to admins
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
