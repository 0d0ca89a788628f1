package middleware

import (
	"net/http" // HTTP status codes
	"net/url"  // Query escaping for the next parameter
	"strings"  // String manipulation

	"contactbook/internal/auth"    // Bearer token parsing
	"contactbook/internal/session" // Session store

	"github.com/gin-gonic/gin" // Gin web framework
)

// ContextUserKey is the gin context key holding the authenticated user ID.
const ContextUserKey = "userID"

// SessionAuth protects browser routes. A missing or invalid session cookie
// redirects to the login page, with the original path carried in ?next= so
// login can send the user back.
func SessionAuth(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName) // Read the session cookie
		if err == nil && token != "" {
			userID, ok, serr := sessions.UserID(c.Request.Context(), token)
			if serr == nil && ok {
				c.Set(ContextUserKey, userID) // Attach user to the request
				c.Next()
				return
			}
		}
		// Anonymous: send to the login page
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// APIAuth protects API routes. It accepts the browser session cookie or an
// Authorization: Bearer token, and answers a machine-readable 401 instead of
// the browser redirect when neither is valid.
func APIAuth(sessions session.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Session cookie first: the bundled pages call the API with it
		if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
			userID, ok, serr := sessions.UserID(c.Request.Context(), token)
			if serr == nil && ok {
				c.Set(ContextUserKey, userID)
				c.Next()
				return
			}
		}
		// Then a bearer token minted by POST /api/token
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := auth.ParseToken(tokenStr, jwtSecret); err == nil {
				c.Set(ContextUserKey, claims.UserID)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
}
