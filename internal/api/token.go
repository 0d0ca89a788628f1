package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"contactbook/internal/auth"  // Bearer token minting
	"contactbook/internal/store" // Data stores

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// TokenRequest carries API-client credentials
type TokenRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// TokenResponse carries the minted bearer token
type TokenResponse struct {
	Token string `json:"token"` // Bearer token
}

// TokenHandler exchanges credentials for a bearer token, the auth path for
// API clients that have no cookie jar. Unknown usernames and wrong passwords
// answer the same 401.
func TokenHandler(users Users, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Verify(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if !errors.Is(err, store.ErrInvalidCredentials) {
				logrus.WithField("error", err.Error()).Error("Token verification failed")
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := auth.GenerateToken(user.ID, jwtSecret)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to generate token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}
