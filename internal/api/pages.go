package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"contactbook/internal/middleware" // Context keys
	"contactbook/internal/session"    // Session store
	"contactbook/internal/store"      // Data stores

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Flash message IDs
	"github.com/sirupsen/logrus" // Logging library
)

// setFlash stores a one-shot message and points a short-lived cookie at it,
// so the notice survives the redirect that follows.
func setFlash(c *gin.Context, sessions session.Store, secure bool, f session.Flash) {
	id := uuid.NewString()
	if err := sessions.SetFlash(c.Request.Context(), id, f); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to store flash message")
		return
	}
	c.SetCookie(session.FlashCookieName, id, int(session.FlashTTL.Seconds()), "/", "", secure, true)
}

// popFlash consumes the pending flash message, if any, and clears its cookie.
func popFlash(c *gin.Context, sessions session.Store) *session.Flash {
	id, err := c.Cookie(session.FlashCookieName)
	if err != nil || id == "" {
		return nil
	}
	c.SetCookie(session.FlashCookieName, "", -1, "/", "", false, true)
	f, err := sessions.PopFlash(c.Request.Context(), id)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to read flash message")
		return nil
	}
	return f
}

// isAuthenticated reports whether the request carries a live session.
func isAuthenticated(c *gin.Context, sessions session.Store) bool {
	token, err := c.Cookie(session.CookieName)
	if err != nil || token == "" {
		return false
	}
	_, ok, err := sessions.UserID(c.Request.Context(), token)
	return err == nil && ok
}

// safeNext keeps the post-login redirect on this site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

// ShowLoginHandler renders the login page. Authenticated users go straight
// to the index.
func ShowLoginHandler(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAuthenticated(c, sessions) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.HTML(http.StatusOK, "login.html", gin.H{"Flash": popFlash(c, sessions)})
	}
}

// LoginHandler checks the submitted credentials, opens a session on success
// and re-renders the form with a flash message on failure.
func LoginHandler(users Users, sessions session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username") // Submitted username
		password := c.PostForm("password") // Submitted password
		user, err := users.Verify(c.Request.Context(), username, password)
		if err != nil {
			if !errors.Is(err, store.ErrInvalidCredentials) {
				// Unexpected store failure, not a bad password
				logrus.WithField("error", err.Error()).Error("Login verification failed")
			}
			c.HTML(http.StatusOK, "login.html", gin.H{
				"Flash": &session.Flash{Message: "Invalid username or password. Please try again.", Level: "danger"},
			})
			return
		}
		token, err := sessions.Create(c.Request.Context(), user.ID)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to create session")
			c.HTML(http.StatusOK, "login.html", gin.H{
				"Flash": &session.Flash{Message: "Something went wrong. Please try again.", Level: "danger"},
			})
			return
		}
		c.SetCookie(session.CookieName, token, 0, "/", "", secure, true) // Session cookie
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User logged in")
		c.Redirect(http.StatusFound, safeNext(c.Query("next")))
	}
}

// ShowSignupHandler renders the signup page.
func ShowSignupHandler(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAuthenticated(c, sessions) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.HTML(http.StatusOK, "signup.html", gin.H{"Flash": popFlash(c, sessions)})
	}
}

// SignupHandler registers a new user. Empty fields and taken usernames
// re-render the form with a flash; success redirects to the login page.
func SignupHandler(users Users, sessions session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username") // Submitted username
		password := c.PostForm("password") // Submitted password
		_, err := users.Register(c.Request.Context(), username, password)
		switch {
		case errors.Is(err, store.ErrCredentialsRequired):
			c.HTML(http.StatusOK, "signup.html", gin.H{
				"Flash": &session.Flash{Message: "Username and password are required.", Level: "warning"},
			})
		case errors.Is(err, store.ErrConflict):
			c.HTML(http.StatusOK, "signup.html", gin.H{
				"Flash": &session.Flash{Message: "Username already exists. Please choose a different one.", Level: "warning"},
			})
		case err != nil:
			logrus.WithField("error", err.Error()).Error("Signup failed")
			c.HTML(http.StatusOK, "signup.html", gin.H{
				"Flash": &session.Flash{Message: "Something went wrong. Please try again.", Level: "danger"},
			})
		default:
			logrus.WithField("username", strings.ToLower(username)).Info("User registered")
			setFlash(c, sessions, secure, session.Flash{Message: "Account created successfully! Please log in.", Level: "success"})
			c.Redirect(http.StatusFound, "/login")
		}
	}
}

// LogoutHandler ends the session and returns to the login page.
func LogoutHandler(sessions session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
			if err := sessions.Destroy(c.Request.Context(), token); err != nil {
				logrus.WithField("error", err.Error()).Warn("Failed to destroy session")
			}
		}
		c.SetCookie(session.CookieName, "", -1, "/", "", secure, true) // Clear the session cookie
		setFlash(c, sessions, secure, session.Flash{Message: "You have been logged out.", Level: "success"})
		c.Redirect(http.StatusFound, "/login")
	}
}

// IndexHandler renders the contact list page for the logged-in user.
func IndexHandler(users Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(middleware.ContextUserKey).(uint) // Set by SessionAuth
		user, err := users.Get(c.Request.Context(), userID)
		if err != nil {
			// Session points at a user that no longer exists
			c.Redirect(http.StatusFound, "/login")
			return
		}
		c.HTML(http.StatusOK, "index.html", gin.H{"Username": user.Username})
	}
}
