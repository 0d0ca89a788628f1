package api

import (
	"contactbook/internal/middleware" // Auth middleware
	"contactbook/internal/session"    // Session store

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/gin-gonic/gin/binding" // Strict JSON binding
	"github.com/redis/go-redis/v9"     // Redis client
)

// Deps bundles everything the handlers need. Stores and the session store
// are constructed in main and passed in explicitly; nothing here reaches for
// package-level state.
type Deps struct {
	Users         Users         // Credential store
	Contacts      Contacts      // Contact store
	Sessions      session.Store // Session/flash store
	Redis         *redis.Client // Count cache; nil disables caching
	JWTSecret     string        // Secret for API bearer tokens
	SecureCookies bool          // Set the Secure flag on cookies
	TemplateGlob  string        // Glob for HTML templates
}

// NewRouter builds the full route table on a fresh gin engine.
func NewRouter(d Deps) *gin.Engine {
	// Reject payloads with unknown JSON keys instead of silently ignoring them
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.Default()             // Gin router instance
	r.LoadHTMLGlob(d.TemplateGlob) // Server-rendered pages
	sessionAuth := middleware.SessionAuth(d.Sessions)
	apiAuth := middleware.APIAuth(d.Sessions, d.JWTSecret)

	// Browser routes
	r.GET("/login", ShowLoginHandler(d.Sessions))                          // Login page
	r.POST("/login", LoginHandler(d.Users, d.Sessions, d.SecureCookies))   // Login form submit
	r.GET("/signup", ShowSignupHandler(d.Sessions))                        // Signup page
	r.POST("/signup", SignupHandler(d.Users, d.Sessions, d.SecureCookies)) // Signup form submit
	r.GET("/logout", sessionAuth, LogoutHandler(d.Sessions, d.SecureCookies))
	r.GET("/", sessionAuth, IndexHandler(d.Users)) // Contact list page

	// API routes (protected; missing auth answers 401, never a redirect)
	r.POST("/api/token", TokenHandler(d.Users, d.JWTSecret)) // Bearer token for API clients
	apiGroup := r.Group("/api")
	apiGroup.Use(apiAuth)
	apiGroup.GET("/contacts", ListContactsHandler(d.Contacts))               // List and search
	apiGroup.GET("/contacts/count", CountContactsHandler(d.Contacts, d.Redis))
	apiGroup.GET("/contacts/:id", GetContactHandler(d.Contacts))             // Point lookup
	apiGroup.POST("/contacts", CreateContactHandler(d.Contacts, d.Redis))    // Insert
	apiGroup.PUT("/contacts/:id", UpdateContactHandler(d.Contacts))          // Overwrite fields
	apiGroup.DELETE("/contacts/:id", DeleteContactHandler(d.Contacts, d.Redis))

	return r
}
