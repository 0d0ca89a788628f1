package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTL

	"contactbook/internal/domain"     // Domain models
	"contactbook/internal/middleware" // Context keys
	"contactbook/internal/store"      // Data stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ContactRequest is the payload for creating or updating a contact. Unknown
// keys are rejected by the strict JSON binding configured on the router.
// Phone and email are pointers so an update can tell an omitted field (keep
// the stored value) from an explicit empty string (clear it).
type ContactRequest struct {
	Name  string  `json:"name" binding:"required"` // Contact name, required
	Phone *string `json:"phone"`                   // Phone number, optional
	Email *string `json:"email"`                   // Email address, optional
}

// orEmpty flattens an optional field for creation, where absent means empty.
func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// countCacheTTL bounds how stale the cached contact count may get.
const countCacheTTL = 60 * time.Second

func countCacheKey(owner uint) string {
	return "contacts:count:user:" + strconv.Itoa(int(owner))
}

// invalidateCount drops the cached count after a write. A nil client means
// caching is disabled.
func invalidateCount(c *gin.Context, rdb *redis.Client, owner uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(c.Request.Context(), countCacheKey(owner)).Err(); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate count cache")
	}
}

// ownerID returns the authenticated user ID attached by the auth middleware.
func ownerID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserKey).(uint)
}

// contactID parses the {id} path parameter.
func contactID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ListContactsHandler returns the caller's contacts, optionally filtered by
// the search query parameter.
func ListContactsHandler(contacts Contacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := contacts.List(c.Request.Context(), ownerID(c), c.Query("search"))
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list contacts")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
			return
		}
		if list == nil {
			list = []domain.Contact{} // Serialize an empty list as [], not null
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetContactHandler returns one contact. A contact that does not exist and a
// contact owned by someone else answer the same 404.
func GetContactHandler(contacts Contacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := contactID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found or access denied"})
			return
		}
		contact, err := contacts.Get(c.Request.Context(), ownerID(c), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found or access denied"})
				return
			}
			logrus.WithField("error", err.Error()).Error("Failed to fetch contact")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact"})
			return
		}
		c.JSON(http.StatusOK, contact)
	}
}

// CreateContactHandler inserts a new contact for the caller.
func CreateContactHandler(contacts Contacts, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is a required field."})
			return
		}
		owner := ownerID(c)
		contact, err := contacts.Create(c.Request.Context(), owner, req.Name, orEmpty(req.Phone), orEmpty(req.Email))
		if err != nil {
			if errors.Is(err, store.ErrNameRequired) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name is a required field."})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": owner,       // Owner user ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create contact")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    owner,      // Owner user ID
			"contact_id": contact.ID, // New contact ID
		}).Info("Contact created")
		invalidateCount(c, rdb, owner)
		c.JSON(http.StatusCreated, contact)
	}
}

// UpdateContactHandler overwrites name, phone and email of an owned contact.
func UpdateContactHandler(contacts Contacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := contactID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found or access denied"})
			return
		}
		var req ContactRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is a required field."})
			return
		}
		owner := ownerID(c)
		contact, err := contacts.Update(c.Request.Context(), owner, id, req.Name, req.Phone, req.Email)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found or access denied"})
		case errors.Is(err, store.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is a required field."})
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"user_id":    owner,       // Owner user ID
				"contact_id": id,          // Contact ID
				"error":      err.Error(), // Error message
			}).Error("Failed to update contact")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		default:
			c.JSON(http.StatusOK, contact)
		}
	}
}

// DeleteContactHandler removes an owned contact.
func DeleteContactHandler(contacts Contacts, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := contactID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found or access denied"})
			return
		}
		owner := ownerID(c)
		err := contacts.Delete(c.Request.Context(), owner, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found or access denied"})
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"user_id":    owner,       // Owner user ID
				"contact_id": id,          // Contact ID
				"error":      err.Error(), // Error message
			}).Error("Failed to delete contact")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		default:
			logrus.WithFields(logrus.Fields{
				"user_id":    owner, // Owner user ID
				"contact_id": id,    // Contact ID
			}).Info("Contact deleted")
			invalidateCount(c, rdb, owner)
			c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
		}
	}
}

// CountContactsHandler returns how many contacts the caller has. The count
// is served cache-aside from Redis with a short TTL; writes invalidate it.
func CountContactsHandler(contacts Contacts, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := ownerID(c)
		if rdb != nil {
			if val, err := rdb.Get(c.Request.Context(), countCacheKey(owner)).Result(); err == nil {
				if count, perr := strconv.ParseInt(val, 10, 64); perr == nil {
					c.JSON(http.StatusOK, gin.H{"count": count})
					return
				}
			}
		}
		count, err := contacts.Count(c.Request.Context(), owner)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to count contacts")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count contacts"})
			return
		}
		if rdb != nil {
			if err := rdb.Set(c.Request.Context(), countCacheKey(owner), strconv.FormatInt(count, 10), countCacheTTL).Err(); err != nil {
				logrus.WithField("error", err.Error()).Warn("Failed to cache contact count")
			}
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
