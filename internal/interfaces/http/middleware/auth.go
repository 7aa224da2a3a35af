// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ecommerce-storefront/internal/domain/session"
)

// Identity is the view of the session the gates need
type Identity interface {
	IsAuthenticated() bool
	IsAdmin() bool
	State() session.State
}

// Denier renders a refusal page
type Denier interface {
	Error(c *gin.Context, status int, heading, message string)
}

const (
	LoginPath   = "/login"
	LandingPath = "/products"
)

// AwaitRestore holds requests off until the persisted session has been read
func AwaitRestore(id Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id.State() == session.StateUnknown {
			c.Header("Retry-After", "1")
			c.String(http.StatusServiceUnavailable, "Loading...")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSession sends anonymous visitors to the login page
func RequireSession(id Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !id.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin refuses signed-in users who are not admins
func RequireAdmin(id Identity, deny Denier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !id.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		if !id.IsAdmin() {
			deny.Error(c, http.StatusForbidden, "Access Denied", "You do not have permission to access this page.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated keeps signed-in users off the login and register pages
func RedirectIfAuthenticated(id Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, LandingPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
