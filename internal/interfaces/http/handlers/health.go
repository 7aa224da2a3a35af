// internal/interfaces/http/handlers/health.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ecommerce-storefront/internal/config"
	"github.com/your-org/ecommerce-storefront/internal/domain/session"
)

// Pinger checks a dependency is reachable
type Pinger interface {
	Health() error
}

// HealthHandler reports whether the storefront can serve pages
type HealthHandler struct {
	config  *config.Config
	session *session.Store
	records Pinger
}

// NewHealthHandler creates a new health handler. records may be nil when the
// session record lives on local disk.
func NewHealthHandler(cfg *config.Config, sess *session.Store, records Pinger) *HealthHandler {
	return &HealthHandler{config: cfg, session: sess, records: records}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.records != nil {
		if err := h.records.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "session store ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     h.config.App.Version,
		"environment": h.config.App.Environment,
		"session":     h.session.State().String(),
		"backend":     h.config.API.BaseURL,
	})
}
