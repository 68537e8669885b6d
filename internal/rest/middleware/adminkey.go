package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leaseflow/leaseflow/internal/config"
	ierr "github.com/leaseflow/leaseflow/internal/errors"
)

// AdminKeyMiddleware gates the manual scheduler trigger endpoints behind the
// configured admin API key. An empty configured key disables the endpoints
// entirely rather than leaving them open.
func AdminKeyMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := cfg.Auth.AdminAPIKey
		provided := c.GetHeader("X-Admin-Api-Key")

		if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			err := ierr.NewError("admin API key missing or invalid").
				WithHint("Provide a valid X-Admin-Api-Key header").
				Mark(ierr.ErrValidation)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ierr.NewErrorResponse(err))
			return
		}
		c.Next()
	}
}
