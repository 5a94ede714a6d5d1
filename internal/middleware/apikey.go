package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/greatday-recap-api/pkg/errors"
	"github.com/noah-isme/greatday-recap-api/pkg/response"
)

// APIKey guards the trigger endpoints with a static shared key, read
// from the X-API-Key header or an apiKey/token query parameter. An
// empty configured key disables the check for local development.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		provided := strings.TrimSpace(c.GetHeader("X-API-Key"))
		if provided == "" {
			provided = strings.TrimSpace(c.Query("apiKey"))
		}
		if provided == "" {
			provided = strings.TrimSpace(c.Query("token"))
		}

		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Next()
	}
}
