package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"item-service/pkg/response"
)

const bearerPrefix = "Bearer "

// Auth requires a configured API key as a bearer token.
// A missing token gets 401, an unknown one 403.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.apiKeys) == 0 {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c)
			return
		}

		token := strings.TrimSpace(header[len(bearerPrefix):])
		if token == "" {
			response.Unauthorized(c)
			return
		}
		if !m.validKey(token) {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: rejected api key from %s", c.ClientIP())
			response.Forbidden(c)
			return
		}

		c.Next()
	}
}

func (m Middleware) validKey(token string) bool {
	ok := false
	for k := range m.apiKeys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(token)) == 1 {
			ok = true
		}
	}
	return ok
}
