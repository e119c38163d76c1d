package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// AdminAuth returns middleware that guards mutating quote routes with a
// preconfigured bearer token. Requests whose Authorization header does not
// carry the exact token are rejected with 401 before any handler runs.
//
// Token comparison is constant-time. An empty configured token locks the
// guarded routes entirely rather than opening them.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c)
			return
		}

		presented := strings.TrimPrefix(header, bearerPrefix)
		if token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			abortUnauthorized(c)
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(401, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "missing or invalid admin token",
		},
	})
}
