package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSONAccept returns middleware that rejects requests whose Accept
// header rules out JSON responses. An absent header is treated as */*.
func RequireJSONAccept() gin.HandlerFunc {
	return func(c *gin.Context) {
		accept := c.GetHeader("Accept")
		if accept == "" || acceptsJSON(accept) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusNotAcceptable, gin.H{
			"error": gin.H{
				"code":    "NOT_ACCEPTABLE",
				"message": "this API only produces application/json",
			},
		})
	}
}

func acceptsJSON(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(part)
		if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
			mediaType = strings.TrimSpace(mediaType[:idx])
		}

		switch mediaType {
		case "*/*", "application/*", "application/json":
			return true
		}
	}

	return false
}
