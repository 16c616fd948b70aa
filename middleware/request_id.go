// Package middleware contains any custom middleware used in the app
package middleware

import (
	"github.com/gin-gonic/gin"

	"tubehub/catalog-api/pkg/util"
)

// NewRequestIDMiddleware tags every request with a short random id, exposed
// both to the handlers and to the client for log correlation.
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := util.RandStr(10)
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
