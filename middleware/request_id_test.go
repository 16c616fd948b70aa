package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string

	r := gin.New()
	r.GET("/", NewRequestIDMiddleware(), func(c *gin.Context) {
		seen = c.GetString("requestID")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seen, 10)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}
