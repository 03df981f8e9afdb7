package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response. The remote backend is not
// pinged here: its availability surfaces per-operation as gateway errors,
// and this endpoint must stay cheap for load balancer probes.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
