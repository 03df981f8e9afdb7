package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/apierror"
)

// Session keys. The cookie session is the server-side analog of the old
// browser localStorage: it persists the authenticated user document and the
// backend token across page loads. An absent user means unauthenticated.
const (
	SessionUserKey  = "user"
	SessionTokenKey = "token"
)

// RequireSession rejects requests without an authenticated session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(SessionUserKey) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		c.Next()
	}
}
