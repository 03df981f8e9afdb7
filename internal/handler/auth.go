package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/dto"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/gateway"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/middleware"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/store"
)

type AuthHandler struct {
	gw    *gateway.Client
	cache *store.Store
}

func NewAuthHandler(gw *gateway.Client, cache *store.Store) *AuthHandler {
	return &AuthHandler{gw: gw, cache: cache}
}

// Login proxies the credentials to the backend, persists the user document
// and token in the cookie session, and triggers the initial cache load so
// that the first screen render already has data.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	res, err := h.gw.Login(c.Request.Context(), req.Usuario, req.Password)
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, string(res.User))
	if res.Token != "" {
		session.Set(middleware.SessionTokenKey, res.Token)
	}
	if err := session.Save(); err != nil {
		c.Error(err)
		return
	}

	h.cache.SetSession(res.Token)
	h.cache.LoadAll(c.Request.Context())

	c.JSON(http.StatusOK, dto.LoginResponse{User: res.User})
}

// Logout clears the session and tears the cache down.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
		return
	}
	h.cache.Reset()
	c.Status(http.StatusNoContent)
}

// Me returns the persisted user document, restoring the session on page load.
func (h *AuthHandler) Me(c *gin.Context) {
	session := sessions.Default(c)
	user, _ := session.Get(middleware.SessionUserKey).(string)
	if user == "" {
		user = "null"
	}
	c.JSON(http.StatusOK, dto.LoginResponse{User: []byte(user)})
}
