package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/config"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/gateway"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/handler"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/middleware"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/store"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Store (shared cache) ← Gateway ← remote backend
func New(cfg *config.Config, gw *gateway.Client, cache *store.Store) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(sessions.Sessions("elbalcon_session", cookie.NewStore([]byte(cfg.SessionSecret))))

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(gw, cache)
	dashboardH := handler.NewDashboardHandler(cache)
	productosH := handler.NewProductosHandler(cache)
	ventasH := handler.NewVentasHandler(cache)
	gananciasH := handler.NewGananciasHandler(cache, cfg.PDFStoragePath)

	// ── Public routes ─────────────────────────────────────────────────────────
	r.GET("/health", handler.Health())
	r.POST("/login", authH.Login)

	// ── Authenticated dashboard API ───────────────────────────────────────────
	api := r.Group("/api", middleware.RequireSession())
	{
		api.GET("/me", authH.Me)
		api.POST("/logout", authH.Logout)

		api.GET("/dashboard", dashboardH.Resumen)

		api.GET("/productos", productosH.Listar)
		api.POST("/productos", productosH.Crear)
		api.PUT("/productos/:id", productosH.Actualizar)
		api.DELETE("/productos/:id", productosH.Eliminar)

		api.GET("/ventas", ventasH.Listar)
		api.GET("/ventas/:id", ventasH.Detalle)
		api.POST("/ventas", ventasH.RegistrarDirecta)

		api.GET("/carrito", ventasH.VerCarrito)
		api.POST("/carrito/lineas", ventasH.AgregarLinea)
		api.PUT("/carrito/lineas/:index", ventasH.EditarLinea)
		api.DELETE("/carrito/lineas/:index", ventasH.EliminarLinea)
		api.POST("/carrito/confirmar", ventasH.Confirmar)

		api.GET("/ganancias", gananciasH.Resumen)
		api.GET("/ganancias/corte.pdf", gananciasH.CortePDF)
	}

	return r
}
