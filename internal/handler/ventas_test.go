package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/config"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/gateway"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/router"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/store"
)

// env is a booted dashboard wired to a fake remote backend, plus the session
// cookie of a logged-in operator.
type env struct {
	app     *gin.Engine
	cookies []*http.Cookie

	mu          sync.Mutex
	ventaBodies []string // raw POST /ventas bodies seen by the backend
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/login":
			w.Write([]byte(`{"user":{"nombre":"admin"},"token":"tok-test"}`))
		case r.URL.Path == "/productos" && r.Method == http.MethodGet:
			w.Write([]byte(`[{"id":"A","nombre":"Cemento","precio":10,"precioCompra":7,"stock":20},` +
				`{"id":"B","nombre":"Cal","precio":5,"precioCompra":3,"stock":50}]`))
		case r.URL.Path == "/dashboard/totales":
			w.Write([]byte(`{"totalProductos":2,"productosStockBajo":0,"ventasUltimos7Dias":0}`))
		case r.URL.Path == "/ventas" && r.Method == http.MethodGet:
			w.Write([]byte(`[]`))
		case r.URL.Path == "/ventas" && r.Method == http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			e.mu.Lock()
			e.ventaBodies = append(e.ventaBodies, string(body))
			e.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"mensaje":"Venta creada","id":"V1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"no existe"}`))
		}
	}))
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		Env:           "development",
		BackendURL:    backend.URL,
		SessionSecret: "secreto-de-prueba",
	}
	gw := gateway.New(backend.URL, 5*time.Second)
	cache := store.New(gw, zerolog.Nop(), "")
	e.app = router.New(cfg, gw, cache)

	// Log in once; every subsequent request reuses the session cookie.
	res := e.do(t, http.MethodPost, "/login", `{"usuario":"admin","password":"secreto"}`)
	require.Equal(t, http.StatusOK, res.Code)
	e.cookies = res.Result().Cookies()
	require.NotEmpty(t, e.cookies)

	return e
}

func (e *env) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, req)
	return rec
}

func TestCarritoRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "development", SessionSecret: "s"}
	gw := gateway.New("http://127.0.0.1:1", time.Second)
	app := router.New(cfg, gw, store.New(gw, zerolog.Nop(), ""))

	req := httptest.NewRequest(http.MethodGet, "/api/carrito", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCarritoCheckoutFlow(t *testing.T) {
	e := newEnv(t)

	res := e.do(t, http.MethodGet, "/api/carrito", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"estado":"empty"`)

	// Add A×2 at catalog price (precio omitted) and B×3.
	res = e.do(t, http.MethodPost, "/api/carrito/lineas", `{"productoId":"A","cantidad":2}`)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Contains(t, res.Body.String(), `"estado":"building"`)
	assert.Contains(t, res.Body.String(), `"total":"20"`)

	res = e.do(t, http.MethodPost, "/api/carrito/lineas", `{"productoId":"B","cantidad":3}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"total":"35"`)

	// A second line for the same product is refused.
	res = e.do(t, http.MethodPost, "/api/carrito/lineas", `{"productoId":"A","cantidad":1}`)
	assert.Equal(t, http.StatusConflict, res.Code)

	// Underpayment blocks the checkout and keeps the lines.
	res = e.do(t, http.MethodPost, "/api/carrito/confirmar", `{"monto":30}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

	res = e.do(t, http.MethodPost, "/api/carrito/confirmar", `{"monto":40,"nota":"efectivo"}`)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	assert.Contains(t, res.Body.String(), "Venta creada")

	// The backend got the two lines with the provisional totals.
	e.mu.Lock()
	require.Len(t, e.ventaBodies, 1)
	var payload struct {
		Articulos []map[string]interface{} `json:"articulos"`
		Total     string                   `json:"total"`
		Monto     string                   `json:"monto"`
		Cambio    string                   `json:"cambio"`
	}
	require.NoError(t, json.Unmarshal([]byte(e.ventaBodies[0]), &payload))
	e.mu.Unlock()
	require.Len(t, payload.Articulos, 2)
	assert.Equal(t, "35", payload.Total)
	assert.Equal(t, "40", payload.Monto)
	assert.Equal(t, "5", payload.Cambio)

	// Checkout emptied the cart.
	res = e.do(t, http.MethodGet, "/api/carrito", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"estado":"empty"`)
}

func TestCarritoEditarYEliminar(t *testing.T) {
	e := newEnv(t)

	res := e.do(t, http.MethodPost, "/api/carrito/lineas", `{"productoId":"A","cantidad":1}`)
	require.Equal(t, http.StatusOK, res.Code)
	res = e.do(t, http.MethodPost, "/api/carrito/lineas", `{"productoId":"B","cantidad":1}`)
	require.Equal(t, http.StatusOK, res.Code)

	// Override the price of line 0 in place.
	res = e.do(t, http.MethodPut, "/api/carrito/lineas/0", `{"productoId":"A","precio":12.5,"cantidad":4}`)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Contains(t, res.Body.String(), `"total":"55"`)

	res = e.do(t, http.MethodDelete, "/api/carrito/lineas/1", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"total":"50"`)

	res = e.do(t, http.MethodDelete, "/api/carrito/lineas/9", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestConfirmarCarritoVacio(t *testing.T) {
	e := newEnv(t)

	res := e.do(t, http.MethodPost, "/api/carrito/confirmar", `{"monto":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Contains(t, res.Body.String(), "vacio")
}
