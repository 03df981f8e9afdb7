package handler

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/apierror"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/cart"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/dto"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/store"
)

// VentasHandler serves the sales list, sale detail, the legacy single-item
// sale, and the cart/checkout flow. The deployment is single-tenant so one
// cart exists per process, serialized by mu.
type VentasHandler struct {
	cache *store.Store

	mu      sync.Mutex
	carrito *cart.Cart
}

func NewVentasHandler(cache *store.Store) *VentasHandler {
	return &VentasHandler{cache: cache, carrito: cart.New()}
}

// ─── Listado y detalle ───────────────────────────────────────────────────────

// Listar re-invokes the cache's sales loader. Without ?date it is a full
// reload; with ?date=YYYY-MM-DD the collection is replaced with that day's
// subset and a failure surfaces only in this response, never in the shared
// error field.
func (h *VentasHandler) Listar(c *gin.Context) {
	date := c.Query("date")
	if err := h.cache.LoadSales(c.Request.Context(), date); err != nil && date != "" {
		writeGatewayError(c, err)
		return
	}
	snap := h.cache.Snapshot()
	c.JSON(http.StatusOK, dto.VentaListResponse{
		Data:    snap.Sales,
		Loading: snap.Loading,
		Error:   snap.Error,
	})
}

func (h *VentasHandler) Detalle(c *gin.Context) {
	venta, err := h.cache.SaleDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, venta)
}

// RegistrarDirecta records a legacy single-product sale: total and cambio
// are derived from the form values and sent in the flat shape.
func (h *VentasHandler) RegistrarDirecta(c *gin.Context) {
	var req dto.VentaDirectaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	precio := req.Precio
	if precio.IsZero() {
		snap := h.cache.Snapshot()
		draft, ok := cart.SelectProduct(snap.Products, req.ProductoID)
		if !ok {
			c.JSON(http.StatusBadRequest, apierror.New("Producto desconocido"))
			return
		}
		precio = draft.Precio
	}

	total := precio.Mul(decimal.NewFromInt(int64(req.Cantidad)))
	payload := map[string]interface{}{
		"productoId": req.ProductoID,
		"cantidad":   req.Cantidad,
		"total":      total,
		"monto":      req.Monto,
		"cambio":     req.Monto.Sub(total),
		"nota":       req.Nota,
	}

	res, err := h.cache.AddSale(c.Request.Context(), payload)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ─── Carrito ─────────────────────────────────────────────────────────────────

func (h *VentasHandler) carritoResponse() dto.CarritoResponse {
	resp := dto.CarritoResponse{
		Estado: string(h.carrito.State()),
		Lineas: h.carrito.Lines(),
		Total:  h.carrito.Total(),
	}
	if idx, editing := h.carrito.Editing(); editing {
		resp.Editing = &idx
	}
	return resp
}

func (h *VentasHandler) VerCarrito(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, h.carritoResponse())
}

// AgregarLinea resolves the product from the cached catalog, applies the
// optional price override, and appends the line. A duplicate product is
// refused — the client must edit the existing line instead.
func (h *VentasHandler) AgregarLinea(c *gin.Context) {
	var req dto.LineaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	snap := h.cache.Snapshot()
	draft, ok := cart.SelectProduct(snap.Products, req.ProductoID)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("Producto desconocido"))
		return
	}
	if !req.Precio.IsZero() {
		draft.Precio = req.Precio
	}
	draft.Cantidad = req.Cantidad

	if err := h.carrito.AddOrSave(draft); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.carritoResponse())
}

// EditarLinea replaces the line at :index in place.
func (h *VentasHandler) EditarLinea(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Indice invalido"))
		return
	}
	var req dto.LineaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.carrito.StartEdit(index); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}

	snap := h.cache.Snapshot()
	draft, ok := cart.SelectProduct(snap.Products, req.ProductoID)
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.New("Producto desconocido"))
		return
	}
	if !req.Precio.IsZero() {
		draft.Precio = req.Precio
	}
	draft.Cantidad = req.Cantidad

	if err := h.carrito.AddOrSave(draft); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.carritoResponse())
}

func (h *VentasHandler) EliminarLinea(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Indice invalido"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.carrito.RemoveLine(index); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, h.carritoResponse())
}

// Confirmar finalizes the cart. Guard failures (empty cart, mid-edit,
// insufficient payment) come back as 422; a backend failure preserves the
// cart for retry.
func (h *VentasHandler) Confirmar(c *gin.Context) {
	var req dto.ConfirmarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.carrito.Submit(c.Request.Context(), h.cache, req.Monto, req.Nota)
	if err != nil {
		switch err {
		case cart.ErrCarritoVacio, cart.ErrEdicionPendiente, cart.ErrMontoInsuficiente, cart.ErrEnvioEnCurso:
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			writeGatewayError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, res)
}
