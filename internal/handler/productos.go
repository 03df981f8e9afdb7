package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/apierror"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/dto"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/store"
)

type ProductosHandler struct {
	cache *store.Store
}

func NewProductosHandler(cache *store.Store) *ProductosHandler {
	return &ProductosHandler{cache: cache}
}

// Listar serves the inventory table from the cache. The optional q filter
// matches nombre, codigo or categoria, case-insensitive — a view over the
// cached list, never a network call.
func (h *ProductosHandler) Listar(c *gin.Context) {
	snap := h.cache.Snapshot()
	q := strings.ToLower(c.Query("q"))

	items := make([]dto.ProductoListItem, 0, len(snap.Products))
	for _, p := range snap.Products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Nombre), q) &&
			!strings.Contains(strings.ToLower(p.Codigo), q) &&
			!strings.Contains(strings.ToLower(p.Categoria), q) {
			continue
		}
		items = append(items, dto.ProductoListItem{
			ID:            p.ID,
			Codigo:        p.Codigo,
			Nombre:        p.Nombre,
			Precio:        p.Precio,
			PrecioCompra:  p.PrecioCompra,
			GananciaBruta: p.GananciaBruta(),
			Stock:         p.Stock,
			Categoria:     p.Categoria,
		})
	}

	c.JSON(http.StatusOK, dto.ProductoListResponse{
		Data:    items,
		Loading: snap.Loading,
		Error:   snap.Error,
	})
}

// Crear forwards the new product to the backend through the cache, which
// reloads products and totals before this returns.
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.ProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res, err := h.cache.AddProduct(c.Request.Context(), req)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json", res)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, apierror.New("ID requerido"))
		return
	}
	var req dto.ProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res, err := h.cache.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", res)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, apierror.New("ID requerido"))
		return
	}
	res, err := h.cache.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	if len(res) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "application/json", res)
}
