package dto

import (
	"github.com/shopspring/decimal"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/cart"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/model"
)

// ─── Carrito ─────────────────────────────────────────────────────────────────

// LineaRequest adds or saves one cart line. Precio is optional on add: when
// zero, the catalog price of the selected product is used.
type LineaRequest struct {
	ProductoID string          `json:"productoId" validate:"required"`
	Precio     decimal.Decimal `json:"precio"     validate:"min=0"`
	Cantidad   int             `json:"cantidad"   validate:"required,min=1"`
}

type CarritoResponse struct {
	Estado  string          `json:"estado"`
	Lineas  []cart.LineItem `json:"lineas"`
	Total   decimal.Decimal `json:"total"`
	Editing *int            `json:"editando,omitempty"`
}

// ConfirmarVentaRequest finalizes the cart into a sale.
type ConfirmarVentaRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required"`
	Nota  string          `json:"nota"`
}

// ─── Venta directa (legacy single-item shape) ────────────────────────────────

type VentaDirectaRequest struct {
	ProductoID string          `json:"productoId" validate:"required"`
	Precio     decimal.Decimal `json:"precio"     validate:"min=0"`
	Cantidad   int             `json:"cantidad"   validate:"required,min=1"`
	Monto      decimal.Decimal `json:"monto"      validate:"min=0"`
	Nota       string          `json:"nota"`
}

// ─── Listado ─────────────────────────────────────────────────────────────────

type VentaListResponse struct {
	Data    []model.Venta `json:"data"`
	Loading bool          `json:"loading"`
	Error   string        `json:"error,omitempty"`
}
