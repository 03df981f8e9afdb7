package dto

import "github.com/shopspring/decimal"

// ProductoRequest is the body of POST /api/productos and PUT
// /api/productos/:id — the product fields minus identity, forwarded to the
// backend as-is. No client-side validation beyond numeric sanity.
type ProductoRequest struct {
	Nombre       string          `json:"nombre"       validate:"required"`
	Precio       decimal.Decimal `json:"precio"       validate:"min=0"`
	PrecioCompra decimal.Decimal `json:"precioCompra" validate:"min=0"`
	Stock        int             `json:"stock"        validate:"min=0"`
	Categoria    string          `json:"categoria"`
}

// ProductoListItem decorates a cached product with its derived per-unit
// gross margin for the inventory table.
type ProductoListItem struct {
	ID            string          `json:"id"`
	Codigo        string          `json:"codigo"`
	Nombre        string          `json:"nombre"`
	Precio        decimal.Decimal `json:"precio"`
	PrecioCompra  decimal.Decimal `json:"precioCompra"`
	GananciaBruta decimal.Decimal `json:"gananciaBruta"`
	Stock         int             `json:"stock"`
	Categoria     string          `json:"categoria"`
}

type ProductoListResponse struct {
	Data    []ProductoListItem `json:"data"`
	Loading bool               `json:"loading"`
	Error   string             `json:"error,omitempty"`
}
