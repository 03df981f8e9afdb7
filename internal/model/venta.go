package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Articulo is a line of a cart-shaped sale.
type Articulo struct {
	ProductoID    string          `json:"productoId"`
	Cantidad      int             `json:"cantidad"`
	PrecioVenta   decimal.Decimal `json:"precioVenta"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	CostoUnitario decimal.Decimal `json:"costoUnitario"`
}

// Venta is a sale record as served by the remote backend. Two generations of
// records coexist: the legacy single-product shape (ProductoID/Cantidad) and
// the cart shape (Articulos). Total and Ganancia are server-computed and
// authoritative only after a round trip.
type Venta struct {
	Codigo         string          `json:"codigo"`
	Fecha          Fecha           `json:"fecha"`
	ProductoID     string          `json:"productoId"`
	ProductoCodigo string          `json:"productoCodigo"`
	ProductoNombre string          `json:"productoNombre"`
	Cantidad       int             `json:"cantidad"`
	Articulos      []Articulo      `json:"articulos"`
	Total          decimal.Decimal `json:"total"`
	Monto          decimal.Decimal `json:"monto"`
	Cambio         decimal.Decimal `json:"cambio"`
	Nota           string          `json:"nota"`
	Ganancia       decimal.Decimal `json:"ganancia"`
}

// ventaAlias carries the raw wire fields. Kept method-free so UnmarshalJSON
// below does not recurse.
type ventaAlias struct {
	Codigo         string          `json:"codigo"`
	ID             string          `json:"id"`
	AltID          string          `json:"_id"`
	CodigoVenta    string          `json:"codigoVenta"`
	Fecha          Fecha           `json:"fecha"`
	ProductoID     string          `json:"productoId"`
	ProductoCodigo string          `json:"productoCodigo"`
	CodigoProducto string          `json:"codigoProducto"`
	ProductoNombre string          `json:"productoNombre"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	Articulos      []Articulo      `json:"articulos"`
	Total          decimal.Decimal `json:"total"`
	Monto          decimal.Decimal `json:"monto"`
	Cambio         decimal.Decimal `json:"cambio"`
	Nota           string          `json:"nota"`
	Ganancia       decimal.Decimal `json:"ganancia"`
}

func (v *Venta) UnmarshalJSON(data []byte) error {
	// Some endpoints wrap the record as {"venta": {...}}; unwrap one level.
	var envelope struct {
		Venta json.RawMessage `json:"venta"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Venta) > 0 {
		data = envelope.Venta
	}

	var raw ventaAlias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Identity precedence: codigo, then id, then _id, then codigoVenta.
	v.Codigo = firstNonEmpty(raw.Codigo, raw.ID, raw.AltID, raw.CodigoVenta)
	v.Fecha = raw.Fecha
	v.ProductoID = raw.ProductoID
	v.ProductoCodigo = firstNonEmpty(raw.ProductoCodigo, raw.CodigoProducto)
	v.ProductoNombre = firstNonEmpty(raw.ProductoNombre, raw.Producto)
	v.Cantidad = raw.Cantidad
	v.Articulos = raw.Articulos
	v.Total = raw.Total
	v.Monto = raw.Monto
	v.Cambio = raw.Cambio
	v.Nota = raw.Nota
	v.Ganancia = raw.Ganancia
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
