package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Producto is a catalog item as served by the remote backend.
// Identity resolution and the stock/cantidad fallback happen once here, at
// the decode boundary, so no caller ever has to look at `_id` again.
type Producto struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	PrecioCompra decimal.Decimal `json:"precioCompra"`
	Stock        int             `json:"stock"`
	Categoria    string          `json:"categoria"`
}

func (p *Producto) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string          `json:"id"`
		AltID        string          `json:"_id"`
		Codigo       string          `json:"codigo"`
		Nombre       string          `json:"nombre"`
		Precio       decimal.Decimal `json:"precio"`
		PrecioCompra decimal.Decimal `json:"precioCompra"`
		Stock        *int            `json:"stock"`
		Cantidad     *int            `json:"cantidad"`
		Categoria    string          `json:"categoria"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Identity precedence: id, then _id, then codigo.
	p.ID = raw.ID
	if p.ID == "" {
		p.ID = raw.AltID
	}
	if p.ID == "" {
		p.ID = raw.Codigo
	}

	p.Codigo = raw.Codigo
	p.Nombre = raw.Nombre
	p.Precio = raw.Precio
	p.PrecioCompra = raw.PrecioCompra
	p.Categoria = raw.Categoria

	switch {
	case raw.Stock != nil:
		p.Stock = *raw.Stock
	case raw.Cantidad != nil:
		p.Stock = *raw.Cantidad
	default:
		p.Stock = 0
	}
	return nil
}

// GananciaBruta is the per-unit gross margin (sale price minus cost price).
func (p Producto) GananciaBruta() decimal.Decimal {
	return p.Precio.Sub(p.PrecioCompra)
}

// BuscarProducto returns the product whose normalized ID matches id.
func BuscarProducto(productos []Producto, id string) (Producto, bool) {
	if id == "" {
		return Producto{}, false
	}
	for _, p := range productos {
		if p.ID == id {
			return p, true
		}
	}
	return Producto{}, false
}
