// Package cart models the multi-line sale being built before it is
// submitted: line add/edit/remove with duplicate detection, derived totals
// and change, and a guarded finalize transition.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/gateway"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/model"
)

var (
	ErrLineaInvalida     = errors.New("Linea invalida: se requiere producto, precio mayor a 0 y cantidad mayor a 0")
	ErrProductoDuplicado = errors.New("El producto ya esta en el carrito: usa editar")
	ErrIndiceInvalido    = errors.New("Indice de linea invalido")
	ErrCarritoVacio      = errors.New("El carrito esta vacio")
	ErrEdicionPendiente  = errors.New("Hay una edicion de linea en curso")
	ErrMontoInsuficiente = errors.New("El monto recibido no cubre el total")
	ErrEnvioEnCurso      = errors.New("Ya hay una venta enviandose")
)

// State of the checkout flow. Committed and Failed are transient outcomes
// of Submit: success empties the cart back to Empty, failure returns to
// Building with the lines intact for retry.
type State string

const (
	StateEmpty      State = "empty"
	StateBuilding   State = "building"
	StateSubmitting State = "submitting"
)

// LineItem is one draft line of the sale. Precio is the editable unit
// price, pre-filled from the catalog but overridable by the operator.
type LineItem struct {
	ProductoID string          `json:"productoId"`
	Producto   string          `json:"producto"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad"`
}

// Total is the derived line total (precio * cantidad).
func (li LineItem) Total() decimal.Decimal {
	return li.Precio.Mul(decimal.NewFromInt(int64(li.Cantidad)))
}

// ArticuloPayload is the wire shape of a cart line in POST /ventas.
type ArticuloPayload struct {
	ProductoID  string          `json:"productoId"`
	Cantidad    int             `json:"cantidad"`
	PrecioVenta decimal.Decimal `json:"precioVenta"`
}

// VentaPayload is the body submitted to the backend on checkout. Total and
// Cambio are provisional client values; the backend recomputes both.
type VentaPayload struct {
	Articulos []ArticuloPayload `json:"articulos"`
	Total     decimal.Decimal   `json:"total"`
	Monto     decimal.Decimal   `json:"monto"`
	Cambio    decimal.Decimal   `json:"cambio"`
	Nota      string            `json:"nota"`
}

// SaleRecorder is the slice of the shared cache the cart needs to finalize.
type SaleRecorder interface {
	AddSale(ctx context.Context, payload interface{}) (*gateway.VentaCreada, error)
}

// Cart is the checkout state machine. Not safe for concurrent use; the
// owning handler serializes access.
type Cart struct {
	lines      []LineItem
	editIndex  int // -1 when no line is being edited
	submitting bool
}

func New() *Cart {
	return &Cart{editIndex: -1}
}

func (c *Cart) State() State {
	switch {
	case c.submitting:
		return StateSubmitting
	case len(c.lines) > 0:
		return StateBuilding
	default:
		return StateEmpty
	}
}

// Lines returns a copy of the current line items.
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Editing reports the index under edit, if any.
func (c *Cart) Editing() (int, bool) {
	return c.editIndex, c.editIndex >= 0
}

// SelectProduct builds a draft line from the catalog: name and price come
// from the product, quantity starts at 1. An unknown id leaves the draft
// blank.
func SelectProduct(catalogo []model.Producto, id string) (LineItem, bool) {
	p, ok := model.BuscarProducto(catalogo, id)
	if !ok {
		return LineItem{}, false
	}
	return LineItem{
		ProductoID: p.ID,
		Producto:   p.Nombre,
		Precio:     p.Precio,
		Cantidad:   1,
	}, true
}

// StartEdit enters edit mode for the line at index.
func (c *Cart) StartEdit(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrIndiceInvalido
	}
	c.editIndex = index
	return nil
}

// AddOrSave validates the draft and either replaces the line under edit or
// appends a new one. Adding a product that already has a line is refused —
// quantities are never silently merged. Always leaves edit mode, refused
// drafts included: a failed save must not block checkout behind a dangling
// edit.
func (c *Cart) AddOrSave(item LineItem) error {
	editing := c.editIndex
	c.editIndex = -1

	if item.ProductoID == "" || !item.Precio.IsPositive() || item.Cantidad <= 0 {
		return ErrLineaInvalida
	}
	if editing >= 0 {
		c.lines[editing] = item
		return nil
	}
	for _, line := range c.lines {
		if line.ProductoID == item.ProductoID {
			return ErrProductoDuplicado
		}
	}
	c.lines = append(c.lines, item)
	return nil
}

// RemoveLine drops the line at index. Removing the line under edit (or any
// line before it) keeps the edit cursor consistent.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrIndiceInvalido
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	switch {
	case c.editIndex == index:
		c.editIndex = -1
	case c.editIndex > index:
		c.editIndex--
	}
	return nil
}

// Total sums precio*cantidad over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}

// Change is monto - Total(); negative change blocks submission.
func (c *Cart) Change(monto decimal.Decimal) decimal.Decimal {
	return monto.Sub(c.Total())
}

func (c *Cart) buildPayload(monto decimal.Decimal, nota string) VentaPayload {
	articulos := make([]ArticuloPayload, len(c.lines))
	for i, line := range c.lines {
		articulos[i] = ArticuloPayload{
			ProductoID:  line.ProductoID,
			Cantidad:    line.Cantidad,
			PrecioVenta: line.Precio,
		}
	}
	return VentaPayload{
		Articulos: articulos,
		Total:     c.Total(),
		Monto:     monto,
		Cambio:    c.Change(monto),
		Nota:      nota,
	}
}

// Submit finalizes the sale through the shared cache. Guards: non-empty
// cart, no edit in progress, non-negative change, no submit already in
// flight. On success the cart is cleared (the recorder has already reloaded
// the cache); on failure the lines are preserved for retry.
func (c *Cart) Submit(ctx context.Context, rec SaleRecorder, monto decimal.Decimal, nota string) (*gateway.VentaCreada, error) {
	if c.submitting {
		return nil, ErrEnvioEnCurso
	}
	if len(c.lines) == 0 {
		return nil, ErrCarritoVacio
	}
	if c.editIndex >= 0 {
		return nil, ErrEdicionPendiente
	}
	if c.Change(monto).IsNegative() {
		return nil, ErrMontoInsuficiente
	}

	c.submitting = true
	payload := c.buildPayload(monto, nota)
	res, err := rec.AddSale(ctx, payload)
	c.submitting = false
	if err != nil {
		return nil, err
	}
	c.lines = nil
	return res, nil
}
