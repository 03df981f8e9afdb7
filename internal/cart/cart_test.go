package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/gateway"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/model"
)

type recorderStub struct {
	payload interface{}
	err     error
	calls   int
}

func (r *recorderStub) AddSale(ctx context.Context, payload interface{}) (*gateway.VentaCreada, error) {
	r.calls++
	r.payload = payload
	if r.err != nil {
		return nil, r.err
	}
	return &gateway.VentaCreada{Mensaje: "Venta creada", ID: "V1"}, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func linea(id, nombre, precio string, cantidad int) LineItem {
	return LineItem{ProductoID: id, Producto: nombre, Precio: dec(precio), Cantidad: cantidad}
}

func TestSelectProductPrefillsDraft(t *testing.T) {
	catalogo := []model.Producto{
		{ID: "A", Nombre: "Cemento", Precio: dec("185.5")},
		{ID: "B", Nombre: "Cal", Precio: dec("60")},
	}

	draft, ok := SelectProduct(catalogo, "A")
	require.True(t, ok)
	assert.Equal(t, "Cemento", draft.Producto)
	assert.Equal(t, "185.5", draft.Precio.String())
	assert.Equal(t, 1, draft.Cantidad)

	_, ok = SelectProduct(catalogo, "Z")
	assert.False(t, ok)
}

func TestAddOrSaveValidation(t *testing.T) {
	c := New()

	assert.ErrorIs(t, c.AddOrSave(linea("", "Cemento", "10", 1)), ErrLineaInvalida)
	assert.ErrorIs(t, c.AddOrSave(linea("A", "Cemento", "0", 1)), ErrLineaInvalida)
	assert.ErrorIs(t, c.AddOrSave(linea("A", "Cemento", "-5", 1)), ErrLineaInvalida)
	assert.ErrorIs(t, c.AddOrSave(linea("A", "Cemento", "10", 0)), ErrLineaInvalida)
	assert.Equal(t, StateEmpty, c.State())
}

func TestDuplicateProductIsRefusedNotMerged(t *testing.T) {
	c := New()
	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "10", 2)))

	err := c.AddOrSave(linea("A", "Cemento", "10", 3))
	assert.ErrorIs(t, err, ErrProductoDuplicado)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Cantidad, "quantities must never merge silently")
}

func TestEditSaveReplacesInPlace(t *testing.T) {
	c := New()
	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "10", 2)))
	require.NoError(t, c.AddOrSave(linea("B", "Cal", "5", 3)))

	require.NoError(t, c.StartEdit(0))
	idx, editing := c.Editing()
	require.True(t, editing)
	assert.Equal(t, 0, idx)

	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "12", 4)))

	_, editing = c.Editing()
	assert.False(t, editing, "saving must leave edit mode")
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "12", lines[0].Precio.String())
	assert.Equal(t, 4, lines[0].Cantidad)
	assert.Equal(t, "B", lines[1].ProductoID)
}

func TestRefusedSaveLeavesEditMode(t *testing.T) {
	c := New()
	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "10", 2)))
	require.NoError(t, c.StartEdit(0))

	err := c.AddOrSave(linea("A", "Cemento", "0", 2))
	assert.ErrorIs(t, err, ErrLineaInvalida)

	_, editing := c.Editing()
	assert.False(t, editing, "a refused save must not leave a dangling edit")
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "10", lines[0].Precio.String(), "the refused draft must not land")

	// Checkout proceeds: the cart is back to Idle, not stuck mid-edit.
	rec := &recorderStub{}
	_, err = c.Submit(context.Background(), rec, dec("20"), "")
	require.NoError(t, err)
}

func TestRemoveLineKeepsEditCursorConsistent(t *testing.T) {
	c := New()
	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "10", 1)))
	require.NoError(t, c.AddOrSave(linea("B", "Cal", "5", 1)))
	require.NoError(t, c.AddOrSave(linea("C", "Arena", "3", 1)))

	// Removing a line before the one under edit shifts the cursor down.
	require.NoError(t, c.StartEdit(2))
	require.NoError(t, c.RemoveLine(0))
	idx, editing := c.Editing()
	require.True(t, editing)
	assert.Equal(t, 1, idx)

	// Removing the line under edit cancels the edit.
	require.NoError(t, c.RemoveLine(1))
	_, editing = c.Editing()
	assert.False(t, editing)

	assert.ErrorIs(t, c.RemoveLine(5), ErrIndiceInvalido)
	assert.ErrorIs(t, c.RemoveLine(-1), ErrIndiceInvalido)
}

func TestCheckoutHappyPath(t *testing.T) {
	c := New()
	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "10", 2)))
	require.NoError(t, c.AddOrSave(linea("B", "Cal", "5", 3)))

	assert.Equal(t, "35", c.Total().String())
	assert.Equal(t, "5", c.Change(dec("40")).String())

	rec := &recorderStub{}
	res, err := c.Submit(context.Background(), rec, dec("40"), "efectivo")
	require.NoError(t, err)
	assert.Equal(t, "V1", res.ID)

	payload, ok := rec.payload.(VentaPayload)
	require.True(t, ok)
	require.Len(t, payload.Articulos, 2)
	assert.Equal(t, ArticuloPayload{ProductoID: "A", Cantidad: 2, PrecioVenta: dec("10")}, payload.Articulos[0])
	assert.Equal(t, ArticuloPayload{ProductoID: "B", Cantidad: 3, PrecioVenta: dec("5")}, payload.Articulos[1])
	assert.Equal(t, "35", payload.Total.String())
	assert.Equal(t, "40", payload.Monto.String())
	assert.Equal(t, "5", payload.Cambio.String())
	assert.Equal(t, "efectivo", payload.Nota)

	assert.Equal(t, StateEmpty, c.State())
	assert.Empty(t, c.Lines())
}

func TestSubmitGuards(t *testing.T) {
	rec := &recorderStub{}

	c := New()
	_, err := c.Submit(context.Background(), rec, dec("100"), "")
	assert.ErrorIs(t, err, ErrCarritoVacio)

	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "10", 2)))
	require.NoError(t, c.StartEdit(0))
	_, err = c.Submit(context.Background(), rec, dec("100"), "")
	assert.ErrorIs(t, err, ErrEdicionPendiente)
	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "10", 2)))

	_, err = c.Submit(context.Background(), rec, dec("19.99"), "")
	assert.ErrorIs(t, err, ErrMontoInsuficiente)

	assert.Zero(t, rec.calls, "no guard failure may reach the backend")
	assert.Equal(t, StateBuilding, c.State())
}

func TestSubmitExactAmountIsAccepted(t *testing.T) {
	c := New()
	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "17.5", 2)))

	rec := &recorderStub{}
	_, err := c.Submit(context.Background(), rec, dec("35"), "")
	require.NoError(t, err)

	payload := rec.payload.(VentaPayload)
	assert.True(t, payload.Cambio.IsZero())
}

func TestSubmitFailurePreservesLines(t *testing.T) {
	c := New()
	require.NoError(t, c.AddOrSave(linea("A", "Cemento", "10", 2)))
	require.NoError(t, c.AddOrSave(linea("B", "Cal", "5", 3)))

	rec := &recorderStub{err: errors.New("Stock insuficiente")}
	_, err := c.Submit(context.Background(), rec, dec("40"), "")
	require.Error(t, err)

	assert.Equal(t, StateBuilding, c.State())
	assert.Len(t, c.Lines(), 2, "a failed checkout must keep the cart for retry")

	// Retry succeeds once the backend recovers.
	rec.err = nil
	_, err = c.Submit(context.Background(), rec, dec("40"), "")
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, c.State())
}
