package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/model"
)

// LoginResult is the parsed response of POST /login. Some deployments return
// {user, token}, older ones return the user object bare; User always ends up
// holding the user document either way.
type LoginResult struct {
	User  json.RawMessage
	Token string
}

// VentaCreada is the response of POST /ventas: {mensaje, id, venta}.
type VentaCreada struct {
	Mensaje string          `json:"mensaje"`
	ID      string          `json:"id"`
	Venta   json.RawMessage `json:"venta"`
}

// Login authenticates against the backend. No token is attached — this is
// the call that obtains one.
func (c *Client) Login(ctx context.Context, usuario, password string) (*LoginResult, error) {
	payload := map[string]string{"usuario": usuario, "password": password}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/login", "", payload, &raw); err != nil {
		return nil, err
	}

	var parsed struct {
		User  json.RawMessage `json:"user"`
		Token string          `json:"token"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	res := &LoginResult{User: parsed.User, Token: parsed.Token}
	if len(res.User) == 0 {
		res.User = raw
	}
	return res, nil
}

func (c *Client) FetchTotales(ctx context.Context, token string) (*model.DashboardTotals, error) {
	var totals model.DashboardTotals
	if err := c.do(ctx, http.MethodGet, "/dashboard/totales", token, nil, &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}

func (c *Client) FetchProductos(ctx context.Context, token string) ([]model.Producto, error) {
	var productos []model.Producto
	if err := c.do(ctx, http.MethodGet, "/productos", token, nil, &productos); err != nil {
		return nil, err
	}
	return productos, nil
}

// FetchVentas lists sales. A non-empty date (YYYY-MM-DD) restricts the
// result to that day.
func (c *Client) FetchVentas(ctx context.Context, token, date string) ([]model.Venta, error) {
	path := "/ventas"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var ventas []model.Venta
	if err := c.do(ctx, http.MethodGet, path, token, nil, &ventas); err != nil {
		return nil, err
	}
	return ventas, nil
}

// FetchVenta returns one sale. The {venta: {...}} envelope some responses
// carry is unwrapped during decoding.
func (c *Client) FetchVenta(ctx context.Context, token, id string) (*model.Venta, error) {
	var venta model.Venta
	if err := c.do(ctx, http.MethodGet, "/ventas/"+url.PathEscape(id), token, nil, &venta); err != nil {
		return nil, err
	}
	return &venta, nil
}

func (c *Client) CreateProducto(ctx context.Context, token string, payload interface{}) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/productos", token, payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) UpdateProducto(ctx context.Context, token, id string, payload interface{}) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/productos/"+url.PathEscape(id), token, payload, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) DeleteProducto(ctx context.Context, token, id string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodDelete, "/productos/"+url.PathEscape(id), token, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) CreateVenta(ctx context.Context, token string, payload interface{}) (*VentaCreada, error) {
	var created VentaCreada
	if err := c.do(ctx, http.MethodPost, "/ventas", token, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
