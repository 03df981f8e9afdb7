package model

import "github.com/shopspring/decimal"

// DashboardTotals is the read-only summary snapshot served by
// GET /dashboard/totales. It is replaced wholesale on every reload,
// never patched field by field.
type DashboardTotals struct {
	TotalProductos     int             `json:"totalProductos"`
	ProductosStockBajo int             `json:"productosStockBajo"`
	VentasUltimos7Dias decimal.Decimal `json:"ventasUltimos7Dias"`
}
