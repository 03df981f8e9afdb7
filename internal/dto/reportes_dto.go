package dto

import (
	"github.com/shopspring/decimal"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/model"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/report"
)

type DashboardResponse struct {
	Totales      *model.DashboardTotals `json:"totales"`
	VentasPorMes []report.MonthlyPoint  `json:"ventasPorMes"`
	TopProductos []report.ProductCount  `json:"topProductos"`
	Loading      bool                   `json:"loading"`
	Error        string                 `json:"error,omitempty"`
}

type GananciasResponse struct {
	GananciaTotal decimal.Decimal     `json:"gananciaTotal"`
	GananciaHoy   decimal.Decimal     `json:"gananciaHoy"`
	Diario        []report.DailyPoint `json:"diario"`
	Loading       bool                `json:"loading"`
	Error         string              `json:"error,omitempty"`
}
