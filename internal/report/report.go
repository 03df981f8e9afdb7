// Package report derives chart-ready series and profit scalars from the
// cached sales collection. Everything here is pure and recomputed per call;
// malformed records never produce an error — a sale without a parseable
// date is excluded from date buckets but still counts toward totals.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/model"
)

const topProductosLimit = 8

// DailyPoint is one day of the corte de caja: gross (total sold) and net
// (ganancia) per local calendar day.
type DailyPoint struct {
	Date       string          `json:"date"`
	Gain       decimal.Decimal `json:"gain"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// MonthlyPoint is the gross total sold in one YYYY-MM month.
type MonthlyPoint struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// ProductCount is units sold per product display name.
type ProductCount struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

// DailyGain groups sales by local calendar day, summing ganancia (net) and
// total (gross). Output ascends by date.
func DailyGain(ventas []model.Venta) []DailyPoint {
	buckets := make(map[string]*DailyPoint)
	for _, v := range ventas {
		if !v.Fecha.Valid {
			continue
		}
		key := v.Fecha.DayKey()
		point, ok := buckets[key]
		if !ok {
			point = &DailyPoint{Date: key, Gain: decimal.Zero, TotalSales: decimal.Zero}
			buckets[key] = point
		}
		point.Gain = point.Gain.Add(v.Ganancia)
		point.TotalSales = point.TotalSales.Add(v.Total)
	}

	out := make([]DailyPoint, 0, len(buckets))
	for _, point := range buckets {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MonthlyTotals groups sales by YYYY-MM, summing total. Ascending by month.
func MonthlyTotals(ventas []model.Venta) []MonthlyPoint {
	buckets := make(map[string]decimal.Decimal)
	for _, v := range ventas {
		if !v.Fecha.Valid {
			continue
		}
		key := v.Fecha.MonthKey()
		buckets[key] = buckets[key].Add(v.Total)
	}

	out := make([]MonthlyPoint, 0, len(buckets))
	for month, total := range buckets {
		out = append(out, MonthlyPoint{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TopProducts counts units sold per product display name (falling back to
// product id), descending, truncated to the top 8. Cart-shaped sales
// contribute one entry per line; legacy rows without a quantity count as 1.
func TopProducts(ventas []model.Venta) []ProductCount {
	counts := make(map[string]int)
	for _, v := range ventas {
		if len(v.Articulos) > 0 {
			for _, a := range v.Articulos {
				key := a.ProductoID
				if key == "" {
					key = "Desconocido"
				}
				counts[key] += a.Cantidad
			}
			continue
		}

		key := v.ProductoNombre
		if key == "" {
			key = v.ProductoID
		}
		if key == "" {
			key = "Desconocido"
		}
		qty := v.Cantidad
		if qty <= 0 {
			qty = 1
		}
		counts[key] += qty
	}

	out := make([]ProductCount, 0, len(counts))
	for nombre, cantidad := range counts {
		out = append(out, ProductCount{Nombre: nombre, Cantidad: cantidad})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Nombre < out[j].Nombre
	})
	if len(out) > topProductosLimit {
		out = out[:topProductosLimit]
	}
	return out
}

// TodayGain sums ganancia over sales dated on or after the local start of
// today (relative to now).
func TodayGain(ventas []model.Venta, now time.Time) decimal.Decimal {
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	gain := decimal.Zero
	for _, v := range ventas {
		if !v.Fecha.Valid || v.Fecha.Time.Before(startOfDay) {
			continue
		}
		gain = gain.Add(v.Ganancia)
	}
	return gain
}

// TotalGain sums ganancia over the whole collection, dateless sales
// included.
func TotalGain(ventas []model.Venta) decimal.Decimal {
	gain := decimal.Zero
	for _, v := range ventas {
		gain = gain.Add(v.Ganancia)
	}
	return gain
}
