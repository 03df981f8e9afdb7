package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/dto"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/report"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/store"
)

type DashboardHandler struct {
	cache *store.Store
}

func NewDashboardHandler(cache *store.Store) *DashboardHandler {
	return &DashboardHandler{cache: cache}
}

// Resumen serves the stat cards and both charts. The monthly and
// top-product series are re-derived from the cached sales on every call.
// The first hit after login triggers the sales load the charts depend on.
func (h *DashboardHandler) Resumen(c *gin.Context) {
	snap := h.cache.Snapshot()
	if !snap.SalesLoaded {
		if err := h.cache.LoadSales(c.Request.Context(), ""); err == nil {
			snap = h.cache.Snapshot()
		}
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Totales:      snap.Stats,
		VentasPorMes: report.MonthlyTotals(snap.Sales),
		TopProductos: report.TopProducts(snap.Sales),
		Loading:      snap.Loading,
		Error:        snap.Error,
	})
}
