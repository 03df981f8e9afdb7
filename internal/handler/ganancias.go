package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/apierror"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/dto"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/infra"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/report"
	"github.com/AlexanderGarcia27/Inventario-El-Balcon/internal/store"
)

type GananciasHandler struct {
	cache          *store.Store
	pdfStoragePath string
}

func NewGananciasHandler(cache *store.Store, pdfStoragePath string) *GananciasHandler {
	return &GananciasHandler{cache: cache, pdfStoragePath: pdfStoragePath}
}

func (h *GananciasHandler) salesSnapshot(c *gin.Context) store.Snapshot {
	snap := h.cache.Snapshot()
	if !snap.SalesLoaded {
		if err := h.cache.LoadSales(c.Request.Context(), ""); err == nil {
			snap = h.cache.Snapshot()
		}
	}
	return snap
}

// Resumen serves the profit report: lifetime and today's net gain plus the
// per-day gross/net series behind the chart and the corte de caja table.
func (h *GananciasHandler) Resumen(c *gin.Context) {
	snap := h.salesSnapshot(c)

	c.JSON(http.StatusOK, dto.GananciasResponse{
		GananciaTotal: report.TotalGain(snap.Sales),
		GananciaHoy:   report.TodayGain(snap.Sales, time.Now()),
		Diario:        report.DailyGain(snap.Sales),
		Loading:       snap.Loading,
		Error:         snap.Error,
	})
}

// CortePDF renders the daily reconciliation table to PDF and serves the file.
func (h *GananciasHandler) CortePDF(c *gin.Context) {
	snap := h.salesSnapshot(c)

	diario := report.DailyGain(snap.Sales)
	if len(diario) == 0 {
		c.JSON(http.StatusNotFound, apierror.New("No hay datos de ventas para generar el corte diario"))
		return
	}

	path, err := infra.GenerateCorteCajaPDF(diario, h.pdfStoragePath)
	if err != nil {
		c.Error(err)
		return
	}
	c.FileAttachment(path, "corte_de_caja.pdf")
}
