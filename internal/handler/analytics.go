package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/analytics"
)

// AnalyticsHandler serves the dashboard charts.
type AnalyticsHandler struct {
	Gen *analytics.Generator
	Log *zap.Logger
}

// Report returns the chart data as JSON.
func (h *AnalyticsHandler) Report(c echo.Context) error {
	r, err := h.Gen.Report(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Charts renders the charts as an HTML page.
func (h *AnalyticsHandler) Charts(c echo.Context) error {
	r, err := h.Gen.Report(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	var buf bytes.Buffer
	if err := analytics.Render(&buf, r); err != nil {
		return fail(c, h.Log, err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
