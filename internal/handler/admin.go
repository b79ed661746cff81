package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/middleware"
	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/simulator"
)

// AdminHandler lets staff drive the simulator by hand.
type AdminHandler struct {
	Sim *simulator.Simulator
	Log *zap.Logger
}

// Tick runs one simulator pass immediately and returns what changed.
func (h *AdminHandler) Tick(c echo.Context) error {
	res, err := h.Sim.Tick(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	h.Log.Info("manual tick", zap.String("by", middleware.Subject(c)), zap.Int("changed", len(res.Changes)))
	return c.JSON(http.StatusOK, res)
}

// Reset regenerates every seat.
func (h *AdminHandler) Reset(c echo.Context) error {
	if err := h.Sim.Reset(c.Request().Context()); err != nil {
		return fail(c, h.Log, err)
	}
	h.Log.Info("seats reset", zap.String("by", middleware.Subject(c)))
	return c.NoContent(http.StatusNoContent)
}

type setStatusReq struct {
	Status string `json:"status"`
}

// SetSeatStatus forces one seat into a status.
func (h *AdminHandler) SetSeatStatus(c echo.Context) error {
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return fail(c, h.Log, err)
	}
	seat, err := h.Sim.SetStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return fail(c, h.Log, err)
	}
	h.Log.Info("seat status forced",
		zap.String("by", middleware.Subject(c)),
		zap.String("seat_id", seat.ID),
		zap.String("status", string(seat.Status)))
	return c.JSON(http.StatusOK, newSeatView(*seat))
}
