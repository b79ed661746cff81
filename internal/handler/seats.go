package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/layout"
	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/repository"
)

// SeatHandler serves the read-only seat map.
type SeatHandler struct {
	Seats *repository.SeatRepo
	Log   *zap.Logger
}

// SeatView is a seat with its display label.
type SeatView struct {
	model.Seat
	StatusLabel string `json:"status_label"`
}

func newSeatView(s model.Seat) SeatView {
	return SeatView{Seat: s, StatusLabel: s.Status.Label()}
}

// ListFloors returns the floors, zones and the zone layout.
func (h *SeatHandler) ListFloors(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"floors":   model.Floors,
		"zones":    model.Zones,
		"statuses": model.Statuses,
		"layout":   layout.Default,
	})
}

// ListSeats returns seats filtered by the optional floor, zone and status
// query parameters.
func (h *SeatHandler) ListSeats(c echo.Context) error {
	var f repository.SeatFilter
	var err error
	if v := c.QueryParam("floor"); v != "" {
		if f.Floor, err = model.ParseFloor(v); err != nil {
			return fail(c, h.Log, err)
		}
	}
	if v := c.QueryParam("zone"); v != "" {
		if f.Zone, err = model.ParseZone(v); err != nil {
			return fail(c, h.Log, err)
		}
	}
	if v := c.QueryParam("status"); v != "" {
		if f.Status, err = model.ParseStatus(v); err != nil {
			return fail(c, h.Log, err)
		}
	}

	seats, err := h.Seats.List(c.Request().Context(), f)
	if err != nil {
		return fail(c, h.Log, err)
	}
	var st model.SeatStats
	items := make([]SeatView, 0, len(seats))
	for _, s := range seats {
		items = append(items, newSeatView(s))
		st.Add(s.Status)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "stats": st})
}

// GetSeat returns one seat.
func (h *SeatHandler) GetSeat(c echo.Context) error {
	s, err := h.Seats.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, newSeatView(*s))
}

// GetSeatPosition returns where the seat is drawn inside its zone.
func (h *SeatHandler) GetSeatPosition(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	s, err := h.Seats.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	index, total, err := h.Seats.IndexInZone(ctx, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seat_id": s.ID,
		"floor":   s.Floor,
		"zone":    s.Zone,
		"index":   index,
		"total":   total,
		"rect":    layout.Position(s.Zone, index, total),
	})
}

// GetStats returns the building-wide status counts.
func (h *SeatHandler) GetStats(c echo.Context) error {
	st, err := h.Seats.Stats(c.Request().Context())
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, st)
}
