package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-seat-monitor/internal/detection"
)

// DetectionHandler toggles and reads the camera detection feed. Base is
// the server's lifetime context; the feed outlives the request that
// started it.
type DetectionHandler struct {
	Feed *detection.Feed
	Base context.Context
}

// Get returns the current panel.
func (h *DetectionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Feed.Snapshot())
}

// Start switches the feed on. Starting a running feed changes nothing.
func (h *DetectionHandler) Start(c echo.Context) error {
	h.Feed.Start(h.Base)
	return c.JSON(http.StatusOK, h.Feed.Snapshot())
}

// Stop switches the feed off and clears the list.
func (h *DetectionHandler) Stop(c echo.Context) error {
	h.Feed.Stop()
	return c.JSON(http.StatusOK, h.Feed.Snapshot())
}
