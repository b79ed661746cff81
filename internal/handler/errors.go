// Package handler exposes the HTTP handlers for the seat dashboard API.
// Handlers translate between JSON and the domain packages and map their
// sentinel errors onto status codes.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/repository"
	"github.com/iliyamo/library-seat-monitor/internal/viewport"
)

// statusFor picks the HTTP status for a domain error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrSeatNotFound),
		errors.Is(err, viewport.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, viewport.ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrInvalidZone),
		errors.Is(err, model.ErrInvalidFloor),
		errors.Is(err, viewport.ErrNoGesture),
		errors.Is(err, viewport.ErrInvalidSize),
		errors.Is(err, viewport.ErrInvalidArg):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes {"error": ...}. Internal errors are logged to log and not
// echoed to clients.
func fail(c echo.Context, log *zap.Logger, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err))
		}
		msg = "internal error"
	}
	return c.JSON(code, echo.Map{"error": msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
