// Package handler defines the HTTP layer: request binding, identity
// extraction, and the mapping from domain error kinds to statuses.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/goalpark/stadium-booking/internal/booking"
)

// getUserID extracts the user_id claim from echo.Context as uint64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// optionalUserID is getUserID for guest-capable routes: nil when the
// request carries no identity.
func optionalUserID(c echo.Context) *uint64 {
	id, err := getUserID(c)
	if err != nil {
		return nil
	}
	return &id
}

// respondBookingError maps a domain error to its HTTP shape.  Conflict
// responses carry the colliding bookings so the client can render the
// taken slots.
func respondBookingError(c echo.Context, err error) error {
	be := booking.AsError(err)
	if be == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	switch be.Kind {
	case booking.KindValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": be.Message})
	case booking.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": be.Message})
	case booking.KindConflict:
		return c.JSON(http.StatusConflict, echo.Map{
			"error":                be.Message,
			"conflicting_bookings": be.Conflicts,
		})
	case booking.KindStorage:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": be.Message})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": be.Message})
	}
}
