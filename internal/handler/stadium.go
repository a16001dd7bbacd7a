package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goalpark/stadium-booking/internal/repository"
	"github.com/goalpark/stadium-booking/internal/service"
)

// StadiumHandler serves the public browse endpoints: the stadium list
// the wizard's first step renders, single-stadium detail, and the day
// availability view.  These are the read-heavy routes behind the
// response cache.
type StadiumHandler struct {
	Stadiums *repository.StadiumRepo
	Svc      *service.BookingService
}

func NewStadiumHandler(stadiums *repository.StadiumRepo, svc *service.BookingService) *StadiumHandler {
	if stadiums == nil || svc == nil {
		panic("nil dependency passed to NewStadiumHandler")
	}
	return &StadiumHandler{Stadiums: stadiums, Svc: svc}
}

// List handles GET /v1/stadiums.
func (h *StadiumHandler) List(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	out, err := h.Stadiums.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list stadiums failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stadiums": out})
}

// Get handles GET /v1/stadiums/:name.  Stadiums are addressed by their
// unique name, the same key bookings join on.
func (h *StadiumHandler) Get(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stadium name is required"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	s, err := h.Stadiums.GetActiveByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrStadiumNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "stadium not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stadium failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// Availability handles GET /v1/stadiums/:name/availability?date=
// and returns the day's active bookings so taken slots can be shown.
func (h *StadiumHandler) Availability(c echo.Context) error {
	name := c.Param("name")
	date := c.QueryParam("date")

	ctx, cancel := requestCtx(c)
	defer cancel()

	out, err := h.Svc.Availability(ctx, name, date)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}
