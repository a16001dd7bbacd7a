package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goalpark/stadium-booking/internal/model"
	"github.com/goalpark/stadium-booking/internal/repository"
	"github.com/goalpark/stadium-booking/internal/service"
)

// AdminHandler serves the management panel: stadium CRUD, the filtered
// booking list, admin-side cancellation and the hard delete.  Every
// route behind it requires the ADMIN role.
type AdminHandler struct {
	Stadiums *repository.StadiumRepo
	Slips    *repository.PaymentSlipRepo
	Svc      *service.BookingService
}

func NewAdminHandler(stadiums *repository.StadiumRepo, slips *repository.PaymentSlipRepo, svc *service.BookingService) *AdminHandler {
	if stadiums == nil || slips == nil || svc == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Stadiums: stadiums, Slips: slips, Svc: svc}
}

type stadiumReq struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	OpenTime     string  `json:"open_time"`
	CloseTime    string  `json:"close_time"`
	PricePerHour float64 `json:"price_per_hour"`
	IsActive     *bool   `json:"is_active"`
}

func (r *stadiumReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.PricePerHour <= 0 {
		return "price_per_hour must be positive"
	}
	if r.OpenTime == "" || r.CloseTime == "" {
		return "open_time and close_time are required"
	}
	return ""
}

// CreateStadium handles POST /v1/admin/stadiums.
func (h *AdminHandler) CreateStadium(c echo.Context) error {
	var req stadiumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	s := &model.Stadium{
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		PricePerHour: req.PricePerHour,
		IsActive:     active,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Stadiums.Create(ctx, s); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a stadium with this name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create stadium failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateStadium handles PUT /v1/admin/stadiums/:id.
func (h *AdminHandler) UpdateStadium(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stadium id"})
	}
	var req stadiumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	s := &model.Stadium{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		PricePerHour: req.PricePerHour,
		IsActive:     active,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Stadiums.Update(ctx, s); err != nil {
		if errors.Is(err, repository.ErrStadiumNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "stadium not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update stadium failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeactivateStadium handles DELETE /v1/admin/stadiums/:id.  The row
// stays for the booking snapshots that reference its name.
func (h *AdminHandler) DeactivateStadium(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stadium id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Stadiums.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStadiumNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "stadium not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate stadium failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBookings handles GET /v1/admin/bookings with optional stadium,
// date, status, payment_status and user_id query filters.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	f := repository.ListFilter{
		Stadium:       c.QueryParam("stadium"),
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
	}
	if ds := c.QueryParam("date"); ds != "" {
		d, err := time.Parse(model.DateLayout, ds)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		f.Date = &d
	}
	if us := c.QueryParam("user_id"); us != "" {
		uid, err := strconv.ParseUint(us, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
		f.UserID = &uid
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	out, err := h.Svc.ListAll(ctx, f)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// GetBooking handles GET /v1/admin/bookings/:id and includes the
// payment-slip audit trail alongside the booking.
func (h *AdminHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	b, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondBookingError(c, err)
	}
	slips, err := h.Slips.ListByBooking(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load payment slips failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b, "payment_slips": slips})
}

// CancelBooking handles POST /v1/admin/bookings/:id/cancel.  Unlike
// the customer route it is not owner-scoped.
func (h *AdminHandler) CancelBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req cancelReq
	_ = c.Bind(&req)
	if strings.TrimSpace(req.Reason) == "" {
		req.Reason = "cancelled by admin"
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	arch, err := h.Svc.Cancel(ctx, id, nil, req.Reason)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled": arch})
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id, the hard delete
// with no archive row.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Svc.Delete(ctx, id); err != nil {
		return respondBookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
