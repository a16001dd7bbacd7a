package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goalpark/stadium-booking/internal/booking"
	"github.com/goalpark/stadium-booking/internal/service"
)

// BookingHandler serves the customer-facing booking lifecycle.
// Creation and slip upload accept guests (OptionalJWT); listing,
// detail and cancellation require an authenticated owner.
type BookingHandler struct {
	Svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc}
}

type createBookingReq struct {
	StadiumName   string  `json:"stadium_name"`
	BookerName    string  `json:"booker_name"`
	BookerPhone   *string `json:"booker_phone"`
	BookerEmail   *string `json:"booker_email"`
	Date          string  `json:"booking_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	PaymentMethod string  `json:"payment_method"`
	Notes         *string `json:"notes"`

	// Accepted for older clients; start_time/end_time win when both
	// are present.
	TimeFrom string `json:"time_from"`
	TimeTo   string `json:"time_to"`
}

func (r *createBookingReq) normalize() {
	if r.StartTime == "" {
		r.StartTime = r.TimeFrom
	}
	if r.EndTime == "" {
		r.EndTime = r.TimeTo
	}
}

type checkConflictReq struct {
	StadiumName string `json:"stadium_name"`
	Date        string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TimeFrom    string `json:"time_from"`
	TimeTo      string `json:"time_to"`
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 10*time.Second)
}

// Create handles POST /v1/bookings.  Guests may book: user_id is
// recorded only when a valid token accompanies the request.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.normalize()

	ctx, cancel := requestCtx(c)
	defer cancel()

	b, err := h.Svc.Create(ctx, service.CreateBookingRequest{
		UserID:        optionalUserID(c),
		StadiumName:   req.StadiumName,
		BookerName:    req.BookerName,
		BookerPhone:   req.BookerPhone,
		BookerEmail:   req.BookerEmail,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// CheckConflict handles POST /v1/bookings/check-conflict, the advisory
// pre-check the booking form runs before submitting.
func (h *BookingHandler) CheckConflict(c echo.Context) error {
	var req checkConflictReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.StartTime == "" {
		req.StartTime = req.TimeFrom
	}
	if req.EndTime == "" {
		req.EndTime = req.TimeTo
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	rep, err := h.Svc.CheckConflict(ctx, req.StadiumName, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

// ListMine handles GET /v1/bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	out, err := h.Svc.ListForUser(ctx, uid)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// GetMine handles GET /v1/bookings/:id, scoped to the owner.
func (h *BookingHandler) GetMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	b, err := h.Svc.GetForUser(ctx, id, uid)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Cancel handles DELETE /v1/bookings/:id.  The booking is archived
// with refund bookkeeping, then removed.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req cancelReq
	_ = c.Bind(&req)

	ctx, cancel := requestCtx(c)
	defer cancel()

	arch, err := h.Svc.Cancel(ctx, id, &uid, req.Reason)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled": arch})
}

// ListCancelled handles GET /v1/bookings/cancelled.
func (h *BookingHandler) ListCancelled(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	out, err := h.Svc.ListCancelledForUser(ctx, uid)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled_bookings": out})
}

// UploadSlip handles POST /v1/bookings/:id/slip (multipart, field
// "slip").  On success the booking comes back confirmed and paid.
func (h *BookingHandler) UploadSlip(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	fh, err := c.FormFile("slip")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slip file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable slip file"})
	}
	defer src.Close()

	ctx, cancel := requestCtx(c)
	defer cancel()

	b, err := h.Svc.AttachPaymentEvidence(ctx, id, optionalUserID(c), &booking.SlipUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     src,
	})
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
