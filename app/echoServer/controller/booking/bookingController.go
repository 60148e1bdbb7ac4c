package booking

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Madruu/astrocode-project/app/echoServer/jwtx"
	"github.com/Madruu/astrocode-project/model"
	bookingsvc "github.com/Madruu/astrocode-project/service/booking"
	"github.com/Madruu/astrocode-project/util/apperr"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /booking/create
// @Summary Create a booking
// @Success 201 {object} model.Booking
// @Failure 400,404,409,422,500
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	scheduledDate, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid scheduledDate"})
	}
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	b, err := h.Svc.Create(c.Request().Context(), uid, req.TaskID, scheduledDate, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// POST /booking/cancel
// @Summary Cancel a booking
// @Success 200 {object} model.Booking
// @Failure 400,403,404,409,500
func (h *Controller) Cancel(c echo.Context) error {
	var req CancelBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	b, err := h.Svc.Cancel(c.Request().Context(), uid, req.BookingID, req.Reason)
	if err != nil {
		return h.fail(c, "booking cancel", err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /booking/list
func (h *Controller) List(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("booking list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch apperr.CodeOf(err) {
	case bookingsvc.ErrInvalidInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid or past date"})
	case bookingsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case bookingsvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case bookingsvc.ErrSlotUnavailable:
		return c.JSON(http.StatusConflict, echo.Map{"message": "time slot already booked"})
	case bookingsvc.ErrAlreadyCancelled:
		return c.JSON(http.StatusConflict, echo.Map{"message": "booking already cancelled"})
	case bookingsvc.ErrCannotCancelPast:
		return c.JSON(http.StatusConflict, echo.Map{"message": "cannot cancel a past booking"})
	case bookingsvc.ErrCancelLimit:
		return c.JSON(http.StatusConflict, echo.Map{"message": "monthly cancellation limit reached"})
	case bookingsvc.ErrPaymentDeclined:
		return c.JSON(http.StatusConflict, echo.Map{"message": "payment declined"})
	case bookingsvc.ErrInsufficientBalance:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "insufficient balance"})
	case bookingsvc.ErrBalanceCap:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "balance cap exceeded"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
