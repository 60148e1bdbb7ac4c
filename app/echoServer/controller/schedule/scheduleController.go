package schedule

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Madruu/astrocode-project/app/echoServer/jwtx"
	schedulesvc "github.com/Madruu/astrocode-project/service/schedule"
	"github.com/Madruu/astrocode-project/util/apperr"
)

type Controller struct {
	Svc schedulesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type BlockSlotReq struct {
	TaskID int64  `json:"taskId" validate:"required,gt=0"`
	SlotAt string `json:"slotAt" validate:"required"`
}

// GET /schedule/slots?taskId=5&date=2026-09-01
func (h *Controller) Slots(c echo.Context) error {
	taskID, err := strconv.ParseInt(c.QueryParam("taskId"), 10, 64)
	if err != nil || taskID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid taskId"})
	}
	day, err := time.ParseInLocation("2006-01-02", c.QueryParam("date"), time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date, want YYYY-MM-DD"})
	}

	slots, err := h.Svc.AvailableSlots(c.Request().Context(), taskID, day)
	if err != nil {
		return h.fail(c, "available slots", err)
	}
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(time.RFC3339))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /schedule/blocked?taskId=5&date=2026-09-01
func (h *Controller) Blocked(c echo.Context) error {
	taskID, err := strconv.ParseInt(c.QueryParam("taskId"), 10, 64)
	if err != nil || taskID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid taskId"})
	}
	day, err := time.ParseInLocation("2006-01-02", c.QueryParam("date"), time.Local)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date, want YYYY-MM-DD"})
	}

	slots, err := h.Svc.Blocked(c.Request().Context(), taskID, day)
	if err != nil {
		return h.fail(c, "blocked slots", err)
	}
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(time.RFC3339))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// POST /schedule/block
func (h *Controller) Block(c echo.Context) error {
	req, at, ok := h.bindSlot(c)
	if !ok {
		return nil
	}
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if err := h.Svc.Block(c.Request().Context(), uid, req.TaskID, at); err != nil {
		return h.fail(c, "block slot", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "blocked"})
}

// DELETE /schedule/block
func (h *Controller) Unblock(c echo.Context) error {
	req, at, ok := h.bindSlot(c)
	if !ok {
		return nil
	}
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if err := h.Svc.Unblock(c.Request().Context(), uid, req.TaskID, at); err != nil {
		return h.fail(c, "unblock slot", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "unblocked"})
}

// bindSlot binds and validates the block/unblock payload, writing the error
// response itself when ok is false.
func (h *Controller) bindSlot(c echo.Context) (req BlockSlotReq, at time.Time, ok bool) {
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
		return req, at, false
	}
	if err := h.V.Struct(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
		return req, at, false
	}
	at, err := time.Parse(time.RFC3339, req.SlotAt)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid slotAt"})
		return req, at, false
	}
	return req, at, true
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch apperr.CodeOf(err) {
	case schedulesvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "task not found"})
	case schedulesvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case schedulesvc.ErrBadSlot:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "slot must be on the hour between 08:00 and 18:00"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
