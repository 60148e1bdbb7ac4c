package task

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Madruu/astrocode-project/app/echoServer/jwtx"
	tasksvc "github.com/Madruu/astrocode-project/service/task"
	"github.com/Madruu/astrocode-project/util/apperr"
)

type Controller struct {
	Svc tasksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /task
func (h *Controller) Create(c echo.Context) error {
	var req CreateTaskReq
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

	t, err := h.Svc.Create(c.Request().Context(), uid, req.Title, req.Description, req.Price)
	if err != nil {
		return h.fail(c, "task create", err)
	}
	return c.JSON(http.StatusCreated, t)
}

// PUT /task/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateTaskReq
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

	t, err := h.Svc.Update(c.Request().Context(), uid, id, req.Title, req.Description, req.Price)
	if err != nil {
		return h.fail(c, "task update", err)
	}
	return c.JSON(http.StatusOK, t)
}

// DELETE /task/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	if err := h.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return h.fail(c, "task delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// GET /task/list
func (h *Controller) List(c echo.Context) error {
	tasks, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.fail(c, "task list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": tasks})
}

// GET /task/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	t, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "task detail", err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch apperr.CodeOf(err) {
	case tasksvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "task not found"})
	case tasksvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case tasksvc.ErrNotProvider:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "only provider accounts can manage tasks"})
	case tasksvc.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
