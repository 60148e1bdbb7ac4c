package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Madruu/astrocode-project/model"
	authsvc "github.com/Madruu/astrocode-project/service/auth"
	"github.com/Madruu/astrocode-project/util/apperr"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Signup registers a new account
// @Summary      Register account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.SignupReq  true  "Signup payload"
// @Success      201  {object}  map[string]any
// @Failure      400,409,500  {object}  map[string]any
// @Router       /auth/signup [post]
func (ct *Controller) Signup(c echo.Context) error {
	var req model.SignupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	u, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch apperr.CodeOf(err) {
		case authsvc.ErrEmailTaken:
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
		case authsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("signup failed", "err", err, "req_id", rid, "path", c.Path())
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered",
		"user":    u,
		"token":   token,
	})
}

// Signin logs a user in
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.SigninReq  true  "Signin payload"
// @Success      200  {object}  map[string]any
// @Failure      400,401,500  {object}  map[string]any
// @Router       /auth/signin [post]
func (ct *Controller) Signin(c echo.Context) error {
	var req model.SigninReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	u, token, err := ct.Svc.SignIn(c.Request().Context(), req)
	if err != nil {
		switch apperr.CodeOf(err) {
		case authsvc.ErrInvalidCreds:
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid email or password"})
		case authsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("signin failed", "err", err, "req_id", rid, "path", c.Path())
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":         u.Name,
		"account_type": u.AccountType,
		"token":        token,
	})
}
