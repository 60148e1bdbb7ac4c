package payment

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Madruu/astrocode-project/app/echoServer/jwtx"
	paymentsvc "github.com/Madruu/astrocode-project/service/payment"
	"github.com/Madruu/astrocode-project/util/apperr"
	"github.com/Madruu/astrocode-project/util/money"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type DepositReq struct {
	Amount   money.Amount `json:"amount" validate:"required,gt=0"`
	Currency string       `json:"currency"`
}

// POST /payment/create
// @Summary Deposit into the wallet
// @Success 201 {object} model.Payment
// @Failure 400,404,422,500
func (h *Controller) Deposit(c echo.Context) error {
	var req DepositReq
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

	entry, err := h.Svc.Deposit(c.Request().Context(), uid, req.Amount, req.Currency)
	if err != nil {
		switch apperr.CodeOf(err) {
		case paymentsvc.ErrInvalidAmount:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid amount"})
		case paymentsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		case paymentsvc.ErrBalanceCap:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "balance cannot exceed 1000000"})
		default:
			h.Log.Error("deposit", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, entry)
}

// GET /payment/wallet
func (h *Controller) Wallet(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	summary, err := h.Svc.Wallet(c.Request().Context(), uid)
	if err != nil {
		if apperr.CodeOf(err) == paymentsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("wallet summary", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, summary)
}

// GET /payment/list
func (h *Controller) Ledger(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.Ledger(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("ledger list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
