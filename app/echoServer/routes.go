// app/echoServer/routes.go
package echoServer

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Madruu/astrocode-project/app/echoServer/controller/auth"
	"github.com/Madruu/astrocode-project/app/echoServer/controller/booking"
	"github.com/Madruu/astrocode-project/app/echoServer/controller/payment"
	"github.com/Madruu/astrocode-project/app/echoServer/controller/schedule"
	"github.com/Madruu/astrocode-project/app/echoServer/controller/task"
)

type C struct {
	Auth      *auth.Controller
	Task      *task.Controller
	Booking   *booking.Controller
	Payment   *payment.Controller
	Schedule  *schedule.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/auth/signup", c.Auth.Signup)
	e.POST("/auth/signin", c.Auth.Signin)

	// Authenticated
	api := e.Group("")
	api.Use(JWT(c.JWTSecret)...)

	// Tasks
	api.GET("/task/list", c.Task.List)
	api.GET("/task/:id", c.Task.Detail)
	api.POST("/task", c.Task.Create)
	api.PUT("/task/:id", c.Task.Update)
	api.DELETE("/task/:id", c.Task.Delete)

	// Bookings
	api.POST("/booking/create", c.Booking.Create)
	api.POST("/booking/cancel", c.Booking.Cancel)
	api.GET("/booking/list", c.Booking.List)

	// Wallet
	api.POST("/payment/create", c.Payment.Deposit)
	api.GET("/payment/wallet", c.Payment.Wallet)
	api.GET("/payment/list", c.Payment.Ledger)

	// Schedule
	api.GET("/schedule/slots", c.Schedule.Slots)
	api.GET("/schedule/blocked", c.Schedule.Blocked)
	api.POST("/schedule/block", c.Schedule.Block)
	api.DELETE("/schedule/block", c.Schedule.Unblock)
}
