// Package main astrocode booking API.
//
// @title           Astrocode Booking API
// @version         1.0
// @description     Booking platform (accounts, tasks, schedules, wallet).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Madruu/astrocode-project/app/echoServer"
	authctrl "github.com/Madruu/astrocode-project/app/echoServer/controller/auth"
	bookingctrl "github.com/Madruu/astrocode-project/app/echoServer/controller/booking"
	paymentctrl "github.com/Madruu/astrocode-project/app/echoServer/controller/payment"
	schedulectrl "github.com/Madruu/astrocode-project/app/echoServer/controller/schedule"
	taskctrl "github.com/Madruu/astrocode-project/app/echoServer/controller/task"
	"github.com/Madruu/astrocode-project/app/echoServer/validation"
	"github.com/Madruu/astrocode-project/config"
	bookingrepo "github.com/Madruu/astrocode-project/repository/booking"
	gatewayrepo "github.com/Madruu/astrocode-project/repository/gateway"
	paymentrepo "github.com/Madruu/astrocode-project/repository/payment"
	seedrepo "github.com/Madruu/astrocode-project/repository/seed"
	taskrepo "github.com/Madruu/astrocode-project/repository/task"
	userrepo "github.com/Madruu/astrocode-project/repository/user"
	authsvc "github.com/Madruu/astrocode-project/service/auth"
	bookingsvc "github.com/Madruu/astrocode-project/service/booking"
	paymentsvc "github.com/Madruu/astrocode-project/service/payment"
	schedulesvc "github.com/Madruu/astrocode-project/service/schedule"
	tasksvc "github.com/Madruu/astrocode-project/service/task"
	"github.com/Madruu/astrocode-project/util/database"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DemoSeed {
		if err := seedrepo.Apply(ctx, db); err != nil {
			log.Error("demo seed failed", "err", err)
			os.Exit(1)
		}
		log.Info("demo seed applied")
	}

	// repos
	ur := userrepo.New(db)
	tr := taskrepo.New(db)
	bookingStore := bookingrepo.New(db)
	paymentStore := paymentrepo.New(db)

	var gw gatewayrepo.Repo
	if cfg.GatewayMode == "sandbox" {
		gw = gatewayrepo.NewSandbox()
	} else {
		gw = gatewayrepo.NewHTTP(cfg.GatewayURL, cfg.GatewayAPIKey)
	}

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ts := tasksvc.New(tr, ur)
	ss := schedulesvc.New(bookingStore, tr)
	bs := bookingsvc.New(bookingStore, gw, cfg.CancelLimitPerMonth)
	ps := paymentsvc.New(paymentStore, ur)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	taskC := &taskctrl.Controller{Svc: ts, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, V: v, Log: log}
	scheduleC := &schedulectrl.Controller{Svc: ss, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Task:     taskC,
		Booking:  bookingC,
		Payment:  paymentC,
		Schedule: scheduleC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env, "gateway_mode", cfg.GatewayMode)

	e.Logger.Fatal(e.Start(":" + port))
}
