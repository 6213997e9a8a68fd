package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/roman3350/shareit/app/echoServer"
	bookingctrl "github.com/roman3350/shareit/app/echoServer/controller/booking"
	itemctrl "github.com/roman3350/shareit/app/echoServer/controller/item"
	requestctrl "github.com/roman3350/shareit/app/echoServer/controller/request"
	userctrl "github.com/roman3350/shareit/app/echoServer/controller/user"
	"github.com/roman3350/shareit/app/echoServer/validation"
	"github.com/roman3350/shareit/config"
	bookingrepo "github.com/roman3350/shareit/repository/booking"
	commentrepo "github.com/roman3350/shareit/repository/comment"
	itemrepo "github.com/roman3350/shareit/repository/item"
	requestrepo "github.com/roman3350/shareit/repository/request"
	userrepo "github.com/roman3350/shareit/repository/user"
	bookingsvc "github.com/roman3350/shareit/service/booking"
	itemsvc "github.com/roman3350/shareit/service/item"
	requestsvc "github.com/roman3350/shareit/service/request"
	usersvc "github.com/roman3350/shareit/service/user"
	"github.com/roman3350/shareit/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	br := bookingrepo.New(db)
	rr := requestrepo.New(db)
	cr := commentrepo.New(db)

	// services
	us := usersvc.New(ur)
	is := itemsvc.New(ir, ur, br, cr, rr)
	bs := bookingsvc.New(br, ur, ir)
	rs := requestsvc.New(rr, ur, ir)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	itemC := &itemctrl.Controller{Svc: is, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status": "ok",
		})
	})

	echoServer.Register(e, echoServer.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
