// Package main room booking API.
//
// @title           Room Booking API
// @version         1.0
// @description     Meeting room reservations (rooms, bookings, admin approval).
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
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/NathnaelYimer/room-booking-system/app/echoServer"
	adminctrl "github.com/NathnaelYimer/room-booking-system/app/echoServer/controller/admin"
	authctrl "github.com/NathnaelYimer/room-booking-system/app/echoServer/controller/auth"
	reservationctrl "github.com/NathnaelYimer/room-booking-system/app/echoServer/controller/reservation"
	roomctrl "github.com/NathnaelYimer/room-booking-system/app/echoServer/controller/room"
	"github.com/NathnaelYimer/room-booking-system/app/echoServer/validation"
	"github.com/NathnaelYimer/room-booking-system/config"
	reservationrepo "github.com/NathnaelYimer/room-booking-system/repository/reservation"
	roomrepo "github.com/NathnaelYimer/room-booking-system/repository/room"
	userrepo "github.com/NathnaelYimer/room-booking-system/repository/user"
	authsvc "github.com/NathnaelYimer/room-booking-system/service/auth"
	"github.com/NathnaelYimer/room-booking-system/service/booking"
	roomsvc "github.com/NathnaelYimer/room-booking-system/service/room"
	"github.com/NathnaelYimer/room-booking-system/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	mr := roomrepo.New(db)
	rr := reservationrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, cfg.AdminPromotionSecret)
	ms := roomsvc.New(mr)
	bs := booking.New(rr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	roomC := &roomctrl.Controller{Svc: ms, V: v, Log: log}
	reservationC := &reservationctrl.Controller{Svc: bs, V: v, Log: log}
	adminC := &adminctrl.Controller{Svc: bs, Log: log}

	// stale-pending sweeper
	cleaner := booking.NewCleaner(rr)
	go func() {
		t := time.NewTicker(15 * time.Minute)
		defer t.Stop()
		for range t.C {
			n, err := cleaner.ReleaseStale(ctx)
			if err != nil {
				log.Error("stale pending sweep failed", "err", err)
				continue
			}
			if n > 0 {
				log.Info("cancelled stale pending reservations", "count", n)
			}
		}
	}()

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Room:        roomC,
		Reservation: reservationC,
		Admin:       adminC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
