package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	adminctrl "github.com/NathnaelYimer/room-booking-system/app/echoServer/controller/admin"
	authctrl "github.com/NathnaelYimer/room-booking-system/app/echoServer/controller/auth"
	reservationctrl "github.com/NathnaelYimer/room-booking-system/app/echoServer/controller/reservation"
	roomctrl "github.com/NathnaelYimer/room-booking-system/app/echoServer/controller/room"
	"github.com/NathnaelYimer/room-booking-system/app/echoServer/jwtx"
)

type C struct {
	Auth        *authctrl.Controller
	Room        *roomctrl.Controller
	Reservation *reservationctrl.Controller
	Admin       *adminctrl.Controller
	JWTSecret   string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// secret-gated, not JWT
	pub.POST("/admin/promote", c.Auth.Promote)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	auth.Use(identity())

	// Rooms
	auth.GET("/rooms", c.Room.List)
	auth.GET("/rooms/:id", c.Room.Detail)
	auth.GET("/rooms/:id/availability", c.Reservation.Availability)
	// Admin room management
	auth.POST("/rooms", c.Room.Create, RequireAdmin)
	auth.PUT("/rooms/:id", c.Room.Update, RequireAdmin)
	auth.DELETE("/rooms/:id", c.Room.Delete, RequireAdmin)

	// Reservations
	auth.GET("/reservations", c.Reservation.Mine)
	auth.POST("/reservations", c.Reservation.Create)
	auth.POST("/reservations/:id/cancel", c.Reservation.Cancel)

	// Admin
	adm := auth.Group("/admin", RequireAdmin)
	adm.GET("/reservations", c.Admin.ListReservations)
	adm.POST("/reservations/:id/confirm", c.Admin.Confirm)
	adm.GET("/stats", c.Admin.Stats)
}

// identity pulls user id + role out of the verified token so handlers
// and RequireAdmin never touch JWT claims directly.
func identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, err := jwtx.UserIDFromContext(c)
			if err != nil {
				rid := c.Response().Header().Get(echo.HeaderXRequestID)
				c.Logger().Warnf("[AUTH] %v req_id=%s ip=%s", err, rid, c.RealIP())
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, err := jwtx.RoleFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			c.Set("user_id", uid)
			c.Set("role", role)
			return next(c)
		}
	}
}
