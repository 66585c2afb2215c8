package admin

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/NathnaelYimer/room-booking-system/service/booking"
)

type Controller struct {
	Svc booking.Service
	Log *slog.Logger
}

func actor(c echo.Context) booking.Actor {
	uid, _ := c.Get("user_id").(uuid.UUID)
	role, _ := c.Get("role").(string)
	return booking.Actor{ID: uid, Role: role}
}

// POST /v1/admin/reservations/:id/confirm
func (h *Controller) Confirm(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	res, err := h.Svc.Confirm(c.Request().Context(), actor(c), id)
	if err != nil {
		switch booking.Code(err) {
		case booking.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case booking.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "reservation not found"})
		case booking.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"message": "conflict with an existing confirmed booking"})
		case booking.ErrCancelled:
			return c.JSON(http.StatusConflict, echo.Map{"message": "reservation is cancelled"})
		default:
			h.Log.Error("reservation confirm", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "reservation": res})
}

// GET /v1/admin/reservations
func (h *Controller) ListReservations(c echo.Context) error {
	rows, err := h.Svc.AllReservations(c.Request().Context())
	if err != nil {
		h.Log.Error("admin reservations", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/admin/stats
func (h *Controller) Stats(c echo.Context) error {
	s, err := h.Svc.Stats(c.Request().Context())
	if err != nil {
		h.Log.Error("admin stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, s)
}
