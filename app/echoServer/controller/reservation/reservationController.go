package reservation

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/NathnaelYimer/room-booking-system/service/booking"
)

type Controller struct {
	Svc booking.Service
	V   *validator.Validate
	Log *slog.Logger
}

func actor(c echo.Context) booking.Actor {
	uid, _ := c.Get("user_id").(uuid.UUID)
	role, _ := c.Get("role").(string)
	return booking.Actor{ID: uid, Role: role}
}

// POST /v1/reservations
func (h *Controller) Create(c echo.Context) error {
	var req CreateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid room_id"})
	}

	out, err := h.Svc.Create(c.Request().Context(), actor(c), booking.CreateInput{
		RoomID:    roomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		Pending:   req.Pending,
	})
	if err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "validation error",
				"errors":  verr.Fields,
			})
		}
		switch booking.Code(err) {
		case booking.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"message": "time slot is already booked"})
		case booking.ErrRoomNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "room not found"})
		default:
			h.Log.Error("reservation create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation": out.Reservation,
		"total_cost":  out.TotalCost,
	})
}

// POST /v1/reservations/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Cancel(c.Request().Context(), actor(c), id); err != nil {
		h.Log.Error("reservation cancel", "err", err)
		switch booking.Code(err) {
		case booking.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case booking.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "reservation not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cancelled"})
}

// GET /v1/reservations
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.MyReservations(c.Request().Context(), actor(c).ID)
	if err != nil {
		h.Log.Error("reservation list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rooms/:id/availability?startDate&endDate
func (h *Controller) Availability(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	startDate := c.QueryParam("startDate")
	endDate := c.QueryParam("endDate")
	if startDate == "" || endDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "startDate and endDate are required"})
	}
	from, err := time.Parse(time.RFC3339, startDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid startDate"})
	}
	to, err := time.Parse(time.RFC3339, endDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid endDate"})
	}

	rows, err := h.Svc.Availability(c.Request().Context(), roomID, from, to)
	if err != nil {
		h.Log.Error("availability", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
