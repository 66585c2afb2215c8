package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/NathnaelYimer/room-booking-system/model"
	reservationrepo "github.com/NathnaelYimer/room-booking-system/repository/reservation"
)

// errors used by controllers

type ErrCode string

const (
	ErrRoomNotFound ErrCode = "ROOM_NOT_FOUND"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrConflict     ErrCode = "CONFLICT"
	ErrNotOwner     ErrCode = "NOT_OWNER"
	ErrForbidden    ErrCode = "FORBIDDEN"
	ErrCancelled    ErrCode = "CANCELLED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// ValidationError carries the full field-tagged rule list of a
// rejected slot.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking times (%d errors)", len(e.Fields))
}

// Actor is the identity performing a lifecycle operation, always passed
// explicitly; nothing below the controllers reads ambient session state.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// dto

type CreateInput struct {
	RoomID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Notes     *string
	// Pending requests the admin-gated flow instead of auto-approval.
	Pending bool
}

type Created struct {
	Reservation *model.Reservation
	TotalCost   float64
}

// Row / Stats = repository shapes
type Row = reservationrepo.Row
type Stats = reservationrepo.Stats

type Repo interface {
	Insert(ctx context.Context, res *model.Reservation) error
	ByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error
	ConfirmedByRoom(ctx context.Context, roomID, exclude uuid.UUID) ([]model.Reservation, error)
	RoomByID(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Row, error)
	ListWindow(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]Row, error)
	CountStats(ctx context.Context) (Stats, error)
}

type Service interface {
	// Create: validate the slot, reject on conflict with a confirmed
	// booking, persist. Self-service bookings are confirmed directly.
	Create(ctx context.Context, actor Actor, in CreateInput) (*Created, error)

	// Confirm: admin approval of a pending reservation. Idempotent on
	// already-confirmed rows.
	Confirm(ctx context.Context, actor Actor, reservationID uuid.UUID) (*model.Reservation, error)

	// Cancel: owner or admin; frees the slot. Idempotent on
	// already-cancelled rows.
	Cancel(ctx context.Context, actor Actor, reservationID uuid.UUID) error

	// Availability: confirmed reservations touching [from, to].
	Availability(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]model.Reservation, error)

	MyReservations(ctx context.Context, userID uuid.UUID) ([]Row, error)
	AllReservations(ctx context.Context) ([]Row, error)
	Stats(ctx context.Context) (Stats, error)
}

// ----- Service implementation -----

type service struct {
	r Repo
}

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, actor Actor, in CreateInput) (*Created, error) {
	if verrs := ValidateTimes(in.StartTime, in.EndTime, time.Now().UTC()); len(verrs) > 0 {
		return nil, &ValidationError{Fields: verrs}
	}

	room, err := s.r.RoomByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, makeErr(ErrRoomNotFound)
	}

	// Fast-path conflict check. The exclusion constraint on confirmed
	// rows is what actually decides concurrent writers.
	if err := s.checkConflict(ctx, in.RoomID, in.StartTime, in.EndTime, uuid.Nil); err != nil {
		return nil, err
	}

	status := model.ReservationConfirmed
	if in.Pending {
		status = model.ReservationPending
	}

	res := &model.Reservation{
		RoomID:    in.RoomID,
		UserID:    actor.ID,
		StartTime: in.StartTime.UTC(),
		EndTime:   in.EndTime.UTC(),
		Status:    status,
		Notes:     in.Notes,
	}
	if err := s.r.Insert(ctx, res); err != nil {
		if cerr := mapConflictErr(err); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}

	return &Created{
		Reservation: res,
		TotalCost:   TotalCost(room.PricePerHour, res.StartTime, res.EndTime),
	}, nil
}

func (s *service) Confirm(ctx context.Context, actor Actor, reservationID uuid.UUID) (*model.Reservation, error) {
	if !actor.IsAdmin() {
		return nil, makeErr(ErrForbidden)
	}

	res, err := s.r.ByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, makeErr(ErrNotFound)
	}

	switch res.Status {
	case model.ReservationConfirmed:
		// already approved, nothing to do
		return res, nil
	case model.ReservationCancelled:
		return nil, makeErr(ErrCancelled)
	}

	// Re-evaluate against everything except the row itself.
	if err := s.checkConflict(ctx, res.RoomID, res.StartTime, res.EndTime, res.ID); err != nil {
		return nil, err
	}

	if err := s.r.SetStatus(ctx, res.ID, model.ReservationConfirmed); err != nil {
		if cerr := mapConflictErr(err); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	res.Status = model.ReservationConfirmed
	return res, nil
}

func (s *service) Cancel(ctx context.Context, actor Actor, reservationID uuid.UUID) error {
	res, err := s.r.ByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return makeErr(ErrNotFound)
	}
	if res.UserID != actor.ID && !actor.IsAdmin() {
		return makeErr(ErrNotOwner)
	}
	if res.Status == model.ReservationCancelled {
		return nil
	}
	return s.r.SetStatus(ctx, res.ID, model.ReservationCancelled)
}

func (s *service) Availability(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]model.Reservation, error) {
	return s.r.ListWindow(ctx, roomID, from, to)
}

func (s *service) MyReservations(ctx context.Context, userID uuid.UUID) ([]Row, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) AllReservations(ctx context.Context) ([]Row, error) {
	return s.r.ListAll(ctx)
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	return s.r.CountStats(ctx)
}

func (s *service) checkConflict(ctx context.Context, roomID uuid.UUID, start, end time.Time, exclude uuid.UUID) error {
	existing, err := s.r.ConfirmedByRoom(ctx, roomID, exclude)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if Overlaps(start, end, other.StartTime, other.EndTime) {
			return makeErr(ErrConflict)
		}
	}
	return nil
}

// mapConflictErr recognizes the commit-time exclusion constraint on
// confirmed rows; the loser of a concurrent check-then-insert race
// lands here.
func mapConflictErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
		return makeErr(ErrConflict)
	}
	return nil
}
