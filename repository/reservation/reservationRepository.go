// repository/reservation/repo.go
package reservationrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NathnaelYimer/room-booking-system/model"
	"github.com/NathnaelYimer/room-booking-system/util/database"
)

// Row is a reservation joined with the room it occupies, the shape the
// dashboard and calendar views consume.
type Row struct {
	ID           uuid.UUID `json:"id"`
	RoomID       uuid.UUID `json:"room_id"`
	RoomName     string    `json:"room_name"`
	PricePerHour float64   `json:"price_per_hour"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UserEmail    *string   `json:"user_email,omitempty"` // admin listing only
}

type Stats struct {
	Rooms        int64 `json:"rooms"`
	Reservations int64 `json:"reservations"`
	Pending      int64 `json:"pending"`
	Users        int64 `json:"users"`
}

type Repo interface {
	Insert(ctx context.Context, res *model.Reservation) error
	ByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error

	// ConfirmedByRoom feeds the conflict checker. exclude skips one
	// reservation (uuid.Nil means none), used when re-evaluating a
	// pending row against everything but itself.
	ConfirmedByRoom(ctx context.Context, roomID, exclude uuid.UUID) ([]model.Reservation, error)

	RoomByID(ctx context.Context, roomID uuid.UUID) (*model.Room, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]Row, error)
	ListWindow(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]Row, error)
	CountStats(ctx context.Context) (Stats, error)

	CancelStalePending(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `
		INSERT INTO reservations (room_id, user_id, start_time, end_time, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q,
		res.RoomID, res.UserID, res.StartTime, res.EndTime, res.Status, res.Notes,
	).Scan(&res.ID, &res.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	const q = `
		SELECT id, room_id, user_id, start_time, end_time, status, notes, created_at
		FROM reservations
		WHERE id = $1`
	var res model.Reservation
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&res.ID, &res.RoomID, &res.UserID, &res.StartTime, &res.EndTime, &res.Status, &res.Notes, &res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error {
	const q = `
		UPDATE reservations
		SET status = $2
		WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, id, status)
	return err
}

func (r *repo) ConfirmedByRoom(ctx context.Context, roomID, exclude uuid.UUID) ([]model.Reservation, error) {
	const q = `
		SELECT id, room_id, user_id, start_time, end_time, status, notes, created_at
		FROM reservations
		WHERE room_id = $1
		AND status = 'confirmed'
		AND ($2::uuid = '00000000-0000-0000-0000-000000000000' OR id <> $2)
		ORDER BY start_time`
	rows, err := r.db.Pool.Query(ctx, q, roomID, exclude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *repo) RoomByID(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	const q = `
		SELECT id, name, description, capacity, price_per_hour, amenities, created_at
		FROM rooms
		WHERE id = $1`
	var m model.Room
	err := r.db.Pool.QueryRow(ctx, q, roomID).Scan(
		&m.ID, &m.Name, &m.Description, &m.Capacity, &m.PricePerHour, &m.Amenities, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Row, error) {
	const q = `
			SELECT
			r.id             AS id,
			r.room_id        AS room_id,
			m.name           AS room_name,
			m.price_per_hour AS price_per_hour,
			r.start_time     AS start_time,
			r.end_time       AS end_time,
			r.status         AS status,
			r.notes          AS notes,
			r.created_at     AS created_at
			FROM reservations r
			JOIN rooms m ON m.id = r.room_id
			WHERE r.user_id = $1
			ORDER BY r.start_time, r.id`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.ID, &h.RoomID, &h.RoomName, &h.PricePerHour,
			&h.StartTime, &h.EndTime, &h.Status, &h.Notes, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListWindow returns confirmed reservations touching [from, to],
// ordered by start time. Read-only, feeds the calendar view.
func (r *repo) ListWindow(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]model.Reservation, error) {
	const q = `
		SELECT id, room_id, user_id, start_time, end_time, status, notes, created_at
		FROM reservations
		WHERE room_id = $1
		AND status = 'confirmed'
		AND end_time >= $2
		AND start_time <= $3
		ORDER BY start_time`
	rows, err := r.db.Pool.Query(ctx, q, roomID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *repo) ListAll(ctx context.Context) ([]Row, error) {
	const q = `
			SELECT
			r.id             AS id,
			r.room_id        AS room_id,
			m.name           AS room_name,
			m.price_per_hour AS price_per_hour,
			r.start_time     AS start_time,
			r.end_time       AS end_time,
			r.status         AS status,
			r.notes          AS notes,
			r.created_at     AS created_at,
			u.email          AS user_email
			FROM reservations r
			JOIN rooms m ON m.id = r.room_id
			JOIN users u ON u.id = r.user_id
			ORDER BY r.created_at DESC, r.id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.ID, &h.RoomID, &h.RoomName, &h.PricePerHour,
			&h.StartTime, &h.EndTime, &h.Status, &h.Notes, &h.CreatedAt, &h.UserEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) CountStats(ctx context.Context) (Stats, error) {
	const q = `
		SELECT
			(SELECT count(*) FROM rooms),
			(SELECT count(*) FROM reservations),
			(SELECT count(*) FROM reservations WHERE status = 'pending'),
			(SELECT count(*) FROM users)`
	var s Stats
	err := r.db.Pool.QueryRow(ctx, q).Scan(&s.Rooms, &s.Reservations, &s.Pending, &s.Users)
	return s, err
}

// CancelStalePending cancels pending rows whose slot has fully passed;
// they can never be meaningfully confirmed anymore.
func (r *repo) CancelStalePending(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE reservations
		SET status = 'cancelled'
		WHERE status = 'pending'
		AND end_time < $1`
	tag, err := r.db.Pool.Exec(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanReservations(rows pgx.Rows) ([]model.Reservation, error) {
	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(
			&res.ID, &res.RoomID, &res.UserID, &res.StartTime, &res.EndTime, &res.Status, &res.Notes, &res.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
