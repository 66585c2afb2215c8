package roomrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NathnaelYimer/room-booking-system/model"
	"github.com/NathnaelYimer/room-booking-system/util/database"
)

type Repo interface {
	Create(ctx context.Context, m *model.Room) error
	Update(ctx context.Context, m *model.Room) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]model.Room, error)
	Detail(ctx context.Context, id uuid.UUID) (*model.Room, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, m *model.Room) error {
	const q = `
INSERT INTO rooms (name, description, capacity, price_per_hour, amenities)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q,
		m.Name, m.Description, m.Capacity, m.PricePerHour, m.Amenities,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *repo) Update(ctx context.Context, m *model.Room) (bool, error) {
	const q = `
UPDATE rooms
SET name = $2,
    description = $3,
    capacity = $4,
    price_per_hour = $5,
    amenities = $6
WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q,
		m.ID, m.Name, m.Description, m.Capacity, m.PricePerHour, m.Amenities,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) List(ctx context.Context) ([]model.Room, error) {
	const q = `
	SELECT id, name, description, capacity, price_per_hour, amenities, created_at
	FROM rooms
	ORDER BY name`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var m model.Room
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Capacity, &m.PricePerHour, &m.Amenities, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	const q = `
SELECT id, name, description, capacity, price_per_hour, amenities, created_at
FROM rooms
WHERE id = $1`
	var m model.Room
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
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
