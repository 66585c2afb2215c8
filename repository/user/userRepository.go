package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/NathnaelYimer/room-booking-system/model"
	"github.com/NathnaelYimer/room-booking-system/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	PromoteByEmail(ctx context.Context, email string) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users(email, full_name, role, password_hash)
		VALUES (lower($1),$2,$3,$4)
		RETURNING id, created_at`,
		u.Email, u.FullName, u.Role, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, `
        SELECT id, email, full_name, role, password_hash, created_at
        FROM users
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) PromoteByEmail(ctx context.Context, email string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE users
		SET role = 'admin'
		WHERE lower(email) = lower($1)`,
		email,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
