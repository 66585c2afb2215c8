package roomsvc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/NathnaelYimer/room-booking-system/model"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrNotFound       = errors.New("room not found")
	ErrInUse          = errors.New("room has reservations")
)

type Input struct {
	Name         string
	Description  string
	Capacity     int
	PricePerHour float64
	Amenities    []string
}

type Repo interface {
	Create(ctx context.Context, m *model.Room) error
	Update(ctx context.Context, m *model.Room) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]model.Room, error)
	Detail(ctx context.Context, id uuid.UUID) (*model.Room, error)
}

type Service interface {
	Create(ctx context.Context, in Input) (*model.Room, error)
	Update(ctx context.Context, id uuid.UUID, in Input) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Room, error)
	Detail(ctx context.Context, id uuid.UUID) (*model.Room, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, in Input) (*model.Room, error) {
	if in.Name == "" || in.Capacity <= 0 || in.PricePerHour < 0 {
		return nil, ErrInvalidPayload
	}
	m := &model.Room{
		Name:         in.Name,
		Description:  in.Description,
		Capacity:     in.Capacity,
		PricePerHour: in.PricePerHour,
		Amenities:    in.Amenities,
	}
	if err := s.r.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in Input) error {
	if in.Name == "" || in.Capacity <= 0 || in.PricePerHour < 0 {
		return ErrInvalidPayload
	}
	m := &model.Room{
		ID:           id,
		Name:         in.Name,
		Description:  in.Description,
		Capacity:     in.Capacity,
		PricePerHour: in.PricePerHour,
		Amenities:    in.Amenities,
	}
	ok, err := s.r.Update(ctx, m)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrInUse
		}
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Room, error) { return s.r.List(ctx) }
func (s *service) Detail(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return s.r.Detail(ctx, id)
}
