// service/room/room_service_test.go
package roomsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/NathnaelYimer/room-booking-system/model"
	roomsvc "github.com/NathnaelYimer/room-booking-system/service/room"
)

type repoMock struct {
	createFn func(ctx context.Context, m *model.Room) error
	updateFn func(ctx context.Context, m *model.Room) (bool, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (bool, error)
	listFn   func(ctx context.Context) ([]model.Room, error)
	detailFn func(ctx context.Context, id uuid.UUID) (*model.Room, error)
}

func (m *repoMock) Create(ctx context.Context, r *model.Room) error {
	if m.createFn == nil {
		r.ID = uuid.New()
		return nil
	}
	return m.createFn(ctx, r)
}
func (m *repoMock) Update(ctx context.Context, r *model.Room) (bool, error) {
	if m.updateFn == nil {
		return true, nil
	}
	return m.updateFn(ctx, r)
}
func (m *repoMock) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.deleteFn == nil {
		return true, nil
	}
	return m.deleteFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.Room, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}
func (m *repoMock) Detail(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	if m.detailFn == nil {
		return nil, nil
	}
	return m.detailFn(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	s := roomsvc.New(&repoMock{})
	ctx := context.Background()

	if _, err := s.Create(ctx, roomsvc.Input{Name: "", Capacity: 4, PricePerHour: 10}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.Create(ctx, roomsvc.Input{Name: "Boardroom", Capacity: 0, PricePerHour: 10}); err == nil {
		t.Fatal("expected error for zero capacity")
	}
	if _, err := s.Create(ctx, roomsvc.Input{Name: "Boardroom", Capacity: 4, PricePerHour: -1}); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestCreate_Success(t *testing.T) {
	s := roomsvc.New(&repoMock{})

	m, err := s.Create(context.Background(), roomsvc.Input{
		Name:         "Boardroom",
		Capacity:     8,
		PricePerHour: 25,
		Amenities:    []string{"projector", "whiteboard"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, r *model.Room) (bool, error) { return false, nil },
	}
	s := roomsvc.New(m)

	err := s.Update(context.Background(), uuid.New(), roomsvc.Input{Name: "x", Capacity: 2})
	if !errors.Is(err, roomsvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestDelete_RoomInUse(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
		},
	}
	s := roomsvc.New(m)

	err := s.Delete(context.Background(), uuid.New())
	if !errors.Is(err, roomsvc.ErrInUse) {
		t.Fatalf("got %v; want ErrInUse", err)
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context) ([]model.Room, error) {
			return []model.Room{{Name: "A"}}, nil
		},
		detailFn: func(ctx context.Context, id uuid.UUID) (*model.Room, error) {
			return &model.Room{ID: id}, nil
		},
	}
	s := roomsvc.New(m)

	rows, err := s.List(context.Background())
	if err != nil || len(rows) != 1 {
		t.Fatalf("List got %v %v; want 1 row", rows, err)
	}
	if _, err := s.Detail(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Detail error: %v", err)
	}
}
