// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/NathnaelYimer/room-booking-system/model"
	userrepo "github.com/NathnaelYimer/room-booking-system/repository/user"
	"github.com/NathnaelYimer/room-booking-system/util/hash"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
	promoteFn func(ctx context.Context, email string) (bool, error)
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) PromoteByEmail(ctx context.Context, email string) (bool, error) {
	if m.promoteFn == nil {
		return false, nil
	}
	return m.promoteFn(ctx, email)
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = id
			return nil
		},
	}
	svc := New(m, "test-secret", "")

	req := model.RegisterReq{
		FullName: "Nathnael Yimer",
		Email:    "USER@Example.COM",
		Password: "supersecret",
	}

	u, tok, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, id, u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, model.RoleUser, u.Role)
	require.NotEmpty(t, u.PasswordHash)
	require.True(t, hash.Check(u.PasswordHash, "supersecret"))
}

func TestRegister_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", "")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    " ",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		},
	}
	svc := New(m, "test-secret", "")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		FullName: "x",
		Email:    "taken@example.com",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret", "")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		FullName: "x",
		Email:    "ok@example.com",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_Success(t *testing.T) {
	hashed, err := hash.HashPassword("supersecret")
	require.NoError(t, err)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: uuid.New(), Email: email, Role: model.RoleAdmin, PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret", "")

	u, tok, err := svc.Login(context.Background(), model.LoginReq{Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, model.RoleAdmin, u.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := hash.HashPassword("supersecret")
	require.NoError(t, err)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: uuid.New(), Email: email, PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret", "")

	_, _, err = svc.Login(context.Background(), model.LoginReq{Email: "a@example.com", Password: "nope"})
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", "")
	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "ghost@example.com", Password: "x"})
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestPromote_BadSecret(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", "promotion-secret")
	err := svc.Promote(context.Background(), "a@example.com", "wrong")
	require.Equal(t, ErrBadSecret, Code(err))
}

func TestPromote_SecretUnset(t *testing.T) {
	// no configured secret means the endpoint is disabled
	svc := New(&mockRepo{}, "test-secret", "")
	err := svc.Promote(context.Background(), "a@example.com", "")
	require.Equal(t, ErrBadSecret, Code(err))
}

func TestPromote_Success(t *testing.T) {
	var promoted string
	m := &mockRepo{
		promoteFn: func(ctx context.Context, email string) (bool, error) {
			promoted = email
			return true, nil
		},
	}
	svc := New(m, "test-secret", "promotion-secret")

	require.NoError(t, svc.Promote(context.Background(), "a@example.com", "promotion-secret"))
	require.Equal(t, "a@example.com", promoted)
}

func TestPromote_NotFound(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret", "promotion-secret")
	err := svc.Promote(context.Background(), "ghost@example.com", "promotion-secret")
	require.Equal(t, ErrNotFound, Code(err))
}
