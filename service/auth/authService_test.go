package authsvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Madruu/astrocode-project/model"
	userrepo "github.com/Madruu/astrocode-project/repository/user"
	"github.com/Madruu/astrocode-project/util/apperr"
	"github.com/Madruu/astrocode-project/util/hash"
)

type mockRepo struct {
	createFn  func(ctx context.Context, u *model.User) error
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id int64) (*model.User, error)
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}
func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmailFn(ctx, email)
}
func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{createFn: func(ctx context.Context, u *model.User) error {
		u.ID = 42
		return nil
	}}
	svc := New(m, "test-secret")

	u, tok, err := svc.Register(ctx, model.SignupReq{
		Name:     "Maria Silva",
		Email:    "MARIA@Example.COM ",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "maria@example.com", u.Email)
	// Unspecified account types default to USER.
	require.Equal(t, model.AccountUser, u.AccountType)
	require.True(t, hash.Check(u.PasswordHash, "supersecret"))
}

func TestRegister_ProviderAccount(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")

	u, _, err := svc.Register(context.Background(), model.SignupReq{
		Name:        "Barbearia Central",
		Email:       "shop@example.com",
		Password:    "supersecret",
		AccountType: "PROVIDER",
	})
	require.NoError(t, err)
	require.Equal(t, model.AccountProvider, u.AccountType)
}

func TestRegister_Validation(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")
	ctx := context.Background()

	_, _, err := svc.Register(ctx, model.SignupReq{Name: "x", Email: "", Password: "supersecret"})
	require.Equal(t, ErrBadInput, apperr.CodeOf(err))

	_, _, err = svc.Register(ctx, model.SignupReq{Name: "x", Email: "a@b.c", Password: "short"})
	require.Equal(t, ErrBadInput, apperr.CodeOf(err))

	_, _, err = svc.Register(ctx, model.SignupReq{Name: "x", Email: "a@b.c", Password: "supersecret", AccountType: "ADMIN"})
	require.Equal(t, ErrBadInput, apperr.CodeOf(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	m := &mockRepo{createFn: func(ctx context.Context, u *model.User) error {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(context.Background(), model.SignupReq{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "supersecret",
	})
	require.Equal(t, ErrEmailTaken, apperr.CodeOf(err))
}

func TestSignIn_Success(t *testing.T) {
	hashed, err := hash.HashPassword("supersecret")
	require.NoError(t, err)

	m := &mockRepo{byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
		return &model.User{ID: 7, Email: email, PasswordHash: hashed, AccountType: model.AccountUser}, nil
	}}
	svc := New(m, "test-secret")

	u, tok, err := svc.SignIn(context.Background(), model.SigninReq{
		Email:    "maria@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	hashed, err := hash.HashPassword("supersecret")
	require.NoError(t, err)

	m := &mockRepo{byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
		return &model.User{ID: 7, PasswordHash: hashed}, nil
	}}
	svc := New(m, "test-secret")

	_, _, err = svc.SignIn(context.Background(), model.SigninReq{
		Email:    "maria@example.com",
		Password: "wrong",
	})
	require.Equal(t, ErrInvalidCreds, apperr.CodeOf(err))
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.SignIn(context.Background(), model.SigninReq{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.Equal(t, ErrInvalidCreds, apperr.CodeOf(err))
}
