package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Madruu/astrocode-project/model"
	userrepo "github.com/Madruu/astrocode-project/repository/user"
	"github.com/Madruu/astrocode-project/util/apperr"
	"github.com/Madruu/astrocode-project/util/hash"
	jwtutil "github.com/Madruu/astrocode-project/util/jwt"
)

const (
	ErrEmailTaken   apperr.Code = "EMAIL_TAKEN"
	ErrBadInput     apperr.Code = "BAD_INPUT"
	ErrInvalidCreds apperr.Code = "INVALID_CREDENTIALS"
)

const tokenTTLHours = 24

type Service interface {
	Register(ctx context.Context, req model.SignupReq) (*model.User, string, error)
	SignIn(ctx context.Context, req model.SigninReq) (*model.User, string, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.SignupReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || len(req.Password) < 6 {
		return nil, "", apperr.New(ErrBadInput)
	}

	accountType := model.AccountType(req.AccountType)
	if accountType == "" {
		accountType = model.AccountUser
	}
	if accountType != model.AccountUser && accountType != model.AccountProvider {
		return nil, "", apperr.New(ErrBadInput)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		AccountType:  accountType,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, "", apperr.Wrap(ErrEmailTaken, err)
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.AccountType), tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) SignIn(ctx context.Context, req model.SigninReq) (*model.User, string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", apperr.New(ErrBadInput)
	}

	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", apperr.New(ErrInvalidCreds)
		}
		return nil, "", err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", apperr.New(ErrInvalidCreds)
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.AccountType), tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
