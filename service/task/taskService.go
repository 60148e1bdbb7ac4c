package tasksvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Madruu/astrocode-project/model"
	taskrepo "github.com/Madruu/astrocode-project/repository/task"
	userrepo "github.com/Madruu/astrocode-project/repository/user"
	"github.com/Madruu/astrocode-project/util/apperr"
	"github.com/Madruu/astrocode-project/util/money"
)

const (
	ErrNotFound    apperr.Code = "TASK_NOT_FOUND"
	ErrForbidden   apperr.Code = "FORBIDDEN"
	ErrNotProvider apperr.Code = "NOT_PROVIDER"
	ErrBadInput    apperr.Code = "BAD_INPUT"
)

type Repo interface {
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, id int64, title, description string, price money.Amount) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Task, error)
	Detail(ctx context.Context, id int64) (*model.Task, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	Create(ctx context.Context, providerID int64, title, description string, price money.Amount) (*model.Task, error)
	Update(ctx context.Context, requesterID, taskID int64, title, description string, price money.Amount) (*model.Task, error)
	Delete(ctx context.Context, requesterID, taskID int64) error
	List(ctx context.Context) ([]model.Task, error)
	Detail(ctx context.Context, id int64) (*model.Task, error)
}

type service struct {
	r  Repo
	ur Users
}

func New(r Repo, ur Users) Service { return &service{r: r, ur: ur} }

var _ Repo = (taskrepo.Repo)(nil)
var _ Users = (userrepo.Repo)(nil)

func (s *service) Create(ctx context.Context, providerID int64, title, description string, price money.Amount) (*model.Task, error) {
	if title == "" || price < 0 {
		return nil, apperr.New(ErrBadInput)
	}

	provider, err := s.ur.ByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(ErrNotFound)
		}
		return nil, err
	}
	// Only PROVIDER accounts may offer tasks.
	if provider.AccountType != model.AccountProvider {
		return nil, apperr.New(ErrNotProvider)
	}

	t := &model.Task{
		Title:       title,
		Description: description,
		Price:       price,
		ProviderID:  providerID,
	}
	if err := s.r.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, requesterID, taskID int64, title, description string, price money.Amount) (*model.Task, error) {
	if title == "" || price < 0 {
		return nil, apperr.New(ErrBadInput)
	}

	t, err := s.ownedTask(ctx, requesterID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, taskID, title, description, price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(ErrNotFound)
		}
		return nil, err
	}
	t.Title, t.Description, t.Price = title, description, price
	return t, nil
}

func (s *service) Delete(ctx context.Context, requesterID, taskID int64) error {
	if _, err := s.ownedTask(ctx, requesterID, taskID); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Task, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Task, error) {
	t, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (s *service) ownedTask(ctx context.Context, requesterID, taskID int64) (*model.Task, error) {
	t, err := s.r.Detail(ctx, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(ErrNotFound)
		}
		return nil, err
	}
	if t.ProviderID != requesterID {
		return nil, apperr.New(ErrForbidden)
	}
	return t, nil
}
