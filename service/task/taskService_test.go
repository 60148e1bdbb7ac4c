package tasksvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Madruu/astrocode-project/model"
	tasksvc "github.com/Madruu/astrocode-project/service/task"
	"github.com/Madruu/astrocode-project/util/apperr"
	"github.com/Madruu/astrocode-project/util/money"
)

type repoMock struct {
	createFn func(ctx context.Context, task *model.Task) error
	updateFn func(ctx context.Context, id int64, title, description string, price money.Amount) error
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context) ([]model.Task, error)
	detailFn func(ctx context.Context, id int64) (*model.Task, error)
}

func (m *repoMock) Create(ctx context.Context, task *model.Task) error {
	if m.createFn == nil {
		task.ID = 1
		return nil
	}
	return m.createFn(ctx, task)
}
func (m *repoMock) Update(ctx context.Context, id int64, title, description string, price money.Amount) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, id, title, description, price)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.Task, error) { return m.listFn(ctx) }
func (m *repoMock) Detail(ctx context.Context, id int64) (*model.Task, error) {
	return m.detailFn(ctx, id)
}

type usersMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *usersMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}

func provider(id int64) *model.User {
	return &model.User{ID: id, AccountType: model.AccountProvider}
}

func TestCreate_ProviderOnly(t *testing.T) {
	users := &usersMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return &model.User{ID: id, AccountType: model.AccountUser}, nil
	}}
	svc := tasksvc.New(&repoMock{}, users)

	_, err := svc.Create(context.Background(), 1, "Corte", "d", 8000)
	require.Equal(t, tasksvc.ErrNotProvider, apperr.CodeOf(err))
}

func TestCreate_Success(t *testing.T) {
	users := &usersMock{byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return provider(id), nil
	}}
	svc := tasksvc.New(&repoMock{}, users)

	task, err := svc.Create(context.Background(), 2, "Corte Masculino", "Corte com tesoura", 8000)
	require.NoError(t, err)
	require.Equal(t, int64(1), task.ID)
	require.Equal(t, int64(2), task.ProviderID)
	require.Equal(t, money.Amount(8000), task.Price)
}

func TestCreate_Validation(t *testing.T) {
	svc := tasksvc.New(&repoMock{}, &usersMock{})

	_, err := svc.Create(context.Background(), 2, "", "d", 8000)
	require.Equal(t, tasksvc.ErrBadInput, apperr.CodeOf(err))

	_, err = svc.Create(context.Background(), 2, "Corte", "d", -1)
	require.Equal(t, tasksvc.ErrBadInput, apperr.CodeOf(err))
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	repo := &repoMock{detailFn: func(ctx context.Context, id int64) (*model.Task, error) {
		return &model.Task{ID: id, Title: "Corte", ProviderID: 2}, nil
	}}
	svc := tasksvc.New(repo, &usersMock{})

	_, err := svc.Update(context.Background(), 3, 1, "Novo", "d", 9000)
	require.Equal(t, tasksvc.ErrForbidden, apperr.CodeOf(err))

	task, err := svc.Update(context.Background(), 2, 1, "Novo", "d", 9000)
	require.NoError(t, err)
	require.Equal(t, "Novo", task.Title)
	require.Equal(t, money.Amount(9000), task.Price)
}

func TestDelete_OwnershipEnforced(t *testing.T) {
	repo := &repoMock{detailFn: func(ctx context.Context, id int64) (*model.Task, error) {
		return &model.Task{ID: id, ProviderID: 2}, nil
	}}
	svc := tasksvc.New(repo, &usersMock{})

	err := svc.Delete(context.Background(), 3, 1)
	require.Equal(t, tasksvc.ErrForbidden, apperr.CodeOf(err))

	require.NoError(t, svc.Delete(context.Background(), 2, 1))
}

func TestDetail_NotFound(t *testing.T) {
	repo := &repoMock{detailFn: func(ctx context.Context, id int64) (*model.Task, error) {
		return nil, sql.ErrNoRows
	}}
	svc := tasksvc.New(repo, &usersMock{})

	_, err := svc.Detail(context.Background(), 99)
	require.Equal(t, tasksvc.ErrNotFound, apperr.CodeOf(err))
}

func TestList_PassThrough(t *testing.T) {
	repo := &repoMock{listFn: func(ctx context.Context) ([]model.Task, error) {
		return []model.Task{{ID: 1}, {ID: 2}}, nil
	}}
	svc := tasksvc.New(repo, &usersMock{})

	tasks, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
}
