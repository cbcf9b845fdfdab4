package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	CreateFunc  func(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)
	ListFunc    func(ctx context.Context) ([]domain.User, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
		Create []struct {
			User *domain.User
		}
		Update []struct {
			ID    uuid.UUID
			Patch domain.UserPatch
		}
		List []struct{}
	}
	lockGetByID sync.RWMutex
	lockCreate  sync.RWMutex
	lockUpdate  sync.RWMutex
	lockList    sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct{ User *domain.User }{User: user}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, user)
}

func (mock *userRepoMock) CreateCalls() []struct{ User *domain.User } {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userRepoMock) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	if mock.UpdateFunc == nil {
		panic("userRepoMock.UpdateFunc: method is nil but userRepo.Update was just called")
	}
	callInfo := struct {
		ID    uuid.UUID
		Patch domain.UserPatch
	}{ID: id, Patch: patch}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, patch)
}

func (mock *userRepoMock) UpdateCalls() []struct {
	ID    uuid.UUID
	Patch domain.UserPatch
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	if mock.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{}{})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *userRepoMock) ListCalls() []struct{} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
