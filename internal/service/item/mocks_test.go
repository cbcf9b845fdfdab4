package item

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

var (
	_ itemRepo    = &itemRepoMock{}
	_ historyRepo = &historyRepoMock{}
	_ txManager   = &txManagerMock{}
	_ detailCache = &detailCacheMock{}
)

type itemRepoMock struct {
	CreateFunc     func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	UpdateFunc     func(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.Item, error)
	SoftDeleteFunc func(ctx context.Context, id uuid.UUID) error
	ListFunc       func(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)

	calls struct {
		Create []struct {
			Item *domain.Item
		}
		GetByID []struct {
			ID uuid.UUID
		}
		Update []struct {
			ID    uuid.UUID
			Patch domain.ItemPatch
		}
		SoftDelete []struct {
			ID uuid.UUID
		}
		List []struct {
			Filter domain.ItemFilter
		}
	}
	lockCreate     sync.RWMutex
	lockGetByID    sync.RWMutex
	lockUpdate     sync.RWMutex
	lockSoftDelete sync.RWMutex
	lockList       sync.RWMutex
}

func (mock *itemRepoMock) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if mock.CreateFunc == nil {
		panic("itemRepoMock.CreateFunc: method is nil but itemRepo.Create was just called")
	}
	callInfo := struct{ Item *domain.Item }{Item: item}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *itemRepoMock) CreateCalls() []struct{ Item *domain.Item } {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *itemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if mock.GetByIDFunc == nil {
		panic("itemRepoMock.GetByIDFunc: method is nil but itemRepo.GetByID was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *itemRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *itemRepoMock) Update(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.Item, error) {
	if mock.UpdateFunc == nil {
		panic("itemRepoMock.UpdateFunc: method is nil but itemRepo.Update was just called")
	}
	callInfo := struct {
		ID    uuid.UUID
		Patch domain.ItemPatch
	}{ID: id, Patch: patch}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, patch)
}

func (mock *itemRepoMock) UpdateCalls() []struct {
	ID    uuid.UUID
	Patch domain.ItemPatch
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *itemRepoMock) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if mock.SoftDeleteFunc == nil {
		panic("itemRepoMock.SoftDeleteFunc: method is nil but itemRepo.SoftDelete was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, id)
}

func (mock *itemRepoMock) SoftDeleteCalls() []struct{ ID uuid.UUID } {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}

func (mock *itemRepoMock) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	if mock.ListFunc == nil {
		panic("itemRepoMock.ListFunc: method is nil but itemRepo.List was just called")
	}
	callInfo := struct{ Filter domain.ItemFilter }{Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *itemRepoMock) ListCalls() []struct{ Filter domain.ItemFilter } {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

type historyRepoMock struct {
	AppendFunc     func(ctx context.Context, h domain.ItemHistory) (domain.ItemHistory, error)
	ListByItemFunc func(ctx context.Context, itemID uuid.UUID) ([]domain.ItemHistory, error)

	calls struct {
		Append []struct {
			H domain.ItemHistory
		}
		ListByItem []struct {
			ItemID uuid.UUID
		}
	}
	lockAppend     sync.RWMutex
	lockListByItem sync.RWMutex
}

func (mock *historyRepoMock) Append(ctx context.Context, h domain.ItemHistory) (domain.ItemHistory, error) {
	if mock.AppendFunc == nil {
		panic("historyRepoMock.AppendFunc: method is nil but historyRepo.Append was just called")
	}
	callInfo := struct{ H domain.ItemHistory }{H: h}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, h)
}

func (mock *historyRepoMock) AppendCalls() []struct{ H domain.ItemHistory } {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.ItemHistory, error) {
	if mock.ListByItemFunc == nil {
		panic("historyRepoMock.ListByItemFunc: method is nil but historyRepo.ListByItem was just called")
	}
	callInfo := struct{ ItemID uuid.UUID }{ItemID: itemID}
	mock.lockListByItem.Lock()
	mock.calls.ListByItem = append(mock.calls.ListByItem, callInfo)
	mock.lockListByItem.Unlock()
	return mock.ListByItemFunc(ctx, itemID)
}

func (mock *historyRepoMock) ListByItemCalls() []struct{ ItemID uuid.UUID } {
	mock.lockListByItem.RLock()
	calls := mock.calls.ListByItem
	mock.lockListByItem.RUnlock()
	return calls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

type detailCacheMock struct {
	GetFunc   func(ctx context.Context, id uuid.UUID) (*domain.Item, bool)
	SetFunc   func(ctx context.Context, item *domain.Item)
	EvictFunc func(ctx context.Context, id uuid.UUID)

	calls struct {
		Get []struct {
			ID uuid.UUID
		}
		Set []struct {
			Item *domain.Item
		}
		Evict []struct {
			ID uuid.UUID
		}
	}
	lockGet   sync.RWMutex
	lockSet   sync.RWMutex
	lockEvict sync.RWMutex
}

func (mock *detailCacheMock) Get(ctx context.Context, id uuid.UUID) (*domain.Item, bool) {
	if mock.GetFunc == nil {
		panic("detailCacheMock.GetFunc: method is nil but detailCache.Get was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *detailCacheMock) GetCalls() []struct{ ID uuid.UUID } {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *detailCacheMock) Set(ctx context.Context, item *domain.Item) {
	if mock.SetFunc == nil {
		panic("detailCacheMock.SetFunc: method is nil but detailCache.Set was just called")
	}
	callInfo := struct{ Item *domain.Item }{Item: item}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	mock.SetFunc(ctx, item)
}

func (mock *detailCacheMock) SetCalls() []struct{ Item *domain.Item } {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *detailCacheMock) Evict(ctx context.Context, id uuid.UUID) {
	if mock.EvictFunc == nil {
		panic("detailCacheMock.EvictFunc: method is nil but detailCache.Evict was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockEvict.Lock()
	mock.calls.Evict = append(mock.calls.Evict, callInfo)
	mock.lockEvict.Unlock()
	mock.EvictFunc(ctx, id)
}

func (mock *detailCacheMock) EvictCalls() []struct{ ID uuid.UUID } {
	mock.lockEvict.RLock()
	calls := mock.calls.Evict
	mock.lockEvict.RUnlock()
	return calls
}
