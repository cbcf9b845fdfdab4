package attachment

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

var (
	_ attachmentRepo = &attachmentRepoMock{}
	_ itemRepo       = &itemRepoMock{}
	_ fileStore      = &fileStoreMock{}
	_ thumbnailer    = &thumbnailerMock{}
)

type attachmentRepoMock struct {
	CreateFunc     func(ctx context.Context, a domain.Attachment) (domain.Attachment, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByItemFunc func(ctx context.Context, itemID uuid.UUID) ([]domain.Attachment, error)

	calls struct {
		Create []struct {
			A domain.Attachment
		}
		GetByID []struct {
			ID uuid.UUID
		}
		ListByItem []struct {
			ItemID uuid.UUID
		}
	}
	lockCreate     sync.RWMutex
	lockGetByID    sync.RWMutex
	lockListByItem sync.RWMutex
}

func (mock *attachmentRepoMock) Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	if mock.CreateFunc == nil {
		panic("attachmentRepoMock.CreateFunc: method is nil but attachmentRepo.Create was just called")
	}
	callInfo := struct{ A domain.Attachment }{A: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *attachmentRepoMock) CreateCalls() []struct{ A domain.Attachment } {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *attachmentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	if mock.GetByIDFunc == nil {
		panic("attachmentRepoMock.GetByIDFunc: method is nil but attachmentRepo.GetByID was just called")
	}
	callInfo := struct{ ID uuid.UUID }{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *attachmentRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *attachmentRepoMock) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Attachment, error) {
	if mock.ListByItemFunc == nil {
		panic("attachmentRepoMock.ListByItemFunc: method is nil but attachmentRepo.ListByItem was just called")
	}
	callInfo := struct{ ItemID uuid.UUID }{ItemID: itemID}
	mock.lockListByItem.Lock()
	mock.calls.ListByItem = append(mock.calls.ListByItem, callInfo)
	mock.lockListByItem.Unlock()
	return mock.ListByItemFunc(ctx, itemID)
}

func (mock *attachmentRepoMock) ListByItemCalls() []struct{ ItemID uuid.UUID } {
	mock.lockListByItem.RLock()
	calls := mock.calls.ListByItem
	mock.lockListByItem.RUnlock()
	return calls
}

type itemRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	calls struct {
		GetByID []struct {
			ID uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
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

type fileStoreMock struct {
	SaveFunc func(fileName string, r io.Reader) (string, int64, error)
	OpenFunc func(relPath string) (io.ReadSeekCloser, error)

	calls struct {
		Save []struct {
			FileName string
		}
		Open []struct {
			RelPath string
		}
	}
	lockSave sync.RWMutex
	lockOpen sync.RWMutex
}

func (mock *fileStoreMock) Save(fileName string, r io.Reader) (string, int64, error) {
	if mock.SaveFunc == nil {
		panic("fileStoreMock.SaveFunc: method is nil but fileStore.Save was just called")
	}
	callInfo := struct{ FileName string }{FileName: fileName}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(fileName, r)
}

func (mock *fileStoreMock) SaveCalls() []struct{ FileName string } {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *fileStoreMock) Open(relPath string) (io.ReadSeekCloser, error) {
	if mock.OpenFunc == nil {
		panic("fileStoreMock.OpenFunc: method is nil but fileStore.Open was just called")
	}
	callInfo := struct{ RelPath string }{RelPath: relPath}
	mock.lockOpen.Lock()
	mock.calls.Open = append(mock.calls.Open, callInfo)
	mock.lockOpen.Unlock()
	return mock.OpenFunc(relPath)
}

func (mock *fileStoreMock) OpenCalls() []struct{ RelPath string } {
	mock.lockOpen.RLock()
	calls := mock.calls.Open
	mock.lockOpen.RUnlock()
	return calls
}

type thumbnailerMock struct {
	GenerateFunc func(relPath string) (string, error)

	calls struct {
		Generate []struct {
			RelPath string
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *thumbnailerMock) Generate(relPath string) (string, error) {
	if mock.GenerateFunc == nil {
		panic("thumbnailerMock.GenerateFunc: method is nil but thumbnailer.Generate was just called")
	}
	callInfo := struct{ RelPath string }{RelPath: relPath}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(relPath)
}

func (mock *thumbnailerMock) GenerateCalls() []struct{ RelPath string } {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
