package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

var (
	_ userRepo   = &userRepoMock{}
	_ jwtManager = &jwtManagerMock{}
)

type userRepoMock struct {
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)

	calls struct {
		GetByUsername []struct {
			Username string
		}
	}
	lockGetByUsername sync.RWMutex
}

func (mock *userRepoMock) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if mock.GetByUsernameFunc == nil {
		panic("userRepoMock.GetByUsernameFunc: method is nil but userRepo.GetByUsername was just called")
	}
	callInfo := struct{ Username string }{Username: username}
	mock.lockGetByUsername.Lock()
	mock.calls.GetByUsername = append(mock.calls.GetByUsername, callInfo)
	mock.lockGetByUsername.Unlock()
	return mock.GetByUsernameFunc(ctx, username)
}

func (mock *userRepoMock) GetByUsernameCalls() []struct{ Username string } {
	mock.lockGetByUsername.RLock()
	calls := mock.calls.GetByUsername
	mock.lockGetByUsername.RUnlock()
	return calls
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc func(userID uuid.UUID, role string) (string, error)
	ValidateAccessTokenFunc func(token string) (uuid.UUID, string, error)

	calls struct {
		GenerateAccessToken []struct {
			UserID uuid.UUID
			Role   string
		}
		ValidateAccessToken []struct {
			Token string
		}
	}
	lockGenerateAccessToken sync.RWMutex
	lockValidateAccessToken sync.RWMutex
}

func (mock *jwtManagerMock) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	if mock.GenerateAccessTokenFunc == nil {
		panic("jwtManagerMock.GenerateAccessTokenFunc: method is nil but jwtManager.GenerateAccessToken was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		Role   string
	}{UserID: userID, Role: role}
	mock.lockGenerateAccessToken.Lock()
	mock.calls.GenerateAccessToken = append(mock.calls.GenerateAccessToken, callInfo)
	mock.lockGenerateAccessToken.Unlock()
	return mock.GenerateAccessTokenFunc(userID, role)
}

func (mock *jwtManagerMock) GenerateAccessTokenCalls() []struct {
	UserID uuid.UUID
	Role   string
} {
	mock.lockGenerateAccessToken.RLock()
	calls := mock.calls.GenerateAccessToken
	mock.lockGenerateAccessToken.RUnlock()
	return calls
}

func (mock *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, string, error) {
	if mock.ValidateAccessTokenFunc == nil {
		panic("jwtManagerMock.ValidateAccessTokenFunc: method is nil but jwtManager.ValidateAccessToken was just called")
	}
	callInfo := struct{ Token string }{Token: token}
	mock.lockValidateAccessToken.Lock()
	mock.calls.ValidateAccessToken = append(mock.calls.ValidateAccessToken, callInfo)
	mock.lockValidateAccessToken.Unlock()
	return mock.ValidateAccessTokenFunc(token)
}

func (mock *jwtManagerMock) ValidateAccessTokenCalls() []struct{ Token string } {
	mock.lockValidateAccessToken.RLock()
	calls := mock.calls.ValidateAccessToken
	mock.lockValidateAccessToken.RUnlock()
	return calls
}
