package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileshare/fileshare-backend/internal/auth"
	"github.com/fileshare/fileshare-backend/internal/domain"
	"github.com/fileshare/fileshare-backend/pkg/ctxutil"
)

func newTestService(users userRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(logger, users)
}

func adminCtx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	return ctxutil.WithRole(ctx, "ADMIN")
}

func userCtx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	return ctxutil.WithRole(ctx, "USER")
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestService_List_Success(t *testing.T) {
	t.Parallel()

	expected := []domain.User{
		{ID: uuid.New(), Username: "alice", Role: domain.UserRoleAdmin},
		{ID: uuid.New(), Username: "bob", Role: domain.UserRoleUser},
	}

	users := &userRepoMock{
		ListFunc: func(ctx context.Context) ([]domain.User, error) {
			return expected, nil
		},
	}

	svc := newTestService(users)
	got, err := svc.List(adminCtx())

	require.NoError(t, err)
	assert.Equal(t, expected, got)
	assert.Len(t, users.ListCalls(), 1)
}

func TestService_List_NotAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)
	got, err := svc.List(userCtx())

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, got)
}

func TestService_List_NoRoleInContext(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)
	got, err := svc.List(context.Background())

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, got)
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestService_Create_Success(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		CreateFunc: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			assert.Equal(t, "carol", user.Username)
			assert.Equal(t, domain.UserRoleUser, user.Role, "role defaults to USER")
			assert.True(t, user.IsActive)
			assert.NotEqual(t, "plain-pw", user.PasswordHash, "password must be hashed")
			assert.True(t, auth.CheckPassword(user.PasswordHash, "plain-pw"))
			return user, nil
		},
	}

	svc := newTestService(users)
	created, err := svc.Create(adminCtx(), CreateInput{
		Username: "carol",
		Password: "plain-pw",
	})

	require.NoError(t, err)
	assert.Equal(t, "carol", created.Username)
	assert.Len(t, users.CreateCalls(), 1)
}

func TestService_Create_ExplicitAdminRole(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		CreateFunc: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			assert.Equal(t, domain.UserRoleAdmin, user.Role)
			return user, nil
		},
	}

	svc := newTestService(users)
	_, err := svc.Create(adminCtx(), CreateInput{
		Username: "root2",
		Password: "pw",
		Role:     ptr(domain.UserRoleAdmin),
	})

	require.NoError(t, err)
}

func TestService_Create_NotAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)
	created, err := svc.Create(userCtx(), CreateInput{Username: "x", Password: "pw"})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, created)
}

func TestService_Create_ValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{
			name:  "missing username",
			input: CreateInput{Password: "pw"},
		},
		{
			name:  "missing password",
			input: CreateInput{Username: "x"},
		},
		{
			name:  "unknown role",
			input: CreateInput{Username: "x", Password: "pw", Role: ptr(domain.UserRole("ROOT"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(nil)
			created, err := svc.Create(adminCtx(), tt.input)

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, created)
		})
	}
}

func TestService_Create_DuplicateUsername(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		CreateFunc: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}

	svc := newTestService(users)
	created, err := svc.Create(adminCtx(), CreateInput{Username: "taken", Password: "pw"})

	require.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Nil(t, created)
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestService_Update_Success(t *testing.T) {
	t.Parallel()

	targetID := uuid.New()
	expected := &domain.User{ID: targetID, Username: "renamed"}

	users := &userRepoMock{
		UpdateFunc: func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
			assert.Equal(t, targetID, id)
			assert.Equal(t, ptr("renamed"), patch.Username)
			assert.Nil(t, patch.PasswordHash)
			return expected, nil
		},
	}

	svc := newTestService(users)
	updated, err := svc.Update(adminCtx(), targetID, UpdateInput{Username: ptr("renamed")})

	require.NoError(t, err)
	assert.Equal(t, expected, updated)
}

func TestService_Update_RehashesPassword(t *testing.T) {
	t.Parallel()

	targetID := uuid.New()

	users := &userRepoMock{
		UpdateFunc: func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
			require.NotNil(t, patch.PasswordHash)
			assert.NotEqual(t, "new-pw", *patch.PasswordHash, "plaintext must never reach the repo")
			assert.True(t, auth.CheckPassword(*patch.PasswordHash, "new-pw"))
			return &domain.User{ID: id}, nil
		},
	}

	svc := newTestService(users)
	_, err := svc.Update(adminCtx(), targetID, UpdateInput{Password: ptr("new-pw")})

	require.NoError(t, err)
}

func TestService_Update_Deactivate(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		UpdateFunc: func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
			require.NotNil(t, patch.IsActive)
			assert.False(t, *patch.IsActive)
			return &domain.User{ID: id, IsActive: false}, nil
		},
	}

	svc := newTestService(users)
	updated, err := svc.Update(adminCtx(), uuid.New(), UpdateInput{IsActive: ptr(false)})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestService_Update_NotAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)
	updated, err := svc.Update(userCtx(), uuid.New(), UpdateInput{Username: ptr("x")})

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, updated)
}

func TestService_Update_NotFound(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		UpdateFunc: func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(users)
	updated, err := svc.Update(adminCtx(), uuid.New(), UpdateInput{Username: ptr("x")})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, updated)
}

func TestService_Update_ValidationError(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)

	for _, in := range []UpdateInput{
		{Username: ptr("  ")},
		{Password: ptr("")},
		{Role: ptr(domain.UserRole("SUPER"))},
	} {
		updated, err := svc.Update(adminCtx(), uuid.New(), in)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, updated)
	}
}

// ---------------------------------------------------------------------------
// GetByID tests
// ---------------------------------------------------------------------------

func TestService_GetByID_Success(t *testing.T) {
	t.Parallel()

	targetID := uuid.New()
	expected := &domain.User{ID: targetID, Username: "dave"}

	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			assert.Equal(t, targetID, id)
			return expected, nil
		},
	}

	svc := newTestService(users)
	got, err := svc.GetByID(adminCtx(), targetID)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestService_GetByID_NotAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)
	got, err := svc.GetByID(userCtx(), uuid.New())

	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, got)
}

func TestService_GetByID_RepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("db connection lost")
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return nil, repoErr
		},
	}

	svc := newTestService(users)
	got, err := svc.GetByID(adminCtx(), uuid.New())

	require.ErrorIs(t, err, repoErr)
	assert.Nil(t, got)
}
