package admin_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/saldo/internal/platform/admin"
	"github.com/kmazurek/saldo/internal/platform/user"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*user.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestAdminListUsers(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	svc := admin.NewService(repo)

	repo.On("List", ctx, 10, 0).Return([]*user.User{
		{ID: uuid.New(), Email: "alice@example.com"},
		{ID: uuid.New(), Email: "bob@example.com"},
	}, 2, nil)

	users, total, err := svc.ListUsers(ctx, 10, 0)

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 2, total)
}

func TestAdminUpdateEmail(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("changes the address", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := admin.NewService(repo)

		repo.On("GetByID", ctx, userID).Return(&user.User{
			ID:    userID,
			Email: "alice@example.com",
		}, nil)
		repo.On("Exists", ctx, "alice@new.example.com").Return(false, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		updated, err := svc.UpdateEmail(ctx, userID, "alice@new.example.com")

		require.NoError(t, err)
		assert.Equal(t, "alice@new.example.com", updated.Email)
	})

	t.Run("address already in use", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := admin.NewService(repo)

		repo.On("GetByID", ctx, userID).Return(&user.User{
			ID:    userID,
			Email: "alice@example.com",
		}, nil)
		repo.On("Exists", ctx, "bob@example.com").Return(true, nil)

		_, err := svc.UpdateEmail(ctx, userID, "bob@example.com")

		assert.ErrorIs(t, err, user.ErrUserAlreadyExists)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalid address", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := admin.NewService(repo)

		repo.On("GetByID", ctx, userID).Return(&user.User{
			ID:    userID,
			Email: "alice@example.com",
		}, nil)
		repo.On("Exists", ctx, "nope").Return(false, nil)

		_, err := svc.UpdateEmail(ctx, userID, "nope")

		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := admin.NewService(repo)

		repo.On("GetByID", ctx, userID).Return(nil, user.ErrUserNotFound)

		_, err := svc.UpdateEmail(ctx, userID, "alice@example.com")

		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestAdminUpdatePassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("sets a new hash", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := admin.NewService(repo)

		u := &user.User{ID: userID, Email: "alice@example.com"}
		repo.On("GetByID", ctx, userID).Return(u, nil)
		repo.On("Update", ctx, u).Return(nil)

		require.NoError(t, svc.UpdatePassword(ctx, userID, "new-password"))
		assert.NoError(t, u.CheckPassword("new-password"))
	})

	t.Run("short password is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := admin.NewService(repo)

		repo.On("GetByID", ctx, userID).Return(&user.User{ID: userID}, nil)

		err := svc.UpdatePassword(ctx, userID, "short")

		assert.ErrorIs(t, err, user.ErrPasswordTooShort)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
