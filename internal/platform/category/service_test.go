package category_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/saldo/internal/platform/category"
)

// MockCategoryRepository is a mock implementation of category.Repository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, limit, offset int) ([]*category.Category, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*category.Category), args.Int(1), args.Error(2)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionChecker is a mock implementation of category.TransactionChecker
type MockTransactionChecker struct {
	mock.Mock
}

func (m *MockTransactionChecker) ExistsByCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := category.NewService(repo, new(MockTransactionChecker))

		repo.On("Create", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

		created, err := svc.Create(ctx, "Groceries")

		require.NoError(t, err)
		assert.Equal(t, "Groceries", created.Title)
		assert.NotEqual(t, uuid.Nil, created.ID)
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := category.NewService(repo, new(MockTransactionChecker))

		_, err := svc.Create(ctx, "   ")

		assert.ErrorIs(t, err, category.ErrMissingTitle)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("overlong title is rejected", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := category.NewService(repo, new(MockTransactionChecker))

		_, err := svc.Create(ctx, strings.Repeat("x", 256))

		assert.ErrorIs(t, err, category.ErrTitleTooLong)
	})
}

func TestCategoryServiceUpdate(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	t.Run("rename", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := category.NewService(repo, new(MockTransactionChecker))

		repo.On("GetByID", ctx, categoryID).Return(&category.Category{
			ID:    categoryID,
			Title: "Groceries",
		}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

		updated, err := svc.Update(ctx, categoryID, "Food")

		require.NoError(t, err)
		assert.Equal(t, "Food", updated.Title)
	})

	t.Run("unknown category", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := category.NewService(repo, new(MockTransactionChecker))

		repo.On("GetByID", ctx, categoryID).Return(nil, category.ErrCategoryNotFound)

		_, err := svc.Update(ctx, categoryID, "Food")

		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})
}

func TestCategoryServiceDelete(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	t.Run("unused category is deleted", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		checker := new(MockTransactionChecker)
		svc := category.NewService(repo, checker)

		repo.On("GetByID", ctx, categoryID).Return(&category.Category{ID: categoryID}, nil)
		checker.On("ExistsByCategory", ctx, categoryID).Return(false, nil)
		repo.On("Delete", ctx, categoryID).Return(nil)

		require.NoError(t, svc.Delete(ctx, categoryID))
		repo.AssertExpectations(t)
	})

	t.Run("category with transactions is refused", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		checker := new(MockTransactionChecker)
		svc := category.NewService(repo, checker)

		repo.On("GetByID", ctx, categoryID).Return(&category.Category{ID: categoryID}, nil)
		checker.On("ExistsByCategory", ctx, categoryID).Return(true, nil)

		err := svc.Delete(ctx, categoryID)

		assert.ErrorIs(t, err, category.ErrCategoryInUse)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
