package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shelfscan/backend/internal/domain/request"
	"github.com/shelfscan/backend/internal/domain/shared"
	"github.com/shelfscan/backend/internal/infrastructure/persistence/models"
)

func setupRequestTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.RequestModel{})
	require.NoError(t, err)

	return db
}

func TestRequestRepository_CreateAndFindByID(t *testing.T) {
	db := setupRequestTestDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()
	companyID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()

	req, err := request.NewProductRequest(companyID, customerID, productID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, req))

	found, err := repo.FindByID(ctx, companyID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, customerID, found.CustomerID)
	require.NotNil(t, found.ProductID)
	assert.Equal(t, productID, *found.ProductID)
	assert.Equal(t, request.StatusNew, found.Status)
}

func TestRequestRepository_DuplicateActiveProductRequest(t *testing.T) {
	db := setupRequestTestDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()
	companyID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()

	first, err := request.NewProductRequest(companyID, customerID, productID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := request.NewProductRequest(companyID, customerID, productID)
	require.NoError(t, err)
	err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	// A completed request still blocks: only cancellation frees the product
	require.NoError(t, first.TransitionTo(request.StatusCompleted))
	require.NoError(t, repo.Update(ctx, first))

	third, err := request.NewProductRequest(companyID, customerID, productID)
	require.NoError(t, err)
	err = repo.Create(ctx, third)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestRequestRepository_CancelledRequestFreesProduct(t *testing.T) {
	db := setupRequestTestDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()
	companyID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()

	first, err := request.NewProductRequest(companyID, customerID, productID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	require.NoError(t, first.Cancel())
	require.NoError(t, repo.Update(ctx, first))

	second, err := request.NewProductRequest(companyID, customerID, productID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))
}

func TestRequestRepository_SameProductDifferentCustomers(t *testing.T) {
	db := setupRequestTestDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()
	companyID := uuid.New()
	productID := uuid.New()

	first, err := request.NewProductRequest(companyID, uuid.New(), productID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := request.NewProductRequest(companyID, uuid.New(), productID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))
}

func TestRequestRepository_UpdatePersistsStatus(t *testing.T) {
	db := setupRequestTestDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()
	companyID := uuid.New()

	req, err := request.NewGeneralRequest(companyID, uuid.New(), "question", "low", "Где самовывоз?")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, req))

	require.NoError(t, req.TransitionTo(request.StatusInProgress))
	require.NoError(t, repo.Update(ctx, req))

	found, err := repo.FindByID(ctx, companyID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusInProgress, found.Status)
	assert.Equal(t, 2, found.Version)
}

func TestRequestRepository_FindByCustomerScoping(t *testing.T) {
	db := setupRequestTestDB(t)
	repo := NewGormRequestRepository(db)
	ctx := context.Background()
	companyID := uuid.New()
	customerA := uuid.New()
	customerB := uuid.New()

	for _, customerID := range []uuid.UUID{customerA, customerA, customerB} {
		req, err := request.NewGeneralRequest(companyID, customerID, "question", "low", "Вопрос")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, req))
	}

	own, err := repo.FindByCustomer(ctx, companyID, customerA)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := repo.FindAll(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	other, err := repo.FindAll(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
