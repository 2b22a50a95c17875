package request

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/inventory"
	"github.com/shelfscan/backend/internal/domain/request"
	"github.com/shelfscan/backend/internal/domain/shared"
)

// MockRequestRepository is a mock implementation of request.Repository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*request.Request, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) FindAll(ctx context.Context, companyID uuid.UUID) ([]*request.Request, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

func (m *MockRequestRepository) FindByCustomer(ctx context.Context, companyID, customerID uuid.UUID) ([]*request.Request, error) {
	args := m.Called(ctx, companyID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

// MockProductRepository is a mock implementation of inventory.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *inventory.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *inventory.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*inventory.Product, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, companyID uuid.UUID, query inventory.ProductQuery) ([]*inventory.Product, int64, error) {
	args := m.Called(ctx, companyID, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*inventory.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) CountByShelf(ctx context.Context, companyID, shelfID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID, shelfID)
	return args.Get(0).(int64), args.Error(1)
}

func customerActor() Actor {
	return Actor{CompanyID: uuid.New(), UserID: uuid.New(), Role: identity.RoleCustomer}
}

func newTestService(requestRepo *MockRequestRepository, productRepo *MockProductRepository) *Service {
	return NewService(requestRepo, productRepo, nil, zap.NewNop())
}

func TestCreate_ProductRequest(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	productRepo := new(MockProductRepository)
	svc := newTestService(requestRepo, productRepo)
	actor := customerActor()

	product, err := inventory.NewProduct(actor.CompanyID, uuid.New(), "A-1", "Дрель", "100", "SKU-1")
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, actor.CompanyID, product.ID).Return(product, nil)
	requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *request.Request) bool {
		return r.CustomerID == actor.UserID && r.ProductID != nil && *r.ProductID == product.ID &&
			r.Status == request.StatusNew
	})).Return(nil)

	info, err := svc.Create(context.Background(), actor, CreateInput{ProductID: &product.ID})

	require.NoError(t, err)
	assert.Equal(t, "new", info.Status)
	assert.Equal(t, "Дрель", info.ProductName)
	requestRepo.AssertExpectations(t)
}

func TestCreate_GeneralRequest(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	svc := newTestService(requestRepo, new(MockProductRepository))
	actor := customerActor()

	requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *request.Request) bool {
		return r.ProductID == nil && r.Type == "delivery" && r.Description == "Привезите до пятницы"
	})).Return(nil)

	info, err := svc.Create(context.Background(), actor, CreateInput{
		Type:        "delivery",
		Priority:    "high",
		Description: "Привезите до пятницы",
	})

	require.NoError(t, err)
	assert.Nil(t, info.ProductID)
	assert.Equal(t, "new", info.Status)
}

func TestCreate_GeneralRequestNeedsTypeOrDescription(t *testing.T) {
	svc := newTestService(new(MockRequestRepository), new(MockProductRepository))

	_, err := svc.Create(context.Background(), customerActor(), CreateInput{})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestCreate_DuplicateActiveRequest(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	productRepo := new(MockProductRepository)
	svc := newTestService(requestRepo, productRepo)
	actor := customerActor()

	product, err := inventory.NewProduct(actor.CompanyID, uuid.New(), "A-1", "Дрель", "100", "SKU-1")
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, actor.CompanyID, product.ID).Return(product, nil)
	requestRepo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

	_, err = svc.Create(context.Background(), actor, CreateInput{ProductID: &product.ID})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestCreate_UnknownProduct(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	productRepo := new(MockProductRepository)
	svc := newTestService(requestRepo, productRepo)
	actor := customerActor()
	missing := uuid.New()

	productRepo.On("FindByID", mock.Anything, actor.CompanyID, missing).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), actor, CreateInput{ProductID: &missing})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}

func TestList_OwnerSeesCompanyWide(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	svc := newTestService(requestRepo, new(MockProductRepository))
	actor := Actor{CompanyID: uuid.New(), UserID: uuid.New(), Role: identity.RoleOwner}

	general, err := request.NewGeneralRequest(actor.CompanyID, uuid.New(), "question", "", "Где мой заказ?")
	require.NoError(t, err)

	requestRepo.On("FindAll", mock.Anything, actor.CompanyID).Return([]*request.Request{general}, nil)

	infos, err := svc.List(context.Background(), actor)

	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "Где мой заказ?", infos[0].Description)
	requestRepo.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_CustomerSeesOwnOnly(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	svc := newTestService(requestRepo, new(MockProductRepository))
	actor := customerActor()

	requestRepo.On("FindByCustomer", mock.Anything, actor.CompanyID, actor.UserID).Return([]*request.Request{}, nil)

	infos, err := svc.List(context.Background(), actor)

	require.NoError(t, err)
	assert.Empty(t, infos)
	requestRepo.AssertExpectations(t)
}

func TestCancel_Success(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	svc := newTestService(requestRepo, new(MockProductRepository))
	actor := customerActor()

	req, err := request.NewGeneralRequest(actor.CompanyID, actor.UserID, "question", "", "text")
	require.NoError(t, err)
	req.ClearDomainEvents()

	requestRepo.On("FindByID", mock.Anything, actor.CompanyID, req.ID).Return(req, nil)
	requestRepo.On("Update", mock.Anything, req).Return(nil)

	info, err := svc.Cancel(context.Background(), actor, req.ID)

	require.NoError(t, err)
	assert.Equal(t, "cancelled", info.Status)
}

func TestCancel_OnlyRequestingCustomer(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	svc := newTestService(requestRepo, new(MockProductRepository))
	actor := customerActor()

	otherCustomer := uuid.New()
	req, err := request.NewGeneralRequest(actor.CompanyID, otherCustomer, "question", "", "text")
	require.NoError(t, err)

	requestRepo.On("FindByID", mock.Anything, actor.CompanyID, req.ID).Return(req, nil)

	_, err = svc.Cancel(context.Background(), actor, req.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestCancel_TerminalRequest(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	svc := newTestService(requestRepo, new(MockProductRepository))
	actor := customerActor()

	req, err := request.NewGeneralRequest(actor.CompanyID, actor.UserID, "question", "", "text")
	require.NoError(t, err)
	require.NoError(t, req.TransitionTo(request.StatusCompleted))

	requestRepo.On("FindByID", mock.Anything, actor.CompanyID, req.ID).Return(req, nil)

	_, err = svc.Cancel(context.Background(), actor, req.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestSetStatus_ValidTransition(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	svc := newTestService(requestRepo, new(MockProductRepository))
	actor := Actor{CompanyID: uuid.New(), UserID: uuid.New(), Role: identity.RoleOwner}

	req, err := request.NewGeneralRequest(actor.CompanyID, uuid.New(), "question", "", "text")
	require.NoError(t, err)
	req.ClearDomainEvents()

	requestRepo.On("FindByID", mock.Anything, actor.CompanyID, req.ID).Return(req, nil)
	requestRepo.On("Update", mock.Anything, req).Return(nil)

	info, err := svc.SetStatus(context.Background(), actor, SetStatusInput{
		RequestID: req.ID,
		Status:    "in-progress",
	})

	require.NoError(t, err)
	assert.Equal(t, "in-progress", info.Status)
}

func TestSetStatus_RejectsInvalidTransition(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	svc := newTestService(requestRepo, new(MockProductRepository))
	actor := Actor{CompanyID: uuid.New(), UserID: uuid.New(), Role: identity.RoleOwner}

	req, err := request.NewGeneralRequest(actor.CompanyID, uuid.New(), "question", "", "text")
	require.NoError(t, err)
	require.NoError(t, req.TransitionTo(request.StatusCompleted))

	requestRepo.On("FindByID", mock.Anything, actor.CompanyID, req.ID).Return(req, nil)

	_, err = svc.SetStatus(context.Background(), actor, SetStatusInput{
		RequestID: req.ID,
		Status:    "in-progress",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestSetStatus_UnknownStatus(t *testing.T) {
	svc := newTestService(new(MockRequestRepository), new(MockProductRepository))
	actor := Actor{CompanyID: uuid.New(), UserID: uuid.New(), Role: identity.RoleOwner}

	_, err := svc.SetStatus(context.Background(), actor, SetStatusInput{
		RequestID: uuid.New(),
		Status:    "approved-ish",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
}
