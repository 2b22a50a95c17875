package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apprequest "github.com/shelfscan/backend/internal/application/request"
	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/shared"
)

type stubRequestService struct {
	lastActor     apprequest.Actor
	lastCreate    apprequest.CreateInput
	lastSetStatus apprequest.SetStatusInput
	createErr     error
	setStatusErr  error
	info          apprequest.Info
}

func (s *stubRequestService) Create(_ context.Context, actor apprequest.Actor, input apprequest.CreateInput) (*apprequest.Info, error) {
	s.lastActor = actor
	s.lastCreate = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &s.info, nil
}

func (s *stubRequestService) List(_ context.Context, actor apprequest.Actor) ([]apprequest.Info, error) {
	s.lastActor = actor
	return []apprequest.Info{s.info}, nil
}

func (s *stubRequestService) Cancel(_ context.Context, actor apprequest.Actor, _ uuid.UUID) (*apprequest.Info, error) {
	s.lastActor = actor
	return &s.info, nil
}

func (s *stubRequestService) SetStatus(_ context.Context, actor apprequest.Actor, input apprequest.SetStatusInput) (*apprequest.Info, error) {
	s.lastActor = actor
	s.lastSetStatus = input
	if s.setStatusErr != nil {
		return nil, s.setStatusErr
	}
	return &s.info, nil
}

func TestRequestHandler_CreateGeneralRequest(t *testing.T) {
	id := newTestIdentity(identity.RoleCustomer)
	stub := &stubRequestService{info: apprequest.Info{ID: uuid.New(), Status: "new"}}
	r := newTestRouter(id, NewRequestHandler(stub))

	w := doJSON(t, r, http.MethodPost, "/api/v1/requests",
		`{"type":"consultation","priority":"high","description":"Нужна помощь с выбором"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, stub.lastCreate.ProductID)
	assert.Equal(t, "consultation", stub.lastCreate.Type)
	assert.Equal(t, id.UserID, stub.lastActor.UserID)
}

func TestRequestHandler_CreateProductRequest(t *testing.T) {
	id := newTestIdentity(identity.RoleCustomer)
	stub := &stubRequestService{info: apprequest.Info{ID: uuid.New(), Status: "new"}}
	r := newTestRouter(id, NewRequestHandler(stub))

	productID := uuid.New()
	w := doJSON(t, r, http.MethodPost, "/api/v1/requests",
		`{"product_id":"`+productID.String()+`"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stub.lastCreate.ProductID)
	assert.Equal(t, productID, *stub.lastCreate.ProductID)
}

func TestRequestHandler_CreateRejectedForOwner(t *testing.T) {
	id := newTestIdentity(identity.RoleOwner)
	r := newTestRouter(id, NewRequestHandler(&stubRequestService{}))

	w := doJSON(t, r, http.MethodPost, "/api/v1/requests", `{"type":"consultation"}`)

	require.Equal(t, http.StatusForbidden, w.Code)
	body := decodeEnvelope(t, w)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "/owner", errObj["redirect"])
}

func TestRequestHandler_DuplicateActiveRequestConflicts(t *testing.T) {
	id := newTestIdentity(identity.RoleCustomer)
	stub := &stubRequestService{
		createErr: shared.NewDomainError("ALREADY_EXISTS", "An active request for this product already exists"),
	}
	r := newTestRouter(id, NewRequestHandler(stub))

	w := doJSON(t, r, http.MethodPost, "/api/v1/requests",
		`{"product_id":"`+uuid.NewString()+`"}`)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorCode(t, w))
}

func TestRequestHandler_SetStatusAcceptsInternalCode(t *testing.T) {
	id := newTestIdentity(identity.RoleOwner)
	stub := &stubRequestService{info: apprequest.Info{ID: uuid.New(), Status: "in-progress"}}
	r := newTestRouter(id, NewRequestHandler(stub))

	w := doJSON(t, r, http.MethodPut, "/api/v1/requests/"+uuid.NewString()+"/status",
		`{"status":"in-progress"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "in-progress", stub.lastSetStatus.Status)
}

func TestRequestHandler_SetStatusTranslatesDisplayLabel(t *testing.T) {
	id := newTestIdentity(identity.RoleOwner)
	stub := &stubRequestService{info: apprequest.Info{ID: uuid.New(), Status: "in-progress"}}
	r := newTestRouter(id, NewRequestHandler(stub))

	cases := map[string]string{
		"Новая":     "new",
		"В работе":  "in-progress",
		"Выполнена": "completed",
		"Отклонена": "cancelled",
	}
	for label, code := range cases {
		w := doJSON(t, r, http.MethodPut, "/api/v1/requests/"+uuid.NewString()+"/status",
			`{"status":"`+label+`"}`)
		require.Equal(t, http.StatusOK, w.Code, label)
		assert.Equal(t, code, stub.lastSetStatus.Status, label)
	}
}

func TestRequestHandler_SetStatusInvalidTransition(t *testing.T) {
	id := newTestIdentity(identity.RoleOwner)
	stub := &stubRequestService{
		setStatusErr: shared.NewDomainError("INVALID_STATE", "Request is already completed"),
	}
	r := newTestRouter(id, NewRequestHandler(stub))

	w := doJSON(t, r, http.MethodPut, "/api/v1/requests/"+uuid.NewString()+"/status",
		`{"status":"new"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, w))
}

func TestRequestHandler_SetStatusRejectedForCustomer(t *testing.T) {
	id := newTestIdentity(identity.RoleCustomer)
	r := newTestRouter(id, NewRequestHandler(&stubRequestService{}))

	w := doJSON(t, r, http.MethodPut, "/api/v1/requests/"+uuid.NewString()+"/status",
		`{"status":"completed"}`)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestHandler_CancelIsCustomerOnly(t *testing.T) {
	id := newTestIdentity(identity.RoleWorker)
	r := newTestRouter(id, NewRequestHandler(&stubRequestService{}))

	w := doJSON(t, r, http.MethodPost, "/api/v1/requests/"+uuid.NewString()+"/cancel", "")

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestHandler_ListVisibleToOwnerAndCustomer(t *testing.T) {
	for _, role := range []identity.Role{identity.RoleOwner, identity.RoleCustomer} {
		id := newTestIdentity(role)
		stub := &stubRequestService{info: apprequest.Info{ID: uuid.New(), Status: "new"}}
		r := newTestRouter(id, NewRequestHandler(stub))

		w := doJSON(t, r, http.MethodGet, "/api/v1/requests", "")

		require.Equal(t, http.StatusOK, w.Code, role)
		assert.Equal(t, role, stub.lastActor.Role)
	}
}
