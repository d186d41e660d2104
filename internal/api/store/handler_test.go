package store_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gostore/internal/api/response"
	"gostore/internal/api/store"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
)

type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) CreateStore(ctx context.Context, session domain.AdminSession, req domain.StoreCreation) (domain.Store, error) {
	args := m.Called(ctx, session, req)
	return args.Get(0).(domain.Store), args.Error(1)
}

func (m *MockStoreService) GetStorefront(ctx context.Context, storeDomain string) (domain.PublicStore, error) {
	args := m.Called(ctx, storeDomain)
	return args.Get(0).(domain.PublicStore), args.Error(1)
}

type MockOwnerAuthorizer struct {
	mock.Mock
}

func (m *MockOwnerAuthorizer) AuthorizeStoreOwner(ctx context.Context, session domain.Session, storeID string) (domain.Store, error) {
	args := m.Called(ctx, session, storeID)
	return args.Get(0).(domain.Store), args.Error(1)
}

var owner = domain.AdminSession{UserID: "u1", Email: "bob@example.com"}

func setup() (*store.Handler, *MockStoreService, *MockOwnerAuthorizer) {
	stores := new(MockStoreService)
	owners := new(MockOwnerAuthorizer)
	return store.NewHandler(stores, owners, response.NewWriter(logger.NewNopLogger())), stores, owners
}

func TestCreateStoreHandler(t *testing.T) {
	h, stores, _ := setup()
	req := domain.StoreCreation{Name: "Loja", Domain: "loja.test"}
	stores.On("CreateStore", mock.Anything, owner, req).Return(domain.Store{ID: "s1", OwnerUserID: "u1", Name: "Loja", Domain: "loja.test"}, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/stores", strings.NewReader(`{"name":"Loja","domain":"loja.test"}`))
	r = r.WithContext(middleware.WithAdminSession(r.Context(), owner))
	rec := httptest.NewRecorder()
	h.CreateStoreHandler(rec, r)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"s1"`)
}

func TestCreateStoreHandler_Conflict(t *testing.T) {
	h, stores, _ := setup()
	stores.On("CreateStore", mock.Anything, owner, mock.Anything).Return(domain.Store{}, apperror.NewConflictError("Domínio já utilizado."))

	r := httptest.NewRequest(http.MethodPost, "/api/stores", strings.NewReader(`{"name":"Loja","domain":"loja.test"}`))
	r = r.WithContext(middleware.WithAdminSession(r.Context(), owner))
	rec := httptest.NewRecorder()
	h.CreateStoreHandler(rec, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetStoreHandler_OtherOwnerIsNotFound(t *testing.T) {
	h, _, owners := setup()
	owners.On("AuthorizeStoreOwner", mock.Anything, owner, "s2").Return(domain.Store{}, apperror.NewNotFoundError("Loja não encontrada."))

	r := httptest.NewRequest(http.MethodGet, "/api/stores/s2", nil)
	r = mux.SetURLVars(r, map[string]string{middleware.StoreIDVar: "s2"})
	r = r.WithContext(middleware.WithAdminSession(r.Context(), owner))
	rec := httptest.NewRecorder()
	h.GetStoreHandler(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStoreHandler_WithoutSession(t *testing.T) {
	h, _, owners := setup()

	rec := httptest.NewRecorder()
	h.GetStoreHandler(rec, httptest.NewRequest(http.MethodGet, "/api/stores/s1", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	owners.AssertNotCalled(t, "AuthorizeStoreOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestStorefrontHandler(t *testing.T) {
	h, stores, _ := setup()
	stores.On("GetStorefront", mock.Anything, "loja.test").Return(domain.PublicStore{ID: "s1", Domain: "loja.test", Currency: "USD"}, nil)
	stores.On("GetStorefront", mock.Anything, "nada.test").Return(domain.PublicStore{}, apperror.NewNotFoundError("Loja não encontrada."))

	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/storefront/loja.test", nil), map[string]string{store.DomainVar: "loja.test"})
	rec := httptest.NewRecorder()
	h.StorefrontHandler(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "owner_user_id")

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/storefront/nada.test", nil), map[string]string{store.DomainVar: "nada.test"})
	rec = httptest.NewRecorder()
	h.StorefrontHandler(rec, r)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
