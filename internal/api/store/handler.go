package store

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"gostore/internal/api/response"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/middleware"
)

// StoreService define as operações de loja usadas pelos handlers.
type StoreService interface {
	CreateStore(ctx context.Context, session domain.AdminSession, req domain.StoreCreation) (domain.Store, error)
	GetStorefront(ctx context.Context, storeDomain string) (domain.PublicStore, error)
}

// OwnerAuthorizer carrega a loja apenas se a sessão for do dono.
type OwnerAuthorizer interface {
	AuthorizeStoreOwner(ctx context.Context, session domain.Session, storeID string) (domain.Store, error)
}

// DomainVar é o nome da variável de rota da vitrine.
const DomainVar = "domain"

// Handler agrupa os handlers de loja.
type Handler struct {
	Stores StoreService
	Owners OwnerAuthorizer
	Writer *response.Writer
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(stores StoreService, owners OwnerAuthorizer, writer *response.Writer) *Handler {
	return &Handler{Stores: stores, Owners: owners, Writer: writer}
}

// CreateStoreHandler lida com a requisição POST /api/stores.
// @Summary Cria uma loja
// @Description Cria a loja e atribui ao dono o papel Super Admin na mesma transação.
// @Tags stores
// @Accept json
// @Produce json
// @Param store body domain.StoreCreation true "Dados da loja"
// @Success 201 {object} domain.Store
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou expirada"
// @Failure 409 {object} domain.ErrorResponse "Domínio já utilizado"
// @Router /api/stores [post]
func (h *Handler) CreateStoreHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetAdminSessionFromContext(r.Context())
	if !ok {
		h.Writer.Error(w, r, apperror.NewUnauthorizedError("Sessão ausente ou expirada."))
		return
	}

	var req domain.StoreCreation
	if err := response.DecodeJSON(r, &req); err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	created, err := h.Stores.CreateStore(r.Context(), session, req)
	h.Writer.Handle(w, r, created, err, http.StatusCreated)
}

// GetStoreHandler lida com a requisição GET /api/stores/{storeId}.
// @Summary Busca uma loja do usuário
// @Description Lojas de outros donos respondem 404, igual a lojas inexistentes.
// @Tags stores
// @Produce json
// @Param storeId path string true "ID da loja"
// @Success 200 {object} domain.Store
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou expirada"
// @Failure 404 {object} domain.ErrorResponse "Loja não encontrada"
// @Router /api/stores/{storeId} [get]
func (h *Handler) GetStoreHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetAdminSessionFromContext(r.Context())
	if !ok {
		h.Writer.Error(w, r, apperror.NewUnauthorizedError("Sessão ausente ou expirada."))
		return
	}

	found, err := h.Owners.AuthorizeStoreOwner(r.Context(), session, mux.Vars(r)[middleware.StoreIDVar])
	h.Writer.Handle(w, r, found, err, http.StatusOK)
}

// StorefrontHandler lida com a requisição GET /api/storefront/{domain}.
// @Summary Dados públicos da vitrine
// @Tags storefront
// @Produce json
// @Param domain path string true "Domínio da loja"
// @Success 200 {object} domain.PublicStore
// @Failure 404 {object} domain.ErrorResponse "Loja não encontrada"
// @Router /api/storefront/{domain} [get]
func (h *Handler) StorefrontHandler(w http.ResponseWriter, r *http.Request) {
	public, err := h.Stores.GetStorefront(r.Context(), mux.Vars(r)[DomainVar])
	h.Writer.Handle(w, r, public, err, http.StatusOK)
}
