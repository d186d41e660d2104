package customer

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"gostore/internal/api/response"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/middleware"
)

// CustomerService define as operações de conta do cliente da vitrine.
type CustomerService interface {
	SignUp(ctx context.Context, storeID string, reg domain.CustomerRegistration) (domain.Customer, domain.TokenPair, error)
	SignIn(ctx context.Context, storeID, email, password string) (domain.Customer, domain.TokenPair, error)
	Refresh(refreshToken string) (domain.TokenPair, error)
	Me(ctx context.Context, session domain.CustomerSession) (domain.Customer, error)
}

// SignInRequest é o payload de login do cliente.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest é o payload de renovação do par de tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse é devolvida no cadastro.
type AuthResponse struct {
	Customer domain.Customer  `json:"customer"`
	Tokens   domain.TokenPair `json:"tokens"`
}

// SignInResponse achata o par de tokens ao lado do cliente.
type SignInResponse struct {
	Customer domain.Customer `json:"customer"`
	domain.TokenPair
}

// Handler agrupa os handlers de cliente.
type Handler struct {
	Customers CustomerService
	Writer    *response.Writer
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(customers CustomerService, writer *response.Writer) *Handler {
	return &Handler{Customers: customers, Writer: writer}
}

// SignUpHandler lida com a requisição POST /api/{storeId}/customer/signup.
// @Summary Cadastra um cliente na loja
// @Tags customers
// @Accept json
// @Produce json
// @Param storeId path string true "ID da loja"
// @Param registration body domain.CustomerRegistration true "Dados do cliente"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 409 {object} domain.ErrorResponse "E-mail já cadastrado nesta loja"
// @Router /api/{storeId}/customer/signup [post]
func (h *Handler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.CustomerRegistration
	if err := response.DecodeJSON(r, &reg); err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	c, pair, err := h.Customers.SignUp(r.Context(), mux.Vars(r)[middleware.StoreIDVar], reg)
	h.Writer.Handle(w, r, AuthResponse{Customer: c, Tokens: pair}, err, http.StatusCreated)
}

// SignInHandler lida com a requisição POST /api/{storeId}/customer/signin.
// @Summary Autentica um cliente da loja
// @Tags customers
// @Accept json
// @Produce json
// @Param storeId path string true "ID da loja"
// @Param login body SignInRequest true "Credenciais"
// @Success 200 {object} SignInResponse
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 429 {object} domain.ErrorResponse "Limite de tentativas excedido"
// @Router /api/{storeId}/customer/signin [post]
func (h *Handler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	c, pair, err := h.Customers.SignIn(r.Context(), mux.Vars(r)[middleware.StoreIDVar], req.Email, req.Password)
	h.Writer.Handle(w, r, SignInResponse{Customer: c, TokenPair: pair}, err, http.StatusOK)
}

// RefreshHandler lida com a requisição POST /api/{storeId}/customer/refresh.
// @Summary Renova o par de tokens do cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param storeId path string true "ID da loja"
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} domain.TokenPair
// @Failure 401 {object} domain.ErrorResponse "Refresh token inválido"
// @Router /api/{storeId}/customer/refresh [post]
func (h *Handler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	pair, err := h.Customers.Refresh(req.RefreshToken)
	h.Writer.Handle(w, r, pair, err, http.StatusOK)
}

// MeHandler lida com a requisição GET /api/{storeId}/customer/me.
// @Summary Retorna o cliente autenticado
// @Tags customers
// @Produce json
// @Param storeId path string true "ID da loja"
// @Param Authorization header string true "Bearer <access token>"
// @Success 200 {object} domain.Customer
// @Failure 401 {object} domain.ErrorResponse "Token ausente, expirado ou inválido"
// @Router /api/{storeId}/customer/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetCustomerSessionFromContext(r.Context())
	if !ok {
		h.Writer.Error(w, r, apperror.NewUnauthorizedError("Token ausente."))
		return
	}

	c, err := h.Customers.Me(r.Context(), session)
	h.Writer.Handle(w, r, c, err, http.StatusOK)
}
