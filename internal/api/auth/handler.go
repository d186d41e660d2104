package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gostore/internal/api/response"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/middleware"
)

// UserService define o contrato para as operações de registro e login do painel.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, email string, password string) (string, time.Time, error)
}

// PermissionService calcula as permissões efetivas do usuário na loja.
type PermissionService interface {
	EffectivePermissions(ctx context.Context, userID, storeID string) (domain.PermissionSet, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser é o usuário exposto por GET /api/auth/session.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role" example:"admin"`
}

// SessionResponse é a resposta de GET /api/auth/session.
type SessionResponse struct {
	User SessionUser `json:"user"`
}

// PermissionsResponse lista as permissões efetivas, em ordem alfabética.
type PermissionsResponse struct {
	Permissions []string `json:"permissions"`
}

// CookieMaxAge é a validade do cookie do painel em segundos (1 dia).
const CookieMaxAge = 86400

// Handler agrupa os handlers de autenticação do painel.
type Handler struct {
	Users        UserService
	Permissions  PermissionService
	Writer       *response.Writer
	SecureCookie bool // true em produção
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(users UserService, permissions PermissionService, writer *response.Writer, secureCookie bool) *Handler {
	return &Handler{
		Users:        users,
		Permissions:  permissions,
		Writer:       writer,
		SecureCookie: secureCookie,
	}
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// SignUpHandler lida com a requisição POST /api/auth/signup.
// @Summary Registra um novo usuário do painel
// @Description Cria um novo usuário, hasheia a senha e salva no banco de dados.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /api/auth/signup [post]
func (h *Handler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := response.DecodeJSON(r, &reg); err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	newUser, err := h.Users.Register(r.Context(), reg)
	h.Writer.Handle(w, r, newUser, err, http.StatusCreated)
}

// SignInHandler lida com a requisição POST /api/auth/signin.
// @Summary Autentica um usuário do painel
// @Description Verifica email/senha e grava o JWT no cookie HttpOnly 'token'.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário"
// @Success 200 {object} map[string]string "Redirecionamento após o login"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 429 {object} domain.ErrorResponse "Limite de tentativas excedido"
// @Router /api/auth/signin [post]
func (h *Handler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var loginReq LoginRequest
	if err := response.DecodeJSON(r, &loginReq); err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	tokenString, _, err := h.Users.Login(r.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		h.Writer.Error(w, r, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(tokenString, CookieMaxAge))
	h.Writer.JSON(w, http.StatusOK, map[string]string{"redirect": "/"})
}

// SignOutHandler lida com a requisição POST /api/auth/signout.
// @Summary Encerra a sessão do painel
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/auth/signout [post]
func (h *Handler) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	h.Writer.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SessionHandler lida com a requisição GET /api/auth/session.
// @Summary Retorna a sessão atual do painel
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou expirada"
// @Router /api/auth/session [get]
func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetAdminSessionFromContext(r.Context())
	if !ok {
		h.Writer.Error(w, r, apperror.NewUnauthorizedError("Sessão ausente ou expirada."))
		return
	}

	h.Writer.JSON(w, http.StatusOK, SessionResponse{
		User: SessionUser{ID: session.UserID, Email: session.Email, Role: "admin"},
	})
}

// PermissionsHandler lida com a requisição GET /api/{storeId}/auth/permissions.
// @Summary Permissões efetivas do usuário na loja
// @Description União das permissões de todos os papéis atribuídos ao usuário na loja.
// @Tags auth
// @Produce json
// @Param storeId path string true "ID da loja"
// @Success 200 {object} PermissionsResponse
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou expirada"
// @Router /api/{storeId}/auth/permissions [get]
func (h *Handler) PermissionsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetAdminSessionFromContext(r.Context())
	if !ok {
		h.Writer.Error(w, r, apperror.NewUnauthorizedError("Sessão ausente ou expirada."))
		return
	}

	set, err := h.Permissions.EffectivePermissions(r.Context(), session.UserID, mux.Vars(r)[middleware.StoreIDVar])
	if err != nil {
		h.Writer.Error(w, r, err)
		return
	}
	h.Writer.JSON(w, http.StatusOK, PermissionsResponse{Permissions: set.Names()})
}
