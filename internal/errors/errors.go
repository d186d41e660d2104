package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoStore.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// Categorias expostas aos clientes da API.
const (
	CategoryValidation          = "VALIDATION_ERROR"
	CategoryUnauthenticated     = "UNAUTHENTICATED"
	CategoryTokenExpired        = "TOKEN_EXPIRED"
	CategoryTokenInvalid        = "TOKEN_INVALID"
	CategoryInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CategoryForbidden           = "FORBIDDEN"
	CategoryNotFound            = "NOT_FOUND"
	CategoryConflict            = "CONFLICT"
	CategoryInvitationInvalid   = "INVALID_OR_EXPIRED_INVITATION"
	CategoryRateLimited         = "RATE_LIMITED"
	CategoryInternal            = "INTERNAL_ERROR"
)

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return CategoryValidation }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa a ausência de credencial, ou uma credencial que não vale para o recurso.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autenticado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return CategoryUnauthenticated }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um erro 401 genérico.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ExpiredTokenError indica assinatura válida com 'exp' no passado.
// O cliente da loja usa esta categoria para tentar o refresh silencioso.
type ExpiredTokenError struct {
	Msg string
}

func (e *ExpiredTokenError) Error() string    { return fmt.Sprintf("Token expirado: %s", e.Msg) }
func (e *ExpiredTokenError) Category() string { return CategoryTokenExpired }
func (e *ExpiredTokenError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *ExpiredTokenError) Unwrap() error    { return nil }

// NewExpiredTokenError cria um erro de token expirado.
func NewExpiredTokenError(msg string) AppError {
	return &ExpiredTokenError{Msg: msg}
}

// InvalidTokenError indica assinatura inválida ou token ilegível.
type InvalidTokenError struct {
	Msg string
}

func (e *InvalidTokenError) Error() string    { return fmt.Sprintf("Token inválido: %s", e.Msg) }
func (e *InvalidTokenError) Category() string { return CategoryTokenInvalid }
func (e *InvalidTokenError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *InvalidTokenError) Unwrap() error    { return nil }

// NewInvalidTokenError cria um erro de token inválido.
func NewInvalidTokenError(msg string) AppError {
	return &InvalidTokenError{Msg: msg}
}

// InvalidRefreshTokenError é retornado quando o refresh token não pode ser trocado por um novo par.
type InvalidRefreshTokenError struct {
	Msg string
}

func (e *InvalidRefreshTokenError) Error() string {
	return fmt.Sprintf("Refresh token inválido: %s", e.Msg)
}
func (e *InvalidRefreshTokenError) Category() string { return CategoryInvalidRefreshToken }
func (e *InvalidRefreshTokenError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *InvalidRefreshTokenError) Unwrap() error    { return nil }

// NewInvalidRefreshTokenError cria um erro de refresh token inválido.
func NewInvalidRefreshTokenError(msg string) AppError {
	return &InvalidRefreshTokenError{Msg: msg}
}

// ForbiddenError representa um principal autenticado sem direito ao recurso.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return CategoryForbidden }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um erro 403.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return CategoryNotFound }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., e-mail ou domínio duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return CategoryConflict }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// RateLimitError indica que o cliente excedeu o limite de requisições da janela.
type RateLimitError struct {
	Msg string
}

func (e *RateLimitError) Error() string    { return fmt.Sprintf("Limite excedido: %s", e.Msg) }
func (e *RateLimitError) Category() string { return CategoryRateLimited }
func (e *RateLimitError) HTTPStatus() int  { return http.StatusTooManyRequests } // 429
func (e *RateLimitError) Unwrap() error    { return nil }

// NewRateLimitError cria um novo erro de limite de requisições.
func NewRateLimitError(msg string) AppError {
	return &RateLimitError{Msg: msg}
}

// InvitationInvalidError cobre convite ausente, de outra loja, já aceito ou expirado.
// A mensagem é sempre a mesma para não revelar qual condição falhou.
type InvitationInvalidError struct{}

// InvitationInvalidMessage é a única mensagem exibida para convites recusados.
const InvitationInvalidMessage = "Convite inválido ou expirado."

func (e *InvitationInvalidError) Error() string    { return InvitationInvalidMessage }
func (e *InvitationInvalidError) Category() string { return CategoryInvitationInvalid }
func (e *InvitationInvalidError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *InvitationInvalidError) Unwrap() error    { return nil }

// NewInvitationInvalidError cria o erro de convite inválido.
func NewInvitationInvalidError() AppError {
	return &InvitationInvalidError{}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return CategoryInternal }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %v", msg, err), err)
}

// --- Helper para o Handler (Tradução Final) ---

// internalMessage é o único texto devolvido ao cliente para falhas 5xx.
const internalMessage = "Ocorreu um erro inesperado."

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, a categoria e a mensagem pública.
// Erros 5xx nunca expõem detalhes internos no corpo da resposta.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			return status, appErr.Category(), internalMessage
		}
		return status, appErr.Category(), appErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", internalMessage
}
