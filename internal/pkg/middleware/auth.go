package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"gostore/internal/api/response"
	"gostore/internal/domain"
	apperror "gostore/internal/errors"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Não exportado por valor para evitar colisão com chaves string.
type ContextKey int

const (
	adminSessionKey ContextKey = iota
	customerSessionKey
)

// AdminCookieName é o cookie que carrega o token do painel.
const AdminCookieName = "token"

// StoreIDVar é o nome da variável de rota com o ID da loja.
const StoreIDVar = "storeId"

// AdminSessionResolver é o contrato do sessionservice para o painel.
type AdminSessionResolver interface {
	ResolveAdminSession(cookieToken string) (domain.AdminSession, bool)
}

// CustomerSessionResolver é o contrato do sessionservice para a vitrine.
type CustomerSessionResolver interface {
	ResolveCustomerSessionForStore(authorizationHeader, storeID string) (domain.CustomerSession, error)
}

// AdminAuth verifica o cookie do painel e anexa a AdminSession ao contexto.
// Cookie ausente, inválido ou expirado resulta em 401.
func AdminAuth(resolver AdminSessionResolver, rw *response.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var raw string
			if cookie, err := r.Cookie(AdminCookieName); err == nil {
				raw = cookie.Value
			}

			session, ok := resolver.ResolveAdminSession(raw)
			if !ok {
				rw.Error(w, r, apperror.NewUnauthorizedError("Sessão ausente ou expirada."))
				return
			}

			ctx := context.WithValue(r.Context(), adminSessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerAuth verifica o Bearer token do cliente contra a loja da rota ({storeId}).
// Expirado e inválido são distinguíveis pela categoria do erro.
func CustomerAuth(resolver CustomerSessionResolver, rw *response.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			storeID := mux.Vars(r)[StoreIDVar]

			session, err := resolver.ResolveCustomerSessionForStore(r.Header.Get("Authorization"), storeID)
			if err != nil {
				rw.Error(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), customerSessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminSessionFromContext extrai a sessão do painel anexada pelo AdminAuth.
func GetAdminSessionFromContext(ctx context.Context) (domain.AdminSession, bool) {
	session, ok := ctx.Value(adminSessionKey).(domain.AdminSession)
	return session, ok
}

// GetCustomerSessionFromContext extrai a sessão do cliente anexada pelo CustomerAuth.
func GetCustomerSessionFromContext(ctx context.Context) (domain.CustomerSession, bool) {
	session, ok := ctx.Value(customerSessionKey).(domain.CustomerSession)
	return session, ok
}

// WithAdminSession anexa uma sessão ao contexto. Usado por testes de handlers.
func WithAdminSession(ctx context.Context, session domain.AdminSession) context.Context {
	return context.WithValue(ctx, adminSessionKey, session)
}

// WithCustomerSession anexa uma sessão de cliente ao contexto. Usado por testes de handlers.
func WithCustomerSession(ctx context.Context, session domain.CustomerSession) context.Context {
	return context.WithValue(ctx, customerSessionKey, session)
}
