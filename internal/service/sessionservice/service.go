package sessionservice

import (
	"errors"
	"strings"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/token"
)

// AdminTokenValidator valida o token do cookie do painel.
type AdminTokenValidator interface {
	ValidateAdminToken(tokenString string) (*token.AdminClaims, error)
}

// CustomerTokenValidator valida o access token do cliente.
type CustomerTokenValidator interface {
	ValidateCustomerToken(tokenString string) (*token.CustomerClaims, error)
}

const bearerPrefix = "Bearer "

// Resolver transforma credenciais da requisição em uma domain.Session. Não faz I/O.
type Resolver struct {
	admin    AdminTokenValidator
	customer CustomerTokenValidator
}

// NewResolver recebe o codec do painel e o codec do access token do cliente.
func NewResolver(admin AdminTokenValidator, customer CustomerTokenValidator) *Resolver {
	return &Resolver{admin: admin, customer: customer}
}

// ResolveAdminSession resolve o cookie do painel.
// Ausência, token malformado, assinatura errada e expiração resultam todos em (zero, false).
func (r *Resolver) ResolveAdminSession(cookieToken string) (domain.AdminSession, bool) {
	if cookieToken == "" {
		return domain.AdminSession{}, false
	}
	claims, err := r.admin.ValidateAdminToken(cookieToken)
	if err != nil {
		return domain.AdminSession{}, false
	}
	return domain.AdminSession{UserID: claims.UserID, Email: claims.Email}, true
}

// ResolveCustomerSession resolve o header Authorization do cliente, distinguindo
// ausência (Unauthorized), expiração (Expired) e token inválido (Invalid).
func (r *Resolver) ResolveCustomerSession(authorizationHeader string) (domain.CustomerSession, error) {
	raw, ok := bearerToken(authorizationHeader)
	if !ok {
		return domain.CustomerSession{}, apperror.NewUnauthorizedError("Token de acesso ausente.")
	}

	claims, err := r.customer.ValidateCustomerToken(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return domain.CustomerSession{}, apperror.NewExpiredTokenError("O token de acesso expirou.")
		}
		return domain.CustomerSession{}, apperror.NewInvalidTokenError("Token de acesso inválido.")
	}

	return domain.CustomerSession{
		CustomerID: claims.CustomerID,
		StoreID:    claims.StoreID,
		Email:      claims.Email,
	}, nil
}

// ResolveCustomerSessionForStore também exige que o token pertença à loja da rota.
// Token válido de outra loja é tratado como não autenticado.
func (r *Resolver) ResolveCustomerSessionForStore(authorizationHeader, storeID string) (domain.CustomerSession, error) {
	session, err := r.ResolveCustomerSession(authorizationHeader)
	if err != nil {
		return domain.CustomerSession{}, err
	}
	if !domain.SameID(session.StoreID, storeID) {
		return domain.CustomerSession{}, apperror.NewUnauthorizedError("Token não pertence a esta loja.")
	}
	return session, nil
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	return raw, raw != ""
}
