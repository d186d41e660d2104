package storeservice

import (
	"context"
	"regexp"
	"strings"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

// StoreRepository define o contrato que o serviço de lojas espera da persistência.
type StoreRepository interface {
	Create(ctx context.Context, store domain.Store, ownerRoleName string) (domain.Store, error)
	FindByDomain(ctx context.Context, storeDomain string) (domain.Store, error)
}

var (
	domainPattern   = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	localePattern   = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)
)

const maxDomainLength = 253

// Service cria lojas e resolve a vitrine pelo domínio.
type Service struct {
	repo   StoreRepository
	logger logger.Logger
}

func NewService(repo StoreRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateStore cria a loja para o usuário da sessão, que recebe o papel Super Admin nela.
func (s *Service) CreateStore(ctx context.Context, session domain.AdminSession, req domain.StoreCreation) (domain.Store, error) {
	if session.UserID == "" {
		return domain.Store{}, apperror.NewUnauthorizedError("Sessão do painel exigida.")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Store{}, apperror.NewValidationError("O nome da loja é obrigatório.")
	}

	storeDomain := domain.NormalizeDomain(req.Domain)
	if storeDomain == "" || len(storeDomain) > maxDomainLength || !domainPattern.MatchString(storeDomain) {
		return domain.Store{}, apperror.NewValidationError("Domínio da loja inválido.")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if !currencyPattern.MatchString(currency) {
		return domain.Store{}, apperror.NewValidationError("Moeda deve ser um código ISO 4217 (e.g. USD).")
	}

	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		locale = domain.DefaultLocale
	}
	if !localePattern.MatchString(locale) {
		return domain.Store{}, apperror.NewValidationError("Locale inválido (e.g. en-US).")
	}

	theme := req.Theme
	if theme == nil {
		theme = map[string]string{}
	}

	store, err := s.repo.Create(ctx, domain.Store{
		OwnerUserID: session.UserID,
		Name:        name,
		Domain:      storeDomain,
		Theme:       theme,
		Currency:    currency,
		Locale:      locale,
	}, domain.RoleSuperAdmin)
	if err != nil {
		return domain.Store{}, err
	}
	return store, nil
}

// GetStorefront resolve a visão pública da loja pelo domínio.
func (s *Service) GetStorefront(ctx context.Context, storeDomain string) (domain.PublicStore, error) {
	normalized := domain.NormalizeDomain(storeDomain)
	if normalized == "" || !domainPattern.MatchString(normalized) {
		return domain.PublicStore{}, apperror.NewNotFoundError("Loja não encontrada.")
	}

	store, err := s.repo.FindByDomain(ctx, normalized)
	if err != nil {
		return domain.PublicStore{}, err
	}
	return store.Public(), nil
}
