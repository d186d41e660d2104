package customerservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/token"
)

// CustomerRepository define o contrato que o serviço espera da persistência de clientes.
type CustomerRepository interface {
	Save(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	FindByEmailAndStore(ctx context.Context, email, storeID string) (domain.Customer, error)
	FindByID(ctx context.Context, id, storeID string) (domain.Customer, error)
}

// TokenCodec gera e valida tokens de cliente. Access e refresh usam instâncias distintas.
type TokenCodec interface {
	GenerateCustomerToken(customerID, storeID, email string) (string, time.Time, error)
	ValidateCustomerToken(tokenString string) (*token.CustomerClaims, error)
}

// PasswordHasher é o contrato do internal/pkg/hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Service conduz o ciclo de vida dos tokens de cliente e o cadastro/login na vitrine.
type Service struct {
	repo    CustomerRepository
	access  TokenCodec
	refresh TokenCodec
	hasher  PasswordHasher
	logger  logger.Logger
}

// NewService cria o serviço. access e refresh devem ser assinados com segredos diferentes.
func NewService(repo CustomerRepository, access, refresh TokenCodec, hasher PasswordHasher, logger logger.Logger) *Service {
	return &Service{repo: repo, access: access, refresh: refresh, hasher: hasher, logger: logger}
}

// IssueTokenPair emite um par novo (access curto, refresh longo) para o cliente da loja.
func (s *Service) IssueTokenPair(customerID, storeID, email string) (domain.TokenPair, error) {
	accessToken, accessExp, err := s.access.GenerateCustomerToken(customerID, storeID, email)
	if err != nil {
		return domain.TokenPair{}, apperror.NewInternalError("Falha ao gerar access token.", err)
	}
	refreshToken, refreshExp, err := s.refresh.GenerateCustomerToken(customerID, storeID, email)
	if err != nil {
		return domain.TokenPair{}, apperror.NewInternalError("Falha ao gerar refresh token.", err)
	}
	return domain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh troca um refresh token válido por um par novo. Qualquer falha vira InvalidRefreshToken.
// Não há lista de revogação: o refresh antigo continua válido até expirar.
func (s *Service) Refresh(refreshToken string) (domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.TokenPair{}, apperror.NewInvalidRefreshTokenError("Refresh token ausente.")
	}
	claims, err := s.refresh.ValidateCustomerToken(refreshToken)
	if err != nil {
		s.logger.Debug("Refresh token recusado.", map[string]interface{}{"error": err.Error()})
		return domain.TokenPair{}, apperror.NewInvalidRefreshTokenError("Refresh token inválido ou expirado.")
	}
	return s.IssueTokenPair(claims.CustomerID, claims.StoreID, claims.Email)
}

// SignUp cadastra o cliente na loja e já devolve um par de tokens.
func (s *Service) SignUp(ctx context.Context, storeID string, reg domain.CustomerRegistration) (domain.Customer, domain.TokenPair, error) {
	email := domain.NormalizeEmail(reg.Email)
	if email == "" || !strings.Contains(email, "@") || reg.Password == "" {
		return domain.Customer{}, domain.TokenPair{}, apperror.NewValidationError("E-mail e senha são obrigatórios.")
	}
	if len(reg.Password) < domain.MinPasswordLength {
		return domain.Customer{}, domain.TokenPair{}, apperror.NewValidationError(fmt.Sprintf("A senha deve ter ao menos %d caracteres.", domain.MinPasswordLength))
	}
	storeID, ok := domain.CanonicalID(storeID)
	if !ok {
		return domain.Customer{}, domain.TokenPair{}, apperror.NewNotFoundError("Loja não encontrada.")
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return domain.Customer{}, domain.TokenPair{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	customer, err := s.repo.Save(ctx, domain.Customer{
		StoreID:      storeID,
		Email:        email,
		Name:         strings.TrimSpace(reg.Name),
		PasswordHash: hash,
	})
	if err != nil {
		return domain.Customer{}, domain.TokenPair{}, err
	}

	pair, err := s.IssueTokenPair(customer.ID, customer.StoreID, customer.Email)
	if err != nil {
		return domain.Customer{}, domain.TokenPair{}, err
	}
	s.logger.Info("Cliente cadastrado.", map[string]interface{}{"customer_id": customer.ID, "store_id": storeID})
	return customer, pair, nil
}

// SignIn autentica o cliente na loja. E-mail desconhecido e senha errada são indistinguíveis.
func (s *Service) SignIn(ctx context.Context, storeID, email, password string) (domain.Customer, domain.TokenPair, error) {
	if email == "" || password == "" {
		return domain.Customer{}, domain.TokenPair{}, apperror.NewValidationError("E-mail e senha são obrigatórios.")
	}
	storeID, ok := domain.CanonicalID(storeID)
	if !ok {
		return domain.Customer{}, domain.TokenPair{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	customer, err := s.repo.FindByEmailAndStore(ctx, email, storeID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Customer{}, domain.TokenPair{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.Customer{}, domain.TokenPair{}, err
	}

	if err := s.hasher.Compare(customer.PasswordHash, password); err != nil {
		return domain.Customer{}, domain.TokenPair{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	pair, err := s.IssueTokenPair(customer.ID, customer.StoreID, customer.Email)
	if err != nil {
		return domain.Customer{}, domain.TokenPair{}, err
	}
	return customer, pair, nil
}

// Me carrega o perfil do cliente da sessão.
func (s *Service) Me(ctx context.Context, session domain.CustomerSession) (domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, session.CustomerID, session.StoreID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			// Token íntegro para um cliente que não existe mais.
			return domain.Customer{}, apperror.NewUnauthorizedError("Cliente não encontrado.")
		}
		return domain.Customer{}, err
	}
	return customer, nil
}
