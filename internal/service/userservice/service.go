package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

// UserRepository define o contrato que o serviço de usuários espera da persistência.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token) para o painel.
type TokenService interface {
	GenerateAdminToken(userID, email string) (string, time.Time, error)
}

// PasswordHasher é o contrato do internal/pkg/hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo UserRepository
	TokenSvc TokenService
	Hasher   PasswordHasher
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, hasher PasswordHasher, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		Hasher:   hasher,
		logger:   logger,
	}
}

// Register registra um novo usuário do painel.
// Ele faz o hashing da senha e lida com validações básicas.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Validação Básica
	email := domain.NormalizeEmail(registration.Email)
	if email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if !strings.Contains(email, "@") {
		return domain.User{}, apperror.NewValidationError("Email inválido.")
	}
	if len(registration.Password) < domain.MinPasswordLength {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("A senha deve ter ao menos %d caracteres.", domain.MinPasswordLength))
	}

	// 2. Hashing da Senha
	hashedPassword, err := s.Hasher.Hash(registration.Password)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 3. Persistência (e-mail duplicado já chega como ConflictError do repositório)
	user, err := s.UserRepo.Save(ctx, domain.User{
		Email:        email,
		Name:         strings.TrimSpace(registration.Name),
		PasswordHash: hashedPassword,
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Login autentica um usuário, verifica a senha e gera o JWT do cookie do painel.
func (s *UserService) Login(ctx context.Context, email string, password string) (string, time.Time, error) {
	// 1. Validação Básica
	if email == "" || password == "" {
		return "", time.Time{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	// 2. Buscar Usuário pelo Email
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira Unauthorized para não dar dicas a invasores.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", time.Time{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return "", time.Time{}, err
	}

	// 3. Comparar Senhas
	if err := s.Hasher.Compare(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 4. Gerar JWT
	tokenString, expiresAt, err := s.TokenSvc.GenerateAdminToken(user.ID, user.Email)
	if err != nil {
		return "", time.Time{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login do painel realizado.", map[string]interface{}{"user_id": user.ID})
	return tokenString, expiresAt, nil
}
