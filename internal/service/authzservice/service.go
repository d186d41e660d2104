package authzservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/repository/staffrepo"
)

// StoreRepository é o contrato de posse de lojas.
type StoreRepository interface {
	FindByIDAndOwner(ctx context.Context, id, ownerUserID string) (domain.Store, error)
}

// RoleRepository é o contrato de papéis e atribuições.
type RoleRepository interface {
	ListAssignments(ctx context.Context, userID, storeID string) ([]domain.RoleAssignment, error)
	FindRoleByID(ctx context.Context, id string) (domain.Role, error)
}

// InvitationRepository é o contrato de persistência de convites.
type InvitationRepository interface {
	Create(ctx context.Context, inv domain.StaffInvitation) (domain.StaffInvitation, error)
	FindByID(ctx context.Context, id string) (domain.StaffInvitation, error)
	WithinAcceptance(ctx context.Context, fn func(tx staffrepo.AcceptanceTx) error) error
}

// PasswordHasher gera o hash da senha de quem aceita um convite.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Service avalia posse e permissões por loja e conduz o ciclo de vida dos convites.
// Conjuntos de permissão nunca são cacheados: cada decisão lê o banco.
type Service struct {
	stores        StoreRepository
	roles         RoleRepository
	invitations   InvitationRepository
	hasher        PasswordHasher
	invitationTTL time.Duration
	now           func() time.Time
	logger        logger.Logger
}

// NewService cria o avaliador de autorização.
func NewService(stores StoreRepository, roles RoleRepository, invitations InvitationRepository, hasher PasswordHasher, invitationTTL time.Duration, logger logger.Logger) *Service {
	return &Service{
		stores:        stores,
		roles:         roles,
		invitations:   invitations,
		hasher:        hasher,
		invitationTTL: invitationTTL,
		now:           time.Now,
		logger:        logger,
	}
}

// WithClock substitui o relógio usado nas expirações.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func adminSession(session domain.Session) (domain.AdminSession, error) {
	admin, ok := session.(domain.AdminSession)
	if !ok || admin.UserID == "" {
		return domain.AdminSession{}, apperror.NewUnauthorizedError("Sessão do painel exigida.")
	}
	return admin, nil
}

// AuthorizeStoreOwner retorna a loja apenas se a sessão for do dono.
// Loja inexistente e loja de outro dono resultam no mesmo NotFound.
func (s *Service) AuthorizeStoreOwner(ctx context.Context, session domain.Session, storeID string) (domain.Store, error) {
	admin, err := adminSession(session)
	if err != nil {
		return domain.Store{}, err
	}
	id, ok := domain.CanonicalID(storeID)
	if !ok {
		return domain.Store{}, apperror.NewNotFoundError("Loja não encontrada.")
	}
	return s.stores.FindByIDAndOwner(ctx, id, admin.UserID)
}

// EffectivePermissions é a união das permissões de todos os papéis do usuário na loja.
// Sem atribuições, o conjunto é vazio.
func (s *Service) EffectivePermissions(ctx context.Context, userID, storeID string) (domain.PermissionSet, error) {
	set := domain.NewPermissionSet()
	storeID, ok := domain.CanonicalID(storeID)
	if !ok {
		return set, nil
	}

	assignments, err := s.roles.ListAssignments(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.StoreID != storeID || a.Role == nil {
			continue
		}
		set.AddRole(*a.Role)
	}

	s.logger.Debug("Permissões efetivas calculadas.", map[string]interface{}{"user_id": userID, "store_id": storeID, "count": len(set)})
	return set, nil
}

// HasPermission testa uma permissão no conjunto efetivo.
func (s *Service) HasPermission(ctx context.Context, userID, storeID, name string) (bool, error) {
	set, err := s.EffectivePermissions(ctx, userID, storeID)
	if err != nil {
		return false, err
	}
	return set.Has(name), nil
}

// RequirePermission libera o dono da loja; os demais precisam da permissão no conjunto efetivo.
func (s *Service) RequirePermission(ctx context.Context, session domain.Session, storeID, name string) error {
	admin, err := adminSession(session)
	if err != nil {
		return err
	}

	_, err = s.AuthorizeStoreOwner(ctx, admin, storeID)
	if err == nil {
		return nil
	}
	var notFound *apperror.NotFoundError
	if !errors.As(err, &notFound) {
		return err
	}

	ok, err := s.HasPermission(ctx, admin.UserID, storeID, name)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Info("Permissão negada.", map[string]interface{}{"user_id": admin.UserID, "store_id": storeID, "permission": name})
		return apperror.NewForbiddenError("Permissão insuficiente para esta loja.")
	}
	return nil
}

// CreateInvitation convida um e-mail para um papel na loja. Exige staff:write (ou ser o dono).
func (s *Service) CreateInvitation(ctx context.Context, session domain.Session, storeID string, req domain.InvitationCreation) (domain.StaffInvitation, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.StaffInvitation{}, apperror.NewValidationError("E-mail do convidado inválido.")
	}
	roleID, ok := domain.CanonicalID(req.RoleID)
	if !ok {
		return domain.StaffInvitation{}, apperror.NewValidationError("roleId inválido.")
	}
	if id, ok := domain.CanonicalID(storeID); ok {
		storeID = id
	}

	if err := s.RequirePermission(ctx, session, storeID, domain.PermissionStaffWrite); err != nil {
		return domain.StaffInvitation{}, err
	}

	if _, err := s.roles.FindRoleByID(ctx, roleID); err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.StaffInvitation{}, apperror.NewValidationError("Papel informado não existe.")
		}
		return domain.StaffInvitation{}, err
	}

	now := s.now().UTC()
	return s.invitations.Create(ctx, domain.StaffInvitation{
		Email:     email,
		RoleID:    roleID,
		StoreID:   storeID,
		Status:    domain.InvitationPending,
		ExpiresAt: now.Add(s.invitationTTL),
		CreatedAt: now,
	})
}

// GetPendingInvitation devolve o convite que a página de entrada exibe antes do aceite.
// Os mesmos casos que impedem o aceite resultam em InvitationInvalid.
func (s *Service) GetPendingInvitation(ctx context.Context, storeID, invitationID string) (domain.StaffInvitation, error) {
	invitationID, okInvitation := domain.CanonicalID(invitationID)
	storeID, okStore := domain.CanonicalID(storeID)
	if !okInvitation || !okStore {
		return domain.StaffInvitation{}, apperror.NewInvitationInvalidError()
	}

	inv, err := s.invitations.FindByID(ctx, invitationID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.StaffInvitation{}, apperror.NewInvitationInvalidError()
		}
		return domain.StaffInvitation{}, err
	}
	if !inv.CanBeAccepted(storeID, s.now().UTC()) {
		return domain.StaffInvitation{}, apperror.NewInvitationInvalidError()
	}
	return inv, nil
}

// AcceptInvitation consome o convite: encontra ou cria o usuário, cria a atribuição
// e marca o convite como aceito, tudo em uma transação. Qualquer convite inutilizável
// (inexistente, de outra loja, já aceito ou vencido) resulta no mesmo InvitationInvalid.
func (s *Service) AcceptInvitation(ctx context.Context, storeID string, req domain.InvitationAcceptance) (domain.RoleAssignment, error) {
	// 1. Validação
	if req.InvitationID == "" || storeID == "" {
		return domain.RoleAssignment{}, apperror.NewValidationError("invitationId e loja são obrigatórios.")
	}
	if strings.TrimSpace(req.Name) == "" || req.Password == "" {
		return domain.RoleAssignment{}, apperror.NewValidationError("Nome e senha são obrigatórios.")
	}
	if len(req.Password) < domain.MinPasswordLength {
		return domain.RoleAssignment{}, apperror.NewValidationError(fmt.Sprintf("A senha deve ter ao menos %d caracteres.", domain.MinPasswordLength))
	}
	invitationID, ok := domain.CanonicalID(req.InvitationID)
	if !ok {
		return domain.RoleAssignment{}, apperror.NewInvitationInvalidError()
	}
	storeID, ok = domain.CanonicalID(storeID)
	if !ok {
		return domain.RoleAssignment{}, apperror.NewInvitationInvalidError()
	}

	// 2. Hash antes de abrir a transação (o lock da linha fica o menor tempo possível)
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.RoleAssignment{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 3. Unidade de trabalho
	now := s.now().UTC()
	var assignment domain.RoleAssignment
	err = s.invitations.WithinAcceptance(ctx, func(tx staffrepo.AcceptanceTx) error {
		inv, err := tx.LockInvitation(ctx, invitationID)
		if err != nil {
			var notFound *apperror.NotFoundError
			if errors.As(err, &notFound) {
				return apperror.NewInvitationInvalidError()
			}
			return err
		}
		if !inv.CanBeAccepted(storeID, now) {
			return apperror.NewInvitationInvalidError()
		}

		user, err := tx.FindUserByEmail(ctx, inv.Email)
		if err != nil {
			var notFound *apperror.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
			user, err = tx.CreateUser(ctx, domain.User{
				Email:        inv.Email,
				Name:         strings.TrimSpace(req.Name),
				PasswordHash: passwordHash,
			})
			if err != nil {
				return err
			}
		}

		assignment, err = tx.CreateAssignment(ctx, domain.RoleAssignment{
			UserID:  user.ID,
			RoleID:  inv.RoleID,
			StoreID: inv.StoreID,
		})
		if err != nil {
			return err
		}

		return tx.MarkInvitationAccepted(ctx, inv.ID, now)
	})
	if err != nil {
		var invalid *apperror.InvitationInvalidError
		if errors.As(err, &invalid) {
			s.logger.Info("Convite recusado.", map[string]interface{}{"invitation_id": req.InvitationID, "store_id": storeID})
		}
		return domain.RoleAssignment{}, err
	}

	s.logger.Info("Convite aceito.", map[string]interface{}{
		"invitation_id": req.InvitationID,
		"store_id":      storeID,
		"user_id":       assignment.UserID,
	})
	return assignment, nil
}
