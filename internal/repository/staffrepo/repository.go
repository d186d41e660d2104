package staffrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/database"
	"gostore/internal/pkg/logger"
	"gostore/internal/repository/rolerepo"
	"gostore/internal/repository/userrepo"
)

const invitationColumns = `id, email, role_id, store_id, status, expires_at, created_at, accepted_at`

// AcceptanceTx é a unidade de trabalho do aceite de convite.
// Todas as operações rodam na mesma transação.
type AcceptanceTx interface {
	LockInvitation(ctx context.Context, id string) (domain.StaffInvitation, error)
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	CreateAssignment(ctx context.Context, a domain.RoleAssignment) (domain.RoleAssignment, error)
	MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error
}

// InvitationRepository persiste convites de equipe.
type InvitationRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewInvitationRepository cria o repositório de convites.
func NewInvitationRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *InvitationRepository {
	return &InvitationRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Create insere um convite pendente.
func (r *InvitationRepository) Create(ctx context.Context, inv domain.StaffInvitation) (domain.StaffInvitation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	inv.Email = domain.NormalizeEmail(inv.Email)
	inv.Status = domain.InvitationPending
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO staff_invitations (id, email, role_id, store_id, status, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.Email, inv.RoleID, inv.StoreID, string(inv.Status), inv.ExpiresAt, inv.CreatedAt,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return domain.StaffInvitation{}, apperror.NewNotFoundError("Loja ou papel não encontrado.")
		}
		r.logger.Error("Falha ao inserir convite no DB.", err)
		return domain.StaffInvitation{}, apperror.NewDBError("Falha ao inserir convite", err)
	}

	r.logger.Info("Convite criado.", map[string]interface{}{"invitation_id": inv.ID, "store_id": inv.StoreID})
	return inv, nil
}

// FindByID busca um convite sem bloqueio.
func (r *InvitationRepository) FindByID(ctx context.Context, id string) (domain.StaffInvitation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	return findInvitation(ctxTimeout, r.DB, r.logger,
		`SELECT `+invitationColumns+` FROM staff_invitations WHERE id = $1`, id)
}

// WithinAcceptance executa fn dentro de uma transação. Erro de fn (ou panic) desfaz tudo.
func (r *InvitationRepository) WithinAcceptance(ctx context.Context, fn func(tx AcceptanceTx) error) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de aceite.", err)
		return apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback() // Sem efeito após o Commit

	unit := &acceptanceTx{
		tx:     tx,
		users:  userrepo.NewUserRepository(tx, r.DBTimeout, r.logger),
		roles:  rolerepo.NewRoleRepository(tx, r.DBTimeout, r.logger),
		logger: r.logger,
	}
	if err := fn(unit); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar aceite de convite.", err)
		return apperror.NewDBError("Falha ao commitar transação", err)
	}
	return nil
}

type acceptanceTx struct {
	tx     *sql.Tx
	users  *userrepo.UserRepository
	roles  *rolerepo.RoleRepository
	logger logger.Logger
}

// LockInvitation lê o convite com SELECT ... FOR UPDATE: aceites concorrentes ficam serializados.
func (u *acceptanceTx) LockInvitation(ctx context.Context, id string) (domain.StaffInvitation, error) {
	return findInvitation(ctx, u.tx, u.logger,
		`SELECT `+invitationColumns+` FROM staff_invitations WHERE id = $1 FOR UPDATE`, id)
}

func (u *acceptanceTx) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return u.users.FindByEmail(ctx, email)
}

func (u *acceptanceTx) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	return u.users.Save(ctx, user)
}

func (u *acceptanceTx) CreateAssignment(ctx context.Context, a domain.RoleAssignment) (domain.RoleAssignment, error) {
	return u.roles.CreateAssignment(ctx, a)
}

func (u *acceptanceTx) MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error {
	res, err := u.tx.ExecContext(ctx,
		`UPDATE staff_invitations SET status = $1, accepted_at = $2 WHERE id = $3 AND status = $4`,
		string(domain.InvitationAccepted), at, id, string(domain.InvitationPending),
	)
	if err != nil {
		u.logger.Error("Falha ao marcar convite como aceito.", err)
		return apperror.NewDBError("Falha ao atualizar convite", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NewInvitationInvalidError()
	}
	return nil
}

func findInvitation(ctx context.Context, db database.Querier, log logger.Logger, query, id string) (domain.StaffInvitation, error) {
	var (
		inv        domain.StaffInvitation
		status     string
		acceptedAt sql.NullTime
	)
	err := db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID,
		&inv.Email,
		&inv.RoleID,
		&inv.StoreID,
		&status,
		&inv.ExpiresAt,
		&inv.CreatedAt,
		&acceptedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StaffInvitation{}, apperror.NewNotFoundError("Convite não encontrado.")
	}
	if err != nil {
		log.Error("Falha ao buscar convite no DB.", err)
		return domain.StaffInvitation{}, apperror.NewDBError("Falha ao buscar convite", err)
	}

	inv.Status = domain.InvitationStatus(status)
	if acceptedAt.Valid {
		t := acceptedAt.Time
		inv.AcceptedAt = &t
	}
	return inv, nil
}
