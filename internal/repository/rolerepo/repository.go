package rolerepo

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
)

// RoleRepository acessa papéis, permissões e RoleAssignments.
type RoleRepository struct {
	DB        database.Querier
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewRoleRepository cria o repositório sobre uma conexão ou transação.
func NewRoleRepository(db database.Querier, dbTimeout time.Duration, logger logger.Logger) *RoleRepository {
	return &RoleRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// ListAssignments retorna todas as atribuições do par (usuário, loja), cada uma com o papel e suas permissões.
// Nenhuma atribuição resulta em slice vazio, sem erro.
func (r *RoleRepository) ListAssignments(ctx context.Context, userID, storeID string) ([]domain.RoleAssignment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT ra.id, ra.user_id, ra.role_id, ra.store_id, ra.created_at, r.name, p.id, p.name
        FROM role_assignments ra
        JOIN roles r ON r.id = ra.role_id
        LEFT JOIN role_permissions rp ON rp.role_id = r.id
        LEFT JOIN permissions p ON p.id = rp.permission_id
        WHERE ra.user_id = $1 AND ra.store_id = $2
        ORDER BY ra.created_at, ra.id`

	rows, err := r.DB.QueryContext(ctxTimeout, query, userID, storeID)
	if err != nil {
		r.logger.Error("Falha ao listar atribuições de papel no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar atribuições de papel", err)
	}
	defer rows.Close()

	// Uma linha por (atribuição, permissão): agrupa preservando a ordem.
	assignments := []domain.RoleAssignment{}
	index := map[string]int{}
	for rows.Next() {
		var (
			a              domain.RoleAssignment
			roleName       string
			permID, permNm sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.RoleID, &a.StoreID, &a.CreatedAt, &roleName, &permID, &permNm); err != nil {
			r.logger.Error("Falha ao ler atribuição de papel.", err)
			return nil, apperror.NewDBError("Falha ao ler atribuição de papel", err)
		}

		i, seen := index[a.ID]
		if !seen {
			a.Role = &domain.Role{ID: a.RoleID, Name: roleName, Permissions: []domain.Permission{}}
			assignments = append(assignments, a)
			i = len(assignments) - 1
			index[a.ID] = i
		}
		if permNm.Valid {
			role := assignments[i].Role
			role.Permissions = append(role.Permissions, domain.Permission{ID: permID.String, Name: permNm.String})
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Falha ao iterar atribuições de papel.", err)
		return nil, apperror.NewDBError("Falha ao iterar atribuições de papel", err)
	}

	r.logger.Debug("Atribuições de papel carregadas.", map[string]interface{}{"user_id": userID, "store_id": storeID, "count": len(assignments)})
	return assignments, nil
}

// CreateAssignment cria a atribuição (usuário, papel, loja). A tripla é única no banco.
func (r *RoleRepository) CreateAssignment(ctx context.Context, a domain.RoleAssignment) (domain.RoleAssignment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO role_assignments (id, user_id, role_id, store_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.RoleID, a.StoreID, a.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.RoleAssignment{}, apperror.NewConflictError("O usuário já possui este papel nesta loja.")
		}
		r.logger.Error("Falha ao inserir atribuição de papel.", err)
		return domain.RoleAssignment{}, apperror.NewDBError("Falha ao inserir atribuição de papel", err)
	}

	r.logger.Info("Atribuição de papel criada.", map[string]interface{}{"assignment_id": a.ID, "user_id": a.UserID, "store_id": a.StoreID})
	return a, nil
}

// FindRoleByID busca um papel pelo ID (sem as permissões).
func (r *RoleRepository) FindRoleByID(ctx context.Context, id string) (domain.Role, error) {
	return r.findRole(ctx, `SELECT id, name FROM roles WHERE id = $1`, id)
}

// FindRoleByName busca um papel pelo nome (sem as permissões).
func (r *RoleRepository) FindRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return r.findRole(ctx, `SELECT id, name FROM roles WHERE name = $1`, name)
}

func (r *RoleRepository) findRole(ctx context.Context, query, arg string) (domain.Role, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var role domain.Role
	err := r.DB.QueryRowContext(ctxTimeout, query, arg).Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Role{}, apperror.NewNotFoundError("Papel não encontrado.")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar papel no DB.", err)
		return domain.Role{}, apperror.NewDBError("Falha ao buscar papel", err)
	}
	return role, nil
}
