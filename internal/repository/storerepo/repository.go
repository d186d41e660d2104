package storerepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/database"
	"gostore/internal/pkg/logger"
	"gostore/internal/repository/rolerepo"
)

// storeDomainCacheKey é a chave da vitrine por domínio.
const storeDomainCacheKey = "store:domain:%s"

const storeColumns = `id, owner_user_id, name, domain, theme, currency, locale, created_at, updated_at`

// StoreRepository persiste lojas. Cache guarda apenas a resolução domínio -> loja da vitrine.
type StoreRepository struct {
	DB        *sql.DB
	Cache     cache.Client // Opcional; nil desativa o cache
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewStoreRepository cria o repositório de lojas.
func NewStoreRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *StoreRepository {
	return &StoreRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Create insere a loja e atribui ao dono o papel informado, na mesma transação.
func (r *StoreRepository) Create(ctx context.Context, store domain.Store, ownerRoleName string) (domain.Store, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de criação de loja.", err)
		return domain.Store{}, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback() // Sem efeito após o Commit

	// 1. Prepara a loja
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	store.CreatedAt = time.Now().UTC()
	store.UpdatedAt = store.CreatedAt

	theme, err := json.Marshal(themeOrEmpty(store.Theme))
	if err != nil {
		return domain.Store{}, apperror.NewInternalError("Falha ao serializar tema da loja.", err)
	}

	// 2. Insere a loja
	_, err = tx.ExecContext(ctxTimeout,
		`INSERT INTO stores (`+storeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		store.ID, store.OwnerUserID, store.Name, store.Domain, theme, store.Currency, store.Locale, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Info("Domínio de loja já em uso.", map[string]interface{}{"domain": store.Domain})
			return domain.Store{}, apperror.NewConflictError(fmt.Sprintf("O domínio '%s' já está em uso.", store.Domain))
		}
		r.logger.Error("Falha ao inserir loja no DB.", err)
		return domain.Store{}, apperror.NewDBError("Falha ao inserir loja", err)
	}

	// 3. Atribui o papel do dono usando o repositório de papéis sobre a mesma transação
	roles := rolerepo.NewRoleRepository(tx, r.DBTimeout, r.logger)
	role, err := roles.FindRoleByName(ctxTimeout, ownerRoleName)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Store{}, apperror.NewInternalError(fmt.Sprintf("Papel '%s' não cadastrado (seed ausente).", ownerRoleName), err)
		}
		return domain.Store{}, err
	}
	if _, err := roles.CreateAssignment(ctxTimeout, domain.RoleAssignment{UserID: store.OwnerUserID, RoleID: role.ID, StoreID: store.ID}); err != nil {
		return domain.Store{}, err
	}

	// 4. Commit
	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar criação de loja.", err)
		return domain.Store{}, apperror.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Loja criada com sucesso.", map[string]interface{}{"store_id": store.ID, "owner_user_id": store.OwnerUserID})
	return store, nil
}

// FindByIDAndOwner busca a loja apenas se ela pertencer ao usuário.
// Loja inexistente e loja de outro dono são indistinguíveis (NotFound).
func (r *StoreRepository) FindByIDAndOwner(ctx context.Context, id, ownerUserID string) (domain.Store, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout,
		`SELECT `+storeColumns+` FROM stores WHERE id = $1 AND owner_user_id = $2`, id, ownerUserID)

	store, err := scanStore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Store{}, apperror.NewNotFoundError("Loja não encontrada.")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar loja por dono no DB.", err)
		return domain.Store{}, apperror.NewDBError("Falha ao buscar loja", err)
	}
	return store, nil
}

// FindByDomain resolve a loja da vitrine pelo domínio, utilizando a estratégia Cache-Aside.
func (r *StoreRepository) FindByDomain(ctx context.Context, storeDomain string) (domain.Store, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(storeDomainCacheKey, storeDomain)

	// 1. Cache (Redis)
	if r.Cache != nil {
		cached, err := r.Cache.Get(ctxTimeout, key)
		if err == nil {
			var store domain.Store
			if json.Unmarshal([]byte(cached), &store) == nil {
				r.logger.Debug("Loja encontrada no cache.", map[string]interface{}{"domain": storeDomain})
				return store, nil
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			// Falha real de cache não impede a leitura do banco.
			r.logger.Warn("Falha ao ler loja do cache.", map[string]interface{}{"domain": storeDomain, "error": err.Error()})
		}
	}

	// 2. Banco de Dados
	row := r.DB.QueryRowContext(ctxTimeout,
		`SELECT `+storeColumns+` FROM stores WHERE lower(domain) = $1`, storeDomain)

	store, err := scanStore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Store{}, apperror.NewNotFoundError(fmt.Sprintf("Nenhuma loja para o domínio '%s'.", storeDomain))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar loja por domínio no DB.", err)
		return domain.Store{}, apperror.NewDBError("Falha ao buscar loja por domínio", err)
	}

	// 3. Popula o cache
	if r.Cache != nil {
		if payload, marshalErr := json.Marshal(store); marshalErr == nil {
			if setErr := r.Cache.Set(ctxTimeout, key, payload, r.CacheTTL); setErr != nil {
				r.logger.Warn("Falha ao gravar loja no cache.", map[string]interface{}{"domain": storeDomain, "error": setErr.Error()})
			}
		}
	}

	return store, nil
}

func scanStore(row *sql.Row) (domain.Store, error) {
	var (
		store domain.Store
		theme []byte
	)
	err := row.Scan(
		&store.ID,
		&store.OwnerUserID,
		&store.Name,
		&store.Domain,
		&theme,
		&store.Currency,
		&store.Locale,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
	if err != nil {
		return domain.Store{}, err
	}

	store.Theme = map[string]string{}
	if len(theme) > 0 {
		if err := json.Unmarshal(theme, &store.Theme); err != nil {
			return domain.Store{}, fmt.Errorf("tema inválido: %w", err)
		}
	}
	return store, nil
}

func themeOrEmpty(theme map[string]string) map[string]string {
	if theme == nil {
		return map[string]string{}
	}
	return theme
}
