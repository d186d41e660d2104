package customerrepo

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

const customerColumns = `id, store_id, email, name, password_hash, created_at, updated_at`

// CustomerRepository persiste clientes da vitrine, sempre escopados à loja.
type CustomerRepository struct {
	DB        database.Querier
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewCustomerRepository(db database.Querier, dbTimeout time.Duration, logger logger.Logger) *CustomerRepository {
	return &CustomerRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Save insere o cliente. (email, loja) duplicado vira ConflictError.
func (r *CustomerRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	customer.Email = domain.NormalizeEmail(customer.Email)
	customer.CreatedAt = time.Now().UTC()
	customer.UpdatedAt = customer.CreatedAt

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO customers (`+customerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		customer.ID, customer.StoreID, customer.Email, customer.Name, customer.PasswordHash, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Info("Cliente já cadastrado na loja.", map[string]interface{}{"store_id": customer.StoreID})
			return domain.Customer{}, apperror.NewConflictError("O e-mail informado já está cadastrado nesta loja.")
		}
		if database.IsForeignKeyViolation(err) {
			return domain.Customer{}, apperror.NewNotFoundError("Loja não encontrada.")
		}
		r.logger.Error("Falha ao inserir cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("Falha ao inserir cliente", err)
	}

	r.logger.Info("Cliente salvo.", map[string]interface{}{"customer_id": customer.ID, "store_id": customer.StoreID})
	return customer, nil
}

// FindByEmailAndStore busca pelo par (lower(email), loja).
func (r *CustomerRepository) FindByEmailAndStore(ctx context.Context, email, storeID string) (domain.Customer, error) {
	return r.findOne(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE lower(email) = $1 AND store_id = $2`,
		domain.NormalizeEmail(email), storeID)
}

// FindByID busca o cliente pelo ID dentro da loja.
func (r *CustomerRepository) FindByID(ctx context.Context, id, storeID string) (domain.Customer, error) {
	return r.findOne(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND store_id = $2`,
		id, storeID)
}

func (r *CustomerRepository) findOne(ctx context.Context, query string, args ...interface{}) (domain.Customer, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var c domain.Customer
	err := r.DB.QueryRowContext(ctxTimeout, query, args...).Scan(
		&c.ID, &c.StoreID, &c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, apperror.NewNotFoundError("Cliente não encontrado.")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("Falha ao buscar cliente", err)
	}
	return c, nil
}
