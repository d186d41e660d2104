package storerepo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
	"gostore/internal/repository/storerepo"
)

var storeColumns = []string{"id", "owner_user_id", "name", "domain", "theme", "currency", "locale", "created_at", "updated_at"}

func newRepo(t *testing.T, c cache.Client) (*storerepo.StoreRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storerepo.NewStoreRepository(db, c, time.Second, time.Minute, logger.NewNopLogger()), mock
}

func TestCreate_AssignsOwnerRoleInSameTransaction(t *testing.T) {
	repo, mock := newRepo(t, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stores")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM roles WHERE name = $1")).
		WithArgs(domain.RoleSuperAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("role-sa", domain.RoleSuperAdmin))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO role_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store, err := repo.Create(context.Background(), domain.Store{OwnerUserID: "u1", Name: "Loja", Domain: "loja.test"}, domain.RoleSuperAdmin)

	require.NoError(t, err)
	assert.NotEmpty(t, store.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateDomainRollsBack(t *testing.T) {
	repo, mock := newRepo(t, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stores")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.Store{OwnerUserID: "u1", Name: "Loja", Domain: "loja.test"}, domain.RoleSuperAdmin)

	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_MissingSeedRoleIsInternal(t *testing.T) {
	repo, mock := newRepo(t, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stores")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM roles WHERE name = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.Store{OwnerUserID: "u1", Name: "Loja", Domain: "loja.test"}, domain.RoleSuperAdmin)

	assert.IsType(t, &apperror.InternalError{}, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDAndOwner_OtherOwnerIsNotFound(t *testing.T) {
	repo, mock := newRepo(t, nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND owner_user_id = $2")).
		WithArgs("s1", "intruder").
		WillReturnRows(sqlmock.NewRows(storeColumns))

	_, err := repo.FindByIDAndOwner(context.Background(), "s1", "intruder")

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestFindByDomain_CacheAside(t *testing.T) {
	mem := cache.NewMemoryClient()
	repo, mock := newRepo(t, mem)
	now := time.Now().UTC()

	// Apenas a primeira leitura chega ao banco.
	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(domain) = $1")).
		WithArgs("loja.test").
		WillReturnRows(sqlmock.NewRows(storeColumns).
			AddRow("s1", "u1", "Loja", "loja.test", []byte(`{"primary":"#000"}`), "BRL", "pt-BR", now, now))

	first, err := repo.FindByDomain(context.Background(), "loja.test")
	require.NoError(t, err)
	assert.Equal(t, "#000", first.Theme["primary"])

	second, err := repo.FindByDomain(context.Background(), "loja.test")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "BRL", second.Currency)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByDomain_Unknown(t *testing.T) {
	repo, mock := newRepo(t, cache.NewMemoryClient())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(domain) = $1")).
		WithArgs("nada.test").
		WillReturnRows(sqlmock.NewRows(storeColumns))

	_, err := repo.FindByDomain(context.Background(), "nada.test")

	assert.IsType(t, &apperror.NotFoundError{}, err)
}
