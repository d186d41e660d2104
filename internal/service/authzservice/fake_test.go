package authzservice_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/repository/staffrepo"
)

// memDB é um banco em memória para os testes do serviço. O mutex de WithinAcceptance
// faz o papel do SELECT ... FOR UPDATE: as unidades de trabalho são serializadas.
type memDB struct {
	mu          sync.Mutex
	stores      map[string]domain.Store
	roles       map[string]domain.Role
	users       map[string]domain.User // por e-mail
	assignments []domain.RoleAssignment
	invitations map[string]domain.StaffInvitation
}

func newMemDB() *memDB {
	return &memDB{
		stores:      map[string]domain.Store{},
		roles:       map[string]domain.Role{},
		users:       map[string]domain.User{},
		invitations: map[string]domain.StaffInvitation{},
	}
}

func (m *memDB) addStore(ownerID string) domain.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := domain.Store{ID: uuid.NewString(), OwnerUserID: ownerID, Name: "Loja"}
	m.stores[s.ID] = s
	return s
}

func (m *memDB) addRole(name string, permissions ...string) domain.Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := domain.Role{ID: uuid.NewString(), Name: name}
	for _, p := range permissions {
		r.Permissions = append(r.Permissions, domain.Permission{ID: uuid.NewString(), Name: p})
	}
	m.roles[r.ID] = r
	return r
}

func (m *memDB) assign(userID, roleID, storeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = append(m.assignments, domain.RoleAssignment{ID: uuid.NewString(), UserID: userID, RoleID: roleID, StoreID: storeID})
}

func (m *memDB) invitation(id string) domain.StaffInvitation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invitations[id]
}

func (m *memDB) countAssignments(roleID, storeID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.assignments {
		if a.RoleID == roleID && a.StoreID == storeID {
			n++
		}
	}
	return n
}

// StoreRepository

func (m *memDB) FindByIDAndOwner(_ context.Context, id, ownerUserID string) (domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[id]
	if !ok || s.OwnerUserID != ownerUserID {
		return domain.Store{}, apperror.NewNotFoundError("Loja não encontrada.")
	}
	return s, nil
}

// RoleRepository

func (m *memDB) ListAssignments(_ context.Context, userID, storeID string) ([]domain.RoleAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.RoleAssignment{}
	for _, a := range m.assignments {
		if a.UserID == userID && a.StoreID == storeID {
			role := m.roles[a.RoleID]
			a.Role = &role
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memDB) FindRoleByID(_ context.Context, id string) (domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[id]
	if !ok {
		return domain.Role{}, apperror.NewNotFoundError("Papel não encontrado.")
	}
	return r, nil
}

// InvitationRepository

func (m *memDB) Create(_ context.Context, inv domain.StaffInvitation) (domain.StaffInvitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	m.invitations[inv.ID] = inv
	return inv, nil
}

func (m *memDB) FindByID(_ context.Context, id string) (domain.StaffInvitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invitations[id]
	if !ok {
		return domain.StaffInvitation{}, apperror.NewNotFoundError("Convite não encontrado.")
	}
	return inv, nil
}

func (m *memDB) WithinAcceptance(_ context.Context, fn func(tx staffrepo.AcceptanceTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{db: m, users: map[string]domain.User{}, invitations: map[string]domain.StaffInvitation{}}
	if err := fn(tx); err != nil {
		return err // descarta o que foi preparado
	}
	for k, u := range tx.users {
		m.users[k] = u
	}
	m.assignments = append(m.assignments, tx.assignments...)
	for k, inv := range tx.invitations {
		m.invitations[k] = inv
	}
	return nil
}

// memTx prepara as escritas e só as aplica no commit. Chamado com memDB.mu travado.
type memTx struct {
	db          *memDB
	users       map[string]domain.User
	assignments []domain.RoleAssignment
	invitations map[string]domain.StaffInvitation
}

func (t *memTx) LockInvitation(_ context.Context, id string) (domain.StaffInvitation, error) {
	inv, ok := t.db.invitations[id]
	if !ok {
		return domain.StaffInvitation{}, apperror.NewNotFoundError("Convite não encontrado.")
	}
	return inv, nil
}

func (t *memTx) FindUserByEmail(_ context.Context, email string) (domain.User, error) {
	if u, ok := t.users[email]; ok {
		return u, nil
	}
	if u, ok := t.db.users[email]; ok {
		return u, nil
	}
	return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
}

func (t *memTx) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	user.ID = uuid.NewString()
	t.users[user.Email] = user
	return user, nil
}

func (t *memTx) CreateAssignment(_ context.Context, a domain.RoleAssignment) (domain.RoleAssignment, error) {
	for _, existing := range append(t.db.assignments, t.assignments...) {
		if existing.UserID == a.UserID && existing.RoleID == a.RoleID && existing.StoreID == a.StoreID {
			return domain.RoleAssignment{}, apperror.NewConflictError("O usuário já possui este papel nesta loja.")
		}
	}
	a.ID = uuid.NewString()
	t.assignments = append(t.assignments, a)
	return a, nil
}

func (t *memTx) MarkInvitationAccepted(_ context.Context, id string, at time.Time) error {
	inv := t.db.invitations[id]
	if inv.Status != domain.InvitationPending {
		return apperror.NewInvitationInvalidError()
	}
	inv.Status = domain.InvitationAccepted
	inv.AcceptedAt = &at
	t.invitations[id] = inv
	return nil
}

// plainHasher evita o custo do bcrypt nos testes do serviço.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
