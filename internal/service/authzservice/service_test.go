package authzservice_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
	"gostore/internal/service/authzservice"
)

// MockRoleRepository é uma implementação mock da interface RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) ListAssignments(ctx context.Context, userID, storeID string) ([]domain.RoleAssignment, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoleAssignment), args.Error(1)
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, id string) (domain.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Role), args.Error(1)
}

var start = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newService(db *memDB, now *time.Time) *authzservice.Service {
	return authzservice.NewService(db, db, db, plainHasher{}, 7*24*time.Hour, logger.NewNopLogger()).
		WithClock(func() time.Time { return *now })
}

func role(name string, perms ...string) *domain.Role {
	r := &domain.Role{ID: uuid.NewString(), Name: name}
	for _, p := range perms {
		r.Permissions = append(r.Permissions, domain.Permission{Name: p})
	}
	return r
}

func TestEffectivePermissions_UnionOfAssignments(t *testing.T) {
	roles := new(MockRoleRepository)
	storeID := uuid.NewString()
	roles.On("ListAssignments", mock.Anything, "u1", storeID).Return([]domain.RoleAssignment{
		{UserID: "u1", StoreID: storeID, Role: role("R1", "a")},
		{UserID: "u1", StoreID: storeID, Role: role("R2", "b", "a")},
	}, nil)

	svc := authzservice.NewService(nil, roles, nil, plainHasher{}, time.Hour, logger.NewNopLogger())
	set, err := svc.EffectivePermissions(context.Background(), "u1", storeID)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, set.Names())
	roles.AssertExpectations(t)
}

func TestEffectivePermissions_StoreIsolation(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)

	editor := db.addRole("Editor", "products:write")
	s1 := db.addStore("owner")
	s2 := db.addStore("owner")
	db.assign("u1", editor.ID, s1.ID)

	set, err := svc.EffectivePermissions(context.Background(), "u1", s2.ID)
	require.NoError(t, err)
	assert.Empty(t, set)

	ok, err := svc.HasPermission(context.Background(), "u1", s1.ID, "products:write")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEffectivePermissions_RepositoryErrorPropagates(t *testing.T) {
	roles := new(MockRoleRepository)
	storeID := uuid.NewString()
	dbErr := apperror.NewDBError("boom", errors.New("conn reset"))
	roles.On("ListAssignments", mock.Anything, "u1", storeID).Return(nil, dbErr)

	svc := authzservice.NewService(nil, roles, nil, plainHasher{}, time.Hour, logger.NewNopLogger())
	_, err := svc.EffectivePermissions(context.Background(), "u1", storeID)

	assert.Equal(t, dbErr, err)
}

func TestAuthorizeStoreOwner(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	store := db.addStore("alice")

	got, err := svc.AuthorizeStoreOwner(context.Background(), domain.AdminSession{UserID: "alice"}, store.ID)
	require.NoError(t, err)
	assert.Equal(t, store.ID, got.ID)

	// Outro dono e loja inexistente são indistinguíveis.
	_, errOther := svc.AuthorizeStoreOwner(context.Background(), domain.AdminSession{UserID: "mallory"}, store.ID)
	_, errMissing := svc.AuthorizeStoreOwner(context.Background(), domain.AdminSession{UserID: "alice"}, uuid.NewString())
	assert.IsType(t, &apperror.NotFoundError{}, errOther)
	assert.Equal(t, errOther, errMissing)

	_, err = svc.AuthorizeStoreOwner(context.Background(), domain.CustomerSession{CustomerID: "c1", StoreID: store.ID}, store.ID)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

func TestRequirePermission(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	store := db.addStore("alice")
	manager := db.addRole("Manager", domain.PermissionStaffWrite)
	viewer := db.addRole("Viewer", "products:read")
	db.assign("carol", manager.ID, store.ID)
	db.assign("dave", viewer.ID, store.ID)

	ctx := context.Background()
	assert.NoError(t, svc.RequirePermission(ctx, domain.AdminSession{UserID: "alice"}, store.ID, domain.PermissionStaffWrite))
	assert.NoError(t, svc.RequirePermission(ctx, domain.AdminSession{UserID: "carol"}, store.ID, domain.PermissionStaffWrite))

	err := svc.RequirePermission(ctx, domain.AdminSession{UserID: "dave"}, store.ID, domain.PermissionStaffWrite)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
}

func TestCreateInvitation_ValidationAndExpiry(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	store := db.addStore("alice")
	editor := db.addRole("Editor", "products:write")
	owner := domain.AdminSession{UserID: "alice"}

	_, err := svc.CreateInvitation(context.Background(), owner, store.ID, domain.InvitationCreation{Email: "sem-arroba", RoleID: editor.ID})
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.CreateInvitation(context.Background(), owner, store.ID, domain.InvitationCreation{Email: "bob@example.com", RoleID: uuid.NewString()})
	assert.IsType(t, &apperror.ValidationError{}, err)

	inv, err := svc.CreateInvitation(context.Background(), owner, store.ID, domain.InvitationCreation{Email: "Bob@Example.com", RoleID: editor.ID})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", inv.Email)
	assert.Equal(t, domain.InvitationPending, inv.Status)
	assert.Equal(t, start.Add(7*24*time.Hour), inv.ExpiresAt)
}

func TestCreateInvitation_ForbiddenWithoutStaffWrite(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	store := db.addStore("alice")
	viewer := db.addRole("Viewer", "products:read")
	db.assign("dave", viewer.ID, store.ID)

	_, err := svc.CreateInvitation(context.Background(), domain.AdminSession{UserID: "dave"}, store.ID,
		domain.InvitationCreation{Email: "eve@example.com", RoleID: viewer.ID})

	assert.IsType(t, &apperror.ForbiddenError{}, err)
}

// TestScenario_OwnerInvitesEditor reproduz o fluxo completo: o dono convida Bob como Editor,
// Bob aceita e um segundo aceite do mesmo convite é recusado.
func TestScenario_OwnerInvitesEditor(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	ctx := context.Background()

	s1 := db.addStore("u1")
	editor := db.addRole("Editor", "products:read", "products:write")

	inv, err := svc.CreateInvitation(ctx, domain.AdminSession{UserID: "u1"}, s1.ID,
		domain.InvitationCreation{Email: "bob@example.com", RoleID: editor.ID})
	require.NoError(t, err)

	now = now.Add(48 * time.Hour)
	assignment, err := svc.AcceptInvitation(ctx, s1.ID, domain.InvitationAcceptance{InvitationID: inv.ID, Name: "Bob", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, editor.ID, assignment.RoleID)
	assert.Equal(t, s1.ID, assignment.StoreID)

	stored := db.invitation(inv.ID)
	assert.Equal(t, domain.InvitationAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedAt)
	assert.Equal(t, now, *stored.AcceptedAt)

	bob := db.users["bob@example.com"]
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, "hashed:pw123", bob.PasswordHash)

	ok, err := svc.HasPermission(ctx, bob.ID, s1.ID, "products:write")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.AcceptInvitation(ctx, s1.ID, domain.InvitationAcceptance{InvitationID: inv.ID, Name: "Bob", Password: "pw123"})
	assert.IsType(t, &apperror.InvitationInvalidError{}, err)
}

func TestAcceptInvitation_ExistingUserKeepsAccount(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	s1 := db.addStore("u1")
	editor := db.addRole("Editor", "products:write")
	db.users["bob@example.com"] = domain.User{ID: "bob-id", Email: "bob@example.com", Name: "Robert", PasswordHash: "old"}
	inv, err := db.Create(context.Background(), domain.StaffInvitation{
		Email: "bob@example.com", RoleID: editor.ID, StoreID: s1.ID, Status: domain.InvitationPending, ExpiresAt: start.Add(time.Hour),
	})
	require.NoError(t, err)

	assignment, err := svc.AcceptInvitation(context.Background(), s1.ID, domain.InvitationAcceptance{InvitationID: inv.ID, Name: "Bob", Password: "pw123"})

	require.NoError(t, err)
	assert.Equal(t, "bob-id", assignment.UserID)
	assert.Equal(t, "old", db.users["bob@example.com"].PasswordHash)
}

func TestAcceptInvitation_Rejections(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	s1 := db.addStore("u1")
	s2 := db.addStore("u2")
	editor := db.addRole("Editor", "products:write")

	pending, err := db.Create(context.Background(), domain.StaffInvitation{
		Email: "bob@example.com", RoleID: editor.ID, StoreID: s1.ID, Status: domain.InvitationPending, ExpiresAt: start.Add(time.Hour),
	})
	require.NoError(t, err)

	req := func(id string) domain.InvitationAcceptance {
		return domain.InvitationAcceptance{InvitationID: id, Name: "Bob", Password: "pw123"}
	}

	t.Run("loja diferente", func(t *testing.T) {
		_, err := svc.AcceptInvitation(context.Background(), s2.ID, req(pending.ID))
		assert.IsType(t, &apperror.InvitationInvalidError{}, err)
	})
	t.Run("inexistente", func(t *testing.T) {
		_, err := svc.AcceptInvitation(context.Background(), s1.ID, req(uuid.NewString()))
		assert.IsType(t, &apperror.InvitationInvalidError{}, err)
	})
	t.Run("id malformado", func(t *testing.T) {
		_, err := svc.AcceptInvitation(context.Background(), s1.ID, req("nao-uuid"))
		assert.IsType(t, &apperror.InvitationInvalidError{}, err)
	})
	t.Run("senha curta", func(t *testing.T) {
		_, err := svc.AcceptInvitation(context.Background(), s1.ID, domain.InvitationAcceptance{InvitationID: pending.ID, Name: "Bob", Password: "123"})
		assert.IsType(t, &apperror.ValidationError{}, err)
	})
	t.Run("sem nome", func(t *testing.T) {
		_, err := svc.AcceptInvitation(context.Background(), s1.ID, domain.InvitationAcceptance{InvitationID: pending.ID, Password: "pw123"})
		assert.IsType(t, &apperror.ValidationError{}, err)
	})

	assert.Equal(t, domain.InvitationPending, db.invitation(pending.ID).Status)
	assert.Zero(t, db.countAssignments(editor.ID, s1.ID))
}

func TestAcceptInvitation_ExpiredEvenIfPending(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	s1 := db.addStore("u1")
	editor := db.addRole("Editor", "products:write")
	inv, err := db.Create(context.Background(), domain.StaffInvitation{
		Email: "bob@example.com", RoleID: editor.ID, StoreID: s1.ID, Status: domain.InvitationPending, ExpiresAt: start.Add(time.Hour),
	})
	require.NoError(t, err)

	now = start.Add(time.Hour + time.Second)
	_, err = svc.AcceptInvitation(context.Background(), s1.ID, domain.InvitationAcceptance{InvitationID: inv.ID, Name: "Bob", Password: "pw123"})

	assert.IsType(t, &apperror.InvitationInvalidError{}, err)
	assert.Equal(t, domain.InvitationPending, db.invitation(inv.ID).Status)
	assert.Empty(t, db.users)
}

func TestAcceptInvitation_ConcurrentSingleUse(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	s1 := db.addStore("u1")
	editor := db.addRole("Editor", "products:write")
	inv, err := db.Create(context.Background(), domain.StaffInvitation{
		Email: "bob@example.com", RoleID: editor.ID, StoreID: s1.ID, Status: domain.InvitationPending, ExpiresAt: start.Add(time.Hour),
	})
	require.NoError(t, err)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		invalids  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AcceptInvitation(context.Background(), s1.ID, domain.InvitationAcceptance{InvitationID: inv.ID, Name: "Bob", Password: "pw123"})
			mu.Lock()
			defer mu.Unlock()
			var invalid *apperror.InvitationInvalidError
			switch {
			case err == nil:
				successes++
			case errors.As(err, &invalid):
				invalids++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, invalids)
	assert.Equal(t, domain.InvitationAccepted, db.invitation(inv.ID).Status)
	assert.Equal(t, 1, db.countAssignments(editor.ID, s1.ID))
}

func TestEffectivePermissions_NonCanonicalStoreID(t *testing.T) {
	roles := new(MockRoleRepository)
	storeID := uuid.NewString()
	roles.On("ListAssignments", mock.Anything, "u1", storeID).Return([]domain.RoleAssignment{
		{UserID: "u1", StoreID: storeID, Role: role("R1", "a")},
	}, nil)
	svc := authzservice.NewService(nil, roles, nil, plainHasher{}, time.Hour, logger.NewNopLogger())

	for _, variant := range []string{strings.ToUpper(storeID), "{" + storeID + "}"} {
		set, err := svc.EffectivePermissions(context.Background(), "u1", variant)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, set.Names(), variant)
	}
	roles.AssertExpectations(t)
}

func TestStoreScopedCalls_AcceptUppercaseIDs(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	ctx := context.Background()

	s1 := db.addStore("u1")
	editor := db.addRole("Editor", "products:write")
	upperStore := strings.ToUpper(s1.ID)

	got, err := svc.AuthorizeStoreOwner(ctx, domain.AdminSession{UserID: "u1"}, upperStore)
	require.NoError(t, err)
	assert.Equal(t, s1.ID, got.ID)

	inv, err := svc.CreateInvitation(ctx, domain.AdminSession{UserID: "u1"}, upperStore,
		domain.InvitationCreation{Email: "bob@example.com", RoleID: strings.ToUpper(editor.ID)})
	require.NoError(t, err)
	assert.Equal(t, s1.ID, inv.StoreID)
	assert.Equal(t, editor.ID, inv.RoleID)

	assignment, err := svc.AcceptInvitation(ctx, upperStore,
		domain.InvitationAcceptance{InvitationID: strings.ToUpper(inv.ID), Name: "Bob", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, s1.ID, assignment.StoreID)

	ok, err := svc.HasPermission(ctx, assignment.UserID, upperStore, "products:write")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetPendingInvitation(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	s1 := db.addStore("u1")
	s2 := db.addStore("u2")
	editor := db.addRole("Editor", "products:write")
	inv, err := db.Create(context.Background(), domain.StaffInvitation{
		Email: "bob@example.com", RoleID: editor.ID, StoreID: s1.ID, Status: domain.InvitationPending, ExpiresAt: start.Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := svc.GetPendingInvitation(context.Background(), strings.ToUpper(s1.ID), strings.ToUpper(inv.ID))
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.Email)
	assert.Equal(t, editor.ID, got.RoleID)

	cases := map[string]struct {
		storeID, invitationID string
	}{
		"loja diferente": {s2.ID, inv.ID},
		"inexistente":    {s1.ID, uuid.NewString()},
		"id malformado":  {s1.ID, "nao-uuid"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.GetPendingInvitation(context.Background(), tc.storeID, tc.invitationID)
			assert.IsType(t, &apperror.InvitationInvalidError{}, err)
		})
	}

	t.Run("aceito", func(t *testing.T) {
		_, err := svc.AcceptInvitation(context.Background(), s1.ID, domain.InvitationAcceptance{InvitationID: inv.ID, Name: "Bob", Password: "pw123"})
		require.NoError(t, err)

		_, err = svc.GetPendingInvitation(context.Background(), s1.ID, inv.ID)
		assert.IsType(t, &apperror.InvitationInvalidError{}, err)
	})
}

func TestGetPendingInvitation_Expired(t *testing.T) {
	db := newMemDB()
	now := start
	svc := newService(db, &now)
	s1 := db.addStore("u1")
	inv, err := db.Create(context.Background(), domain.StaffInvitation{
		Email: "bob@example.com", RoleID: uuid.NewString(), StoreID: s1.ID, Status: domain.InvitationPending, ExpiresAt: start.Add(time.Hour),
	})
	require.NoError(t, err)

	now = start.Add(time.Hour + time.Second)
	_, err = svc.GetPendingInvitation(context.Background(), s1.ID, inv.ID)

	assert.IsType(t, &apperror.InvitationInvalidError{}, err)
}
