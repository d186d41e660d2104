package domain

import (
	"sort"
	"time"
)

// Permission é um nome de permissão, e.g. "products:write".
// O vocabulário é aberto: papéis e permissões são dados, não código.
type Permission struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Role agrupa um conjunto de permissões (muitos-para-muitos, único por nome).
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// RoleAssignment liga (User, Role, Store): o usuário tem as permissões do papel apenas naquela loja.
type RoleAssignment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RoleID    string    `json:"role_id"`
	StoreID   string    `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
	Role      *Role     `json:"role,omitempty"`
}

// Permissões e papéis usados pelo próprio núcleo de autorização.
const (
	PermissionStaffWrite = "staff:write"
	RoleSuperAdmin       = "Super Admin" // Atribuído ao dono na criação da loja
)

// PermissionSet é um conjunto de nomes de permissão.
type PermissionSet map[string]struct{}

// NewPermissionSet cria um conjunto com os nomes informados.
func NewPermissionSet(names ...string) PermissionSet {
	s := make(PermissionSet, len(names))
	s.Add(names...)
	return s
}

// Add inclui nomes no conjunto. Nomes vazios são ignorados.
func (s PermissionSet) Add(names ...string) {
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
}

// AddRole inclui todas as permissões do papel.
func (s PermissionSet) AddRole(role Role) {
	for _, p := range role.Permissions {
		s.Add(p.Name)
	}
}

// Has testa a pertinência de um nome.
func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names retorna os nomes em ordem alfabética.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
