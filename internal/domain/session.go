package domain

// Session é a sessão resolvida de uma requisição. Nunca é persistida.
// Tem exatamente duas variantes: AdminSession e CustomerSession.
type Session interface {
	sessionKind() string
}

// AdminSession identifica um usuário do painel. O escopo de loja é resolvido
// a cada requisição consultando posse e RoleAssignments.
type AdminSession struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// CustomerSession identifica um cliente, sempre escopado a uma loja.
type CustomerSession struct {
	CustomerID string `json:"customerId"`
	StoreID    string `json:"storeId"`
	Email      string `json:"email,omitempty"`
}

func (AdminSession) sessionKind() string    { return "admin" }
func (CustomerSession) sessionKind() string { return "customer" }

// IsAdmin indica se a sessão é de um usuário do painel.
func IsAdmin(s Session) bool {
	_, ok := s.(AdminSession)
	return ok
}

// IsCustomer indica se a sessão é de um cliente da loja.
func IsCustomer(s Session) bool {
	_, ok := s.(CustomerSession)
	return ok
}
