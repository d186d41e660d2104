package domain

import "time"

// InvitationStatus é o status persistido do convite.
// "Expirado" não é persistido: é derivado de ExpiresAt no momento do consumo.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// StaffInvitation convida um e-mail a assumir um papel em uma loja.
type StaffInvitation struct {
	ID         string           `json:"id"`
	Email      string           `json:"email"`
	RoleID     string           `json:"role_id"`
	StoreID    string           `json:"store_id"`
	Status     InvitationStatus `json:"status"`
	ExpiresAt  time.Time        `json:"expires_at"`
	CreatedAt  time.Time        `json:"created_at"`
	AcceptedAt *time.Time       `json:"accepted_at,omitempty"`
}

// IsExpired indica o estado virtual "expirado": ainda pendente, mas com prazo vencido.
func (i StaffInvitation) IsExpired(now time.Time) bool {
	return i.Status == InvitationPending && now.After(i.ExpiresAt)
}

// CanBeAccepted é a guarda da transição pending -> accepted para a loja informada.
func (i StaffInvitation) CanBeAccepted(storeID string, now time.Time) bool {
	return SameID(i.StoreID, storeID) &&
		i.Status == InvitationPending &&
		!now.After(i.ExpiresAt)
}

// InvitationAcceptance é o payload de POST /api/{storeId}/staff/join.
type InvitationAcceptance struct {
	InvitationID string `json:"invitationId"`
	Name         string `json:"name"`
	Password     string `json:"password"`
}

// InvitationCreation é o payload de criação de convite.
type InvitationCreation struct {
	Email  string `json:"email"`
	RoleID string `json:"roleId"`
}
