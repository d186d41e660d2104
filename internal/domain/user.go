package domain

import (
	"strings"
	"time"
)

// User representa o administrador ou membro da equipe (principal do painel).
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRegistration representa o payload de entrada para o cadastro no painel.
type UserRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// MinPasswordLength é o tamanho mínimo aceito para senhas de usuários e clientes.
const MinPasswordLength = 5

// NormalizeEmail aplica a normalização usada na unicidade de e-mails (trim + minúsculas).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
