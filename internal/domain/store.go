package domain

import (
	"strings"
	"time"
)

// Store representa uma loja (tenant). Todo recurso do painel é escopado por Store.ID.
type Store struct {
	ID          string            `json:"id"`
	OwnerUserID string            `json:"owner_user_id"`
	Name        string            `json:"name"`
	Domain      string            `json:"domain"` // Único globalmente
	Theme       map[string]string `json:"theme"`  // Configurações de exibição (cores, logo, etc.)
	Currency    string            `json:"currency"`
	Locale      string            `json:"locale"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// StoreCreation é o payload de criação de loja.
type StoreCreation struct {
	Name     string            `json:"name"`
	Domain   string            `json:"domain"`
	Currency string            `json:"currency"`
	Locale   string            `json:"locale"`
	Theme    map[string]string `json:"theme"`
}

// PublicStore é a visão da loja exposta à vitrine, sem o dono.
type PublicStore struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Domain   string            `json:"domain"`
	Theme    map[string]string `json:"theme"`
	Currency string            `json:"currency"`
	Locale   string            `json:"locale"`
}

// Valores padrão de moeda e idioma da loja.
const (
	DefaultCurrency = "USD"
	DefaultLocale   = "en-US"
)

// Public retorna a visão pública da loja.
func (s Store) Public() PublicStore {
	return PublicStore{
		ID:       s.ID,
		Name:     s.Name,
		Domain:   s.Domain,
		Theme:    s.Theme,
		Currency: s.Currency,
		Locale:   s.Locale,
	}
}

// NormalizeDomain remove espaços, ponto final e diferenças de caixa do domínio.
func NormalizeDomain(domain string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
}
