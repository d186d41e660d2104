package domain

import "github.com/google/uuid"

// CanonicalID devolve o UUID na forma canônica (minúsculas, com hífens), a mesma que o
// PostgreSQL devolve. Aceita as variações que uuid.Parse aceita (maiúsculas, chaves, urn:uuid:).
func CanonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// SameID compara dois IDs pela forma canônica. IDs que não são UUID só casam se forem idênticos.
func SameID(a, b string) bool {
	ca, okA := CanonicalID(a)
	cb, okB := CanonicalID(b)
	if okA && okB {
		return ca == cb
	}
	return a == b
}
