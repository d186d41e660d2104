package hasher

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch é retornado quando a senha não corresponde ao hash armazenado.
var ErrMismatch = errors.New("senha não confere")

// Bcrypt gera e verifica hashes de senha. Senhas em texto puro nunca devem ser logadas.
type Bcrypt struct {
	cost int
}

// NewBcrypt cria um Bcrypt com o custo informado, limitado ao intervalo aceito pela biblioteca.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Bcrypt{cost: cost}
}

// Hash produz o hash bcrypt (com salt) da senha.
func (b *Bcrypt) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare retorna nil se a senha corresponde ao hash, ErrMismatch caso contrário.
func (b *Bcrypt) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
