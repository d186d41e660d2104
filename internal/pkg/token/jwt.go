package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired indica assinatura válida com 'exp' no passado.
	ErrExpired = errors.New("token expirado")
	// ErrInvalid cobre assinatura inválida, token malformado, emissor ou audiência incorretos.
	ErrInvalid = errors.New("token inválido")
)

// Issuer é o 'iss' de todos os tokens emitidos pela API.
const Issuer = "GoStore-API"

// Audiências distintas impedem que um tipo de token seja aceito no lugar de outro.
const (
	AudienceAdmin           = "dashboard"
	AudienceCustomerAccess  = "storefront-access"
	AudienceCustomerRefresh = "storefront-refresh"
)

// AdminClaims são as claims do token do painel, guardado no cookie 'token'.
type AdminClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CustomerClaims são as claims dos tokens de access e refresh do cliente da loja.
type CustomerClaims struct {
	CustomerID string `json:"customer_id"`
	StoreID    string `json:"store_id"`
	Email      string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Codec assina e valida JWTs HS256 com um único segredo, validade, emissor e audiência.
// Cada tipo de token (painel, access, refresh) tem o seu próprio Codec.
type Codec struct {
	secretKey []byte
	expiry    time.Duration
	issuer    string
	audience  string
	now       func() time.Time
}

// NewCodec cria um Codec com o relógio do sistema.
func NewCodec(secretKey string, expiry time.Duration, audience string) *Codec {
	return &Codec{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		issuer:    Issuer,
		audience:  audience,
		now:       time.Now,
	}
}

// WithClock retorna uma cópia do Codec que usa o relógio informado na emissão e na validação.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	clone := *c
	clone.now = now
	return &clone
}

// Expiry retorna a validade dos tokens emitidos.
func (c *Codec) Expiry() time.Duration {
	return c.expiry
}

func (c *Codec) registered(subject string) (jwt.RegisteredClaims, time.Time) {
	now := c.now()
	expiresAt := now.Add(c.expiry)
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    c.issuer,
		Audience:  jwt.ClaimStrings{c.audience},
		Subject:   subject,
	}, expiresAt
}

func (c *Codec) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return tokenString, nil
}

// parse valida assinatura, algoritmo, emissor, audiência e validade, preenchendo claims.
// A assinatura é verificada antes das claims, então ErrExpired implica assinatura válida.
func (c *Codec) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if !token.Valid {
		return ErrInvalid
	}
	return nil
}

// GenerateAdminToken cria o token de sessão do painel para um usuário.
func (c *Codec) GenerateAdminToken(userID, email string) (string, time.Time, error) {
	registered, expiresAt := c.registered(userID)
	tokenString, err := c.sign(AdminClaims{UserID: userID, Email: email, RegisteredClaims: registered})
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateAdminToken valida um token do painel e retorna suas claims.
func (c *Codec) ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if err := c.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: user_id ausente", ErrInvalid)
	}
	return claims, nil
}

// GenerateCustomerToken cria um token de cliente (access ou refresh, conforme o Codec).
func (c *Codec) GenerateCustomerToken(customerID, storeID, email string) (string, time.Time, error) {
	registered, expiresAt := c.registered(customerID)
	tokenString, err := c.sign(CustomerClaims{
		CustomerID:       customerID,
		StoreID:          storeID,
		Email:            email,
		RegisteredClaims: registered,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateCustomerToken valida um token de cliente e retorna suas claims.
func (c *Codec) ValidateCustomerToken(tokenString string) (*CustomerClaims, error) {
	claims := &CustomerClaims{}
	if err := c.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.CustomerID == "" || claims.StoreID == "" {
		return nil, fmt.Errorf("%w: customer_id ou store_id ausente", ErrInvalid)
	}
	return claims, nil
}
