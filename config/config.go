package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações do GoStore.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis)
	RedisAddr string
	CacheTTL  time.Duration

	// Segurança: token de sessão do painel (cookie)
	JWTSecretKey     string
	AdminTokenExpiry time.Duration

	// Segurança: tokens do cliente da loja (access/refresh com segredos distintos)
	CustomerAccessSecret  string
	CustomerRefreshSecret string
	CustomerAccessExpiry  time.Duration
	CustomerRefreshExpiry time.Duration

	BcryptCost    int
	InvitationTTL time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// Encerra o processo se alguma variável obrigatória estiver ausente ou inválida.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Cache
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		// 4. Segurança
		JWTSecretKey:          mustGetEnv("JWT_SECRET_KEY"),
		AdminTokenExpiry:      getDurationEnv("ADMIN_TOKEN_EXPIRY_HOURS", 24) * time.Hour,
		CustomerAccessSecret:  mustGetEnv("CUSTOMER_ACCESS_SECRET"),
		CustomerRefreshSecret: mustGetEnv("CUSTOMER_REFRESH_SECRET"),
		CustomerAccessExpiry:  getDurationEnv("CUSTOMER_ACCESS_EXPIRY_MIN", 15) * time.Minute,
		CustomerRefreshExpiry: getDurationEnv("CUSTOMER_REFRESH_EXPIRY_HOURS", 168) * time.Hour,
		BcryptCost:            getIntEnv("BCRYPT_COST", 10),
		InvitationTTL:         getDurationEnv("INVITATION_TTL_HOURS", 168) * time.Hour,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}

	return cfg
}

// Validate verifica as regras que envolvem mais de uma variável.
func (c *Config) Validate() error {
	var problems []string

	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL não pode ser vazia")
	}
	if c.JWTSecretKey == "" {
		problems = append(problems, "JWT_SECRET_KEY não pode ser vazia")
	}
	if c.CustomerAccessSecret == "" || c.CustomerRefreshSecret == "" {
		problems = append(problems, "CUSTOMER_ACCESS_SECRET e CUSTOMER_REFRESH_SECRET são obrigatórias")
	} else if c.CustomerAccessSecret == c.CustomerRefreshSecret {
		// Um segredo vazado não pode forjar o outro tipo de token.
		problems = append(problems, "CUSTOMER_ACCESS_SECRET e CUSTOMER_REFRESH_SECRET devem ser diferentes")
	}
	if c.CustomerAccessExpiry <= 0 || c.CustomerRefreshExpiry <= 0 || c.AdminTokenExpiry <= 0 {
		problems = append(problems, "expirações de token devem ser positivas")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		problems = append(problems, "BCRYPT_COST deve estar entre 4 e 31")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction indica se o cookie de sessão deve ser marcado como Secure.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
