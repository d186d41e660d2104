package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"gostore/config"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/database"
	"gostore/internal/pkg/hasher"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/token"

	// Camadas para injeção de dependências
	"gostore/internal/api/auth"
	"gostore/internal/api/customer"
	"gostore/internal/api/response"
	"gostore/internal/api/router"
	"gostore/internal/api/staff"
	"gostore/internal/api/store"
	"gostore/internal/repository/customerrepo"
	"gostore/internal/repository/rolerepo"
	"gostore/internal/repository/staffrepo"
	"gostore/internal/repository/storerepo"
	"gostore/internal/repository/userrepo"
	"gostore/internal/service/authzservice"
	"gostore/internal/service/customerservice"
	"gostore/internal/service/sessionservice"
	"gostore/internal/service/storeservice"
	"gostore/internal/service/userservice"
)

// @title GoStore API
// @version 1.0
// @description Núcleo de autenticação e autorização multi-loja do GoStore.
// @host localhost:8080
// @BasePath /
func main() {
	// 0. Variáveis de ambiente (.env é opcional, e.g. em Docker)
	log.Println("⚡ Inicializando serviço GoStore...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 1. Recursos de infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis), com contador em memória quando indisponível
	var cacheClient cache.Client
	if cfg.RedisAddr == "" {
		cacheClient = cache.NewMemoryClient()
		appLog.Warn("REDIS_ADDR vazio; usando cache em memória.", nil)
	} else if cacheClient, err = cache.NewRedisClient(cfg.RedisAddr); err != nil {
		appLog.Warn("Redis indisponível; usando cache em memória.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		cacheClient = cache.NewMemoryClient()
	} else {
		appLog.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	}

	// C. Tokens e senhas
	adminTokens := token.NewCodec(cfg.JWTSecretKey, cfg.AdminTokenExpiry, token.AudienceAdmin)
	accessTokens := token.NewCodec(cfg.CustomerAccessSecret, cfg.CustomerAccessExpiry, token.AudienceCustomerAccess)
	refreshTokens := token.NewCodec(cfg.CustomerRefreshSecret, cfg.CustomerRefreshExpiry, token.AudienceCustomerRefresh)
	passwordHasher := hasher.NewBcrypt(cfg.BcryptCost)

	// 2. Injeção de dependências: Repository -> Service -> Handler
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)
	roleRepo := rolerepo.NewRoleRepository(db, cfg.DBTimeout, appLog)
	storeRepo := storerepo.NewStoreRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	invitationRepo := staffrepo.NewInvitationRepository(db, cfg.DBTimeout, appLog)
	customerRepo := customerrepo.NewCustomerRepository(db, cfg.DBTimeout, appLog)
	appLog.Debug("Repositórios inicializados.", nil)

	userSvc := userservice.NewService(userRepo, adminTokens, passwordHasher, appLog)
	storeSvc := storeservice.NewService(storeRepo, appLog)
	authzSvc := authzservice.NewService(storeRepo, roleRepo, invitationRepo, passwordHasher, cfg.InvitationTTL, appLog)
	customerSvc := customerservice.NewService(customerRepo, accessTokens, refreshTokens, passwordHasher, appLog)
	sessions := sessionservice.NewResolver(adminTokens, accessTokens)
	appLog.Debug("Serviços inicializados.", nil)

	rw := response.NewWriter(appLog)
	handlers := router.Handlers{
		Auth:     auth.NewHandler(userSvc, authzSvc, rw, cfg.IsProduction()),
		Stores:   store.NewHandler(storeSvc, authzSvc, rw),
		Staff:    staff.NewHandler(authzSvc, rw),
		Customer: customer.NewHandler(customerSvc, rw),
	}

	// 3. Roteador e servidor
	r := router.NewRouter(handlers, router.Dependencies{
		Sessions: sessions,
		Cache:    cacheClient,
		RateLimit: router.RateLimit{
			MaxRequests: cfg.RateLimitMaxRequests,
			Period:      cfg.RateLimitPeriod,
		},
		Writer: rw,
		Logger: appLog,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoStore ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
