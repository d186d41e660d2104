package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"gostore/internal/api/auth"
	"gostore/internal/api/customer"
	"gostore/internal/api/response"
	"gostore/internal/api/staff"
	"gostore/internal/api/store"
	"gostore/internal/pkg/cache"
	"gostore/internal/pkg/logger"
	"gostore/internal/pkg/middleware"
	"gostore/internal/service/sessionservice"

	_ "gostore/docs" // registra a especificação Swagger
)

// Handlers reúne os handlers já inicializados, recebidos por injeção de dependências.
type Handlers struct {
	Auth     *auth.Handler
	Stores   *store.Handler
	Staff    *staff.Handler
	Customer *customer.Handler
}

// RateLimit configura o limitador das rotas de login.
type RateLimit struct {
	MaxRequests int
	Period      time.Duration
}

// Dependencies são os recursos compartilhados pelos middlewares.
type Dependencies struct {
	Sessions  *sessionservice.Resolver
	Cache     cache.Client
	RateLimit RateLimit
	Writer    *response.Writer
	Logger    logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
// A ordem externa é: log da requisição -> guarda de rotas -> mux.
func NewRouter(h Handlers, deps Dependencies) http.Handler {
	r := mux.NewRouter()

	// --- 1. Health check e documentação ---
	r.HandleFunc("/ping", PingHandler).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	adminAuth := middleware.AdminAuth(deps.Sessions, deps.Writer)
	customerAuth := middleware.CustomerAuth(deps.Sessions, deps.Writer)
	limit := func(scope string, next http.HandlerFunc) http.Handler {
		return middleware.RateLimiter(deps.Cache, scope, deps.RateLimit.MaxRequests, deps.RateLimit.Period, deps.Writer, deps.Logger)(next)
	}

	// --- 2. Autenticação do painel ---
	r.HandleFunc("/api/auth/signup", h.Auth.SignUpHandler).Methods(http.MethodPost)
	r.Handle("/api/auth/signin", limit("admin-signin", h.Auth.SignInHandler)).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signout", h.Auth.SignOutHandler).Methods(http.MethodPost)
	r.Handle("/api/auth/session", adminAuth(http.HandlerFunc(h.Auth.SessionHandler))).Methods(http.MethodGet)

	// --- 3. Lojas ---
	r.Handle("/api/stores", adminAuth(http.HandlerFunc(h.Stores.CreateStoreHandler))).Methods(http.MethodPost)
	r.Handle("/api/stores/{storeId}", adminAuth(http.HandlerFunc(h.Stores.GetStoreHandler))).Methods(http.MethodGet)
	r.HandleFunc("/api/storefront/{domain}", h.Stores.StorefrontHandler).Methods(http.MethodGet)

	// --- 4. Rotas escopadas pela loja ---
	scoped := r.PathPrefix("/api/{storeId}").MatcherFunc(notReservedSegment).Subrouter()
	scoped.Handle("/auth/permissions", adminAuth(http.HandlerFunc(h.Auth.PermissionsHandler))).Methods(http.MethodGet)
	scoped.Handle("/staff/invitations", adminAuth(http.HandlerFunc(h.Staff.CreateInvitationHandler))).Methods(http.MethodPost)
	scoped.HandleFunc("/staff/join", h.Staff.JoinPageHandler).Methods(http.MethodGet)
	scoped.HandleFunc("/staff/join", h.Staff.JoinHandler).Methods(http.MethodPost)

	scoped.HandleFunc("/customer/signup", h.Customer.SignUpHandler).Methods(http.MethodPost)
	scoped.Handle("/customer/signin", limit("customer-signin", h.Customer.SignInHandler)).Methods(http.MethodPost)
	scoped.HandleFunc("/customer/refresh", h.Customer.RefreshHandler).Methods(http.MethodPost)
	scoped.Handle("/customer/me", customerAuth(http.HandlerFunc(h.Customer.MeHandler))).Methods(http.MethodGet)

	guarded := middleware.RouteGuard(middleware.AdminCookieName, middleware.DefaultPublicPaths, "/signin", deps.Writer)(r)
	return middleware.RequestLogger(deps.Logger)(guarded)
}

// reservedSegments são os primeiros segmentos de /api/ que nunca são um storeId.
var reservedSegments = map[string]bool{
	"auth":       true,
	"stores":     true,
	"storefront": true,
}

// notReservedSegment impede que o subrouter da loja capture /api/auth, /api/stores e
// /api/storefront. Sem isso, o 404 do subrouter apaga o 405 das rotas de cima.
func notReservedSegment(r *http.Request, _ *mux.RouteMatch) bool {
	first := strings.TrimPrefix(r.URL.Path, "/api/")
	if i := strings.IndexByte(first, '/'); i >= 0 {
		first = first[:i]
	}
	return !reservedSegments[first]
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
