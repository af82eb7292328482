// Package api exposes the HTTP surface: a JSON API on gorilla/mux with JWT
// authentication, request logging, CORS, and Prometheus metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitq/splitq/internal/auth"
	"github.com/splitq/splitq/internal/config"
	"github.com/splitq/splitq/internal/middleware"
	"github.com/splitq/splitq/internal/service"
	"github.com/splitq/splitq/internal/storage"
)

// Services bundles the application services the API dispatches to.
type Services struct {
	Balances    *service.BalanceService
	Debts       *service.DebtService
	Expenses    *service.ExpenseService
	Settlements *service.SettlementService
	Groups      *service.GroupService
	Contacts    *service.ContactService
	Spending    *service.SpendingService
}

// NewServices wires the full service set onto one store.
func NewServices(store storage.Store) *Services {
	return &Services{
		Balances:    service.NewBalanceService(store),
		Debts:       service.NewDebtService(store),
		Expenses:    service.NewExpenseService(store),
		Settlements: service.NewSettlementService(store),
		Groups:      service.NewGroupService(store),
		Contacts:    service.NewContactService(store),
		Spending:    service.NewSpendingService(store),
	}
}

// APIServer owns the HTTP server and its routing.
type APIServer struct {
	config        *config.Config
	server        *http.Server
	services      *Services
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// New creates an APIServer. The router is configured lazily in Start.
func New(cfg *config.Config, services *Services, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *APIServer {
	return &APIServer{
		config: cfg,
		server: &http.Server{
			Addr: fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		},
		services:      services,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Start configures the router and serves until the listener closes.
func (s *APIServer) Start() error {
	slog.Info("Starting server", "addr", s.server.Addr)

	s.configureRouter()
	return s.server.ListenAndServe()
}

// MustStart panics when the server fails for any reason other than a clean
// shutdown.
func (s *APIServer) MustStart() {
	if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("failed to start server: " + err.Error())
	}
}

// Stop drains in-flight requests and shuts the server down.
func (s *APIServer) Stop(ctx context.Context) error {
	defer slog.Info("Server stopped")
	return s.server.Shutdown(ctx)
}

// Handler returns the configured router, for tests driving the API without a
// listener.
func (s *APIServer) Handler() http.Handler {
	s.configureRouter()
	return s.server.Handler
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()
	router.Use(middleware.Metrics, middleware.Logging, middleware.CORS)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/api/auth/register", s.handleRegister).Methods("POST")
	router.HandleFunc("/api/auth/login", s.handleLogin).Methods("POST")
	router.HandleFunc("/api/categories", s.handleCategories).Methods("GET")

	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(middleware.RequireAuth(s.jwtManager))

	authed.HandleFunc("/expenses", s.handleCreateExpense).Methods("POST")
	authed.HandleFunc("/expenses/{id}", s.handleDeleteExpense).Methods("DELETE")
	authed.HandleFunc("/settlements", s.handleCreateSettlement).Methods("POST")
	authed.HandleFunc("/settlements/{id}", s.handleDeleteSettlement).Methods("DELETE")
	authed.HandleFunc("/groups", s.handleCreateGroup).Methods("POST")
	authed.HandleFunc("/groups", s.handleListGroups).Methods("GET")
	authed.HandleFunc("/groups/{id}", s.handleGetGroup).Methods("GET")
	authed.HandleFunc("/groups/{id}/balances", s.handleGroupBalances).Methods("GET")
	authed.HandleFunc("/balances/{userId}", s.handlePairBalance).Methods("GET")
	authed.HandleFunc("/dashboard", s.handleDashboard).Methods("GET")
	authed.HandleFunc("/contacts", s.handleContacts).Methods("GET")
	authed.HandleFunc("/spending", s.handleSpending).Methods("GET")

	// h2c lets HTTP/2 clients connect without TLS, which is what sits in
	// front of this server behind the reverse proxy.
	s.server.Handler = h2c.NewHandler(router, &http2.Server{})
}
