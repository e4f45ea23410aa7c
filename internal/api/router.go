package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mindgrid/mindgrid-server/internal/api/handler"
	"github.com/mindgrid/mindgrid-server/internal/api/middleware"
	"github.com/mindgrid/mindgrid-server/internal/services/account"
	"github.com/mindgrid/mindgrid-server/internal/services/admin"
	"github.com/mindgrid/mindgrid-server/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthSecret     []byte
	AccountService *account.Service
	SessionService *session.Service
	AdminService   *admin.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AccountService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.SessionService, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.AdminService, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthSecret)
	adminMiddleware := middleware.RequireAdmin()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Account routes: registration still requires a verified identity,
	// since the subject ID comes from the identity provider's token
	accounts := api.PathPrefix("/accounts").Subrouter()
	accounts.Use(authMiddleware)
	accounts.HandleFunc("", accountHandler.Register).Methods(http.MethodPost)
	accounts.HandleFunc("/me", accountHandler.GetMe).Methods(http.MethodGet)

	// Game session routes
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/finish", gameHandler.Finish).Methods(http.MethodPost)

	// Privileged maintenance routes
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMiddleware)
	adminRoutes.Use(adminMiddleware)
	adminRoutes.HandleFunc("/reset-legal-flags", adminHandler.ResetLegalFlags).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
