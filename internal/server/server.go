// Package server exposes the kitty API over HTTP with JSON payloads.
//
// Handlers only parse requests, call the service layer, and encode
// responses; all balance and settlement logic lives in internal/ledger and
// internal/service.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anmolv/kittysplit/internal/auth"
	"github.com/anmolv/kittysplit/internal/middleware"
	"github.com/anmolv/kittysplit/internal/service"
)

// Server wires the HTTP routes to the service layer.
type Server struct {
	kitties    *service.KittyService
	auth       *service.AuthService
	jwtManager *auth.JWTManager
}

// New creates a Server.
func New(kitties *service.KittyService, authSvc *service.AuthService, jwtManager *auth.JWTManager) *Server {
	return &Server{
		kitties:    kitties,
		auth:       authSvc,
		jwtManager: jwtManager,
	}
}

// Handler returns the full HTTP handler chain: routes under /api/v1 plus
// health and Prometheus endpoints, wrapped in CORS, metrics and request
// logging.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /auth/register", s.handleRegister)
	api.HandleFunc("POST /auth/login", s.handleLogin)

	authed := http.NewServeMux()
	authed.HandleFunc("POST /kitties", s.handleCreateKitty)
	authed.HandleFunc("GET /kitties", s.handleListKitties)
	authed.HandleFunc("GET /kitties/{id}", s.handleGetKitty)
	authed.HandleFunc("POST /kitties/{id}/members", s.handleAddMember)
	authed.HandleFunc("DELETE /kitties/{id}/members/{memberID}", s.handleRemoveMember)
	authed.HandleFunc("POST /kitties/{id}/expenses", s.handleAddExpense)
	authed.HandleFunc("GET /kitties/{id}/expenses", s.handleListExpenses)
	authed.HandleFunc("DELETE /kitties/{id}/expenses/{expenseID}", s.handleDeleteExpense)
	authed.HandleFunc("GET /kitties/{id}/balances", s.handleBalances)
	authed.HandleFunc("POST /kitties/{id}/settlements/toggle", s.handleToggleSettlement)
	api.Handle("/kitties", middleware.RequireAuth(s.jwtManager, authed))
	api.Handle("/kitties/", middleware.RequireAuth(s.jwtManager, authed))

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", api))
	root.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	root.Handle("GET /metrics", promhttp.Handler())

	return middleware.Logging(middleware.Metrics(middleware.CORS(root)))
}
