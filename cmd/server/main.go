package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/anmolv/kittysplit/internal/auth"
	"github.com/anmolv/kittysplit/internal/config"
	"github.com/anmolv/kittysplit/internal/server"
	"github.com/anmolv/kittysplit/internal/service"
	"github.com/anmolv/kittysplit/internal/storage/sqlite"
	"github.com/anmolv/kittysplit/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := server.New(
		service.NewKittyService(store),
		service.NewAuthService(authenticator, jwtManager),
		jwtManager,
	)

	// Wrap with h2c for HTTP/2 without TLS
	handler := h2c.NewHandler(srv.Handler(), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
