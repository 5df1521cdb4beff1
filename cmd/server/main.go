package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"pokerpal/internal/auth"
	"pokerpal/internal/middleware"
	"pokerpal/internal/service"
	"pokerpal/internal/storage/sqlite"
	"pokerpal/pkg/api"
	"pokerpal/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/pokerpal.db")
	port := getEnv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-do-not-use-in-production"
		slog.Warn("JWT_SECRET not set, using insecure development secret")
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)
	gate := auth.NewAccessGate(store, jwtManager)

	// Join is the only procedure reachable without a token.
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(jwtManager, api.GroupServiceJoinProcedure),
	)

	mux := http.NewServeMux()

	groupPath, groupHandler := api.NewGroupServiceHandler(service.NewGroupService(store, gate), interceptors)
	mux.Handle(groupPath, groupHandler)

	sessionPath, sessionHandler := api.NewSessionServiceHandler(service.NewSessionService(store), interceptors)
	mux.Handle(sessionPath, sessionHandler)

	debtPath, debtHandler := api.NewDebtServiceHandler(service.NewDebtService(store), interceptors)
	mux.Handle(debtPath, debtHandler)

	statsPath, statsHandler := api.NewStatsServiceHandler(service.NewStatsService(store), interceptors)
	mux.Handle(statsPath, statsHandler)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	handler := corsMiddleware(mux)

	// h2c allows HTTP/2 without TLS (required for Connect clients that
	// negotiate h2 upfront).
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := ":" + port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
