package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yx043749/beaver-farm/internal/api/apierr"
	"github.com/yx043749/beaver-farm/internal/api/handler"
	"github.com/yx043749/beaver-farm/internal/api/middleware"
	"github.com/yx043749/beaver-farm/internal/api/response"
	"github.com/yx043749/beaver-farm/internal/services/auth"
	"github.com/yx043749/beaver-farm/internal/services/farm"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	FarmController *farm.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	return r
}

// Register mounts the API routes and the metrics endpoint on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	farmHandler := handler.NewFarmHandler(cfg.FarmController, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.AuthService)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Metrics)
	api.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	// Public routes
	api.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else requires a session token
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/auto-login", authHandler.AutoLogin).Methods(http.MethodPost)
	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/last-login", authHandler.LastLogin).Methods(http.MethodGet)

	protected.HandleFunc("/crops", farmHandler.Crops).Methods(http.MethodGet)
	protected.HandleFunc("/recipes", farmHandler.Recipes).Methods(http.MethodGet)
	protected.HandleFunc("/user-data", farmHandler.UserData).Methods(http.MethodGet)
	protected.HandleFunc("/save-data", farmHandler.SaveData).Methods(http.MethodPost)

	protected.HandleFunc("/add-habit", farmHandler.AddHabit).Methods(http.MethodPost)
	protected.HandleFunc("/checkin-habit", farmHandler.CheckIn).Methods(http.MethodPost)

	protected.HandleFunc("/plant-crop", farmHandler.Plant).Methods(http.MethodPost)
	protected.HandleFunc("/abandon-crop", farmHandler.Abandon).Methods(http.MethodPost)
	protected.HandleFunc("/harvest-crop", farmHandler.Harvest).Methods(http.MethodPost)

	protected.HandleFunc("/research-recipe", farmHandler.Research).Methods(http.MethodPost)
	protected.HandleFunc("/research-history", farmHandler.ResearchHistory).Methods(http.MethodGet)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}
