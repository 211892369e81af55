package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/yx043749/beaver-farm/internal/web/handler"
	"github.com/yx043749/beaver-farm/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger    *slog.Logger
	StaticDir string // Path to static files directory
}

// NewRouter creates a new web router serving the frontend pages
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the page routes on r, including the catch-all fallback.
// Mount API routes on r before calling Register.
func Register(r *mux.Router, cfg RouterConfig) {
	pages := handler.NewPageHandler(cfg.StaticDir, cfg.Logger)

	web := r.NewRoute().Subrouter()
	web.Use(middleware.Recovery(cfg.Logger))
	web.Use(middleware.Logging(cfg.Logger))

	// Static files
	staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
	web.PathPrefix("/static/").Handler(staticHandler).Methods(http.MethodGet, http.MethodHead)

	web.HandleFunc("/", pages.Page(handler.IndexPage)).Methods(http.MethodGet)
	web.HandleFunc("/login", pages.Page(handler.LoginPage)).Methods(http.MethodGet)
	web.HandleFunc("/register", pages.Page(handler.RegisterPage)).Methods(http.MethodGet)
	web.HandleFunc("/main", pages.Page(handler.MainPage)).Methods(http.MethodGet)
	web.HandleFunc("/crops", pages.Page(handler.CropsPage)).Methods(http.MethodGet)
	web.HandleFunc("/recipes", pages.Page(handler.RecipesPage)).Methods(http.MethodGet)

	// Anything else outside /api falls back to a static file or the index page
	web.MatcherFunc(notAPI).HandlerFunc(pages.Fallback)
}

func notAPI(r *http.Request, _ *mux.RouteMatch) bool {
	p := r.URL.Path
	return p != "/api" && !strings.HasPrefix(p, "/api/") && p != "/metrics"
}
