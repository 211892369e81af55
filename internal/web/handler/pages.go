package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Page files served for the frontend routes
const (
	IndexPage    = "index.html"
	LoginPage    = "login.html"
	RegisterPage = "register.html"
	MainPage     = "main.html"
	CropsPage    = "crops.html"
	RecipesPage  = "recipes.html"
)

// PageHandler serves the static frontend
type PageHandler struct {
	staticDir string
	logger    *slog.Logger
}

// NewPageHandler creates a new PageHandler rooted at staticDir
func NewPageHandler(staticDir string, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		staticDir: staticDir,
		logger:    logger,
	}
}

// Page returns a handler that always serves the named page
func (h *PageHandler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serve(w, r, name)
	}
}

// Fallback serves a static file when one matches the path, otherwise the
// index page so client-side routes still load
func (h *PageHandler) Fallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" && h.exists(name) {
		h.serve(w, r, name)
		return
	}
	h.serve(w, r, IndexPage)
}

func (h *PageHandler) exists(name string) bool {
	info, err := os.Stat(filepath.Join(h.staticDir, filepath.FromSlash(name)))
	return err == nil && !info.IsDir()
}

func (h *PageHandler) serve(w http.ResponseWriter, r *http.Request, name string) {
	file := filepath.Join(h.staticDir, filepath.FromSlash(name))
	if _, err := os.Stat(file); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.Error("failed to stat page",
				slog.String("page", name),
				slog.String("error", err.Error()),
			)
		}
		http.NotFound(w, r)
		return
	}

	if strings.HasSuffix(name, ".html") {
		w.Header().Set("Cache-Control", "no-cache")
	}
	http.ServeFile(w, r, file)
}
