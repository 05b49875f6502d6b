package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server previews generated documentation over HTTP: the literate pages and
// the rendered documents in one directory.
type Server struct {
	router  chi.Router
	docsDir string
	log     *slog.Logger
}

// NewServer creates and configures the preview server over docsDir.
func NewServer(docsDir string, log *slog.Logger) *Server {
	s := &Server{
		docsDir: docsDir,
		log:     log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Handle("/docs/*", http.StripPrefix("/docs/", http.FileServer(http.Dir(s.docsDir))))

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
