package api

import (
	"net/http"

	"hisab/backend/database"
	"hisab/backend/handlers"
	"hisab/backend/logging"
	"hisab/backend/middleware"
	"hisab/backend/services"

	"github.com/gorilla/mux"
)

// Options configures the HTTP surface of the server.
type Options struct {
	Verifier       middleware.Verifier
	CookieName     string
	AllowedOrigins []string
	Development    bool
	Limits         services.PageLimits
	Logger         *logging.Logger
}

// Server represents the API server
type Server struct {
	router  *mux.Router
	handler http.Handler
}

// NewServer creates a new API server over db.
func NewServer(db *database.DB, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.New(logging.Config{Component: logging.ComponentHTTP})
	}
	if opts.Limits == (services.PageLimits{}) {
		opts.Limits = services.DefaultPageLimits
	}

	s := &Server{router: mux.NewRouter()}

	h := handlers.NewHandler(db, opts.Limits)
	auth := middleware.Auth(opts.Verifier, opts.CookieName)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	h.RegisterRoutes(s.router, auth)
	h.RegisterRoutes(s.router.PathPrefix("/api").Subrouter(), auth)

	// CORS wraps the router so preflight requests for any path are answered.
	s.handler = logging.Middleware(opts.Logger)(middleware.CORS(opts.AllowedOrigins, opts.Development)(s.router))
	return s
}

// Handler returns the HTTP handler for the API server
func (s *Server) Handler() http.Handler {
	return s.handler
}
