// Package server hosts the assembled site the way the production box does:
// pages mounted under the root marker path, the status API and fragment
// beside them, and a reload socket for watch mode.
package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"dashsite/internal/config"
	"dashsite/internal/status"
)

// Server serves the output directory plus the gateway status endpoints.
type Server struct {
	cfg        *config.Config
	log        *zap.Logger
	monitor    *status.Monitor
	store      *status.Store
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
}

// New assembles the server. The store may be nil to serve without history.
func New(cfg *config.Config, log *zap.Logger, monitor *status.Monitor, store *status.Store) *Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		monitor: monitor,
		store:   store,
		hub:     NewHub(log),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.Serve.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	status.RegisterRoutes(r, s.monitor, s.store)

	r.Get("/livereload", s.hub.Handle)

	// The site is mounted under the primary root marker so the dev URLs
	// match the hosted ones and the depth prefixes stay honest.
	marker := strings.TrimSuffix(s.cfg.RootMarkers[0], "/")
	r.Get("/", s.redirectToBrand(marker))
	r.Get(marker, s.redirectToBrand(marker))
	r.Handle(marker+"/*", s.siteHandler(marker))

	return r
}

func (s *Server) redirectToBrand(marker string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, marker+"/"+s.cfg.Brand.Target, http.StatusFound)
	}
}

// siteHandler serves the output directory under the marker prefix. The bare
// marker root also lands on the brand page instead of a directory listing.
func (s *Server) siteHandler(marker string) http.Handler {
	fs := http.StripPrefix(marker+"/", http.FileServer(http.Dir(s.cfg.OutputDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == marker+"/" {
			http.Redirect(w, r, marker+"/"+s.cfg.Brand.Target, http.StatusFound)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the reload hub so watch mode can broadcast rebuilds.
func (s *Server) Hub() *Hub { return s.hub }

// Start begins listening on the configured host and port.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.cfg.Serve.Host, strconv.Itoa(s.cfg.Serve.Port))
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("dashboard server listening",
		zap.String("addr", "http://"+addr+s.cfg.RootMarkers[0]),
		zap.String("output", s.cfg.OutputDir))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
