package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/medfleet/backoffice/internal/auth"
	"github.com/medfleet/backoffice/internal/logger"
	"github.com/medfleet/backoffice/internal/service"
)

// Server wires the HTTP surface to the services. One instance serves all
// resources.
type Server struct {
	auth     *service.Auth
	cars     *service.Cars
	users    *service.Users
	orgs     *service.Organizations
	verifier *auth.Verifier
}

// Config collects the services the server fronts.
type Config struct {
	Auth          *service.Auth
	Cars          *service.Cars
	Users         *service.Users
	Organizations *service.Organizations
	Verifier      *auth.Verifier
}

// NewServer creates a server from the given services.
func NewServer(cfg Config) *Server {
	return &Server{
		auth:     cfg.Auth,
		cars:     cfg.Cars,
		users:    cfg.Users,
		orgs:     cfg.Organizations,
		verifier: cfg.Verifier,
	}
}

// Handler builds the routing tree. The login route is open; everything else
// sits behind the bearer-token middleware.
func (s *Server) Handler(corsOrigins []string, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.Requests(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/cars", func(r chi.Router) {
				r.Get("/", s.handleCarList)
				r.Get("/search", s.handleCarSearch)
				r.Post("/", s.handleCarCreate)
				r.Get("/{id}", s.handleCarGet)
				r.Put("/{id}", s.handleCarUpdate)
				r.Delete("/{id}", s.handleCarRemove)
				r.Post("/{id}/bind-tracker", s.handleCarBindTracker)
				r.Post("/{id}/unbind-tracker", s.handleCarUnbindTracker)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.handleUserList)
				r.Post("/", s.handleUserCreate)
				r.Get("/{id}", s.handleUserGet)
				r.Put("/{id}", s.handleUserUpdate)
				r.Delete("/{id}", s.handleUserRemove)
			})

			r.Route("/institutions", func(r chi.Router) {
				r.Get("/", s.handleOrgList)
				r.Post("/", s.handleOrgCreate)
				r.Get("/{id}", s.handleOrgGet)
				r.Put("/{id}", s.handleOrgUpdate)
				r.Delete("/{id}", s.handleOrgRemove)
			})
		})
	})

	middleware := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return middleware.Handler(r)
}
