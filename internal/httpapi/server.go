package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/service"
	"github.com/BrandonDHaskell/makerspace-crm/internal/metrics"
)

type Dependencies struct {
	Logger zerolog.Logger
	Addr   string

	// RateLimitRPM caps write requests per client IP per minute. 0 disables.
	RateLimitRPM int

	AccessLog *service.AccessLogService
	Hours     *service.HoursService
	People    *service.PeopleService
	KeyCards  *service.KeyCardService
	Catalog   *service.CatalogService
}

type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger

	accessLog *service.AccessLogService
	hours     *service.HoursService
	people    *service.PeopleService
	keyCards  *service.KeyCardService
	catalog   *service.CatalogService
}

func NewServer(d Dependencies) *Server {
	s := &Server{
		logger:    d.Logger.With().Str(mlog.FieldComponent, "http").Logger(),
		accessLog: d.AccessLog,
		hours:     d.Hours,
		people:    d.People,
		keyCards:  d.KeyCards,
		catalog:   d.Catalog,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(recoverer(s.logger))
	r.Use(metrics.HTTPMiddleware)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if d.RateLimitRPM > 0 {
			r.Use(limitWrites(d.RateLimitRPM, time.Minute))
		}
		s.routes(r)
	})

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes(r chi.Router) {
	r.Post("/door_access_log", s.handleIngest)
	r.Get("/door_access_log/{logID}", s.handleGetAccessLog)
	r.Delete("/door_access_log/{logID}", s.handleDeleteAccessLog)

	r.Route("/person", func(r chi.Router) {
		r.Post("/", s.handleCreatePerson)
		r.Get("/all", s.handleListPeople)
		r.Route("/{personID}", func(r chi.Router) {
			r.Get("/", s.handleGetPerson)
			r.Put("/", s.handleUpdatePerson)
			r.Patch("/", s.handlePersonLifecycle)
			r.Delete("/", s.handleDeletePerson)
			r.Get("/door_access_log", s.handlePersonAccessLog)
			r.Get("/volunteer_hours", s.handleVolunteerHours)
			s.personLinkRoutes(r)
		})
	})

	r.Post("/key_card", s.handleCreateKeyCard)
	r.Get("/key_card/{cardID}", s.handleGetKeyCard)
	r.Delete("/key_card/{cardID}", s.handleDeleteKeyCard)

	r.Route("/key_code", func(r chi.Router) {
		r.Post("/", createHandler(s, s.keyCards.CreateCode))
		r.Get("/{codeID}", getHandler(s, "codeID", s.keyCards.GetCode))
		r.Put("/{codeID}", updateHandler(s, "codeID", s.keyCards.UpdateCode))
		r.Delete("/{codeID}", s.handleDeleteKeyCode)
	})

	s.catalogRoutes(r)
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
