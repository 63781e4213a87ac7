package rest

import (
	"net/http"

	"notes-backend/application/commands/bus"
	querybus "notes-backend/application/queries/bus"
	"notes-backend/interfaces/http/rest/handlers"
	"notes-backend/interfaces/http/rest/middleware"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options carries the request-handling settings of the router
type Options struct {
	ScopeByOwner bool
	MaxBodyBytes int64
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	resolver   auth.IdentityResolver
	metrics    *observability.Metrics
	opts       Options
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	resolver auth.IdentityResolver,
	metrics *observability.Metrics,
	opts Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		resolver:   resolver,
		metrics:    metrics,
		opts:       opts,
		logger:     logger,
	}
}

// Setup configures all routes and middleware. The route table is closed:
// anything else, including a known path with the wrong method, is a 404.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))
	router.Use(middleware.ResponseHeaders)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Use(middleware.Identity(rt.resolver, rt.logger))

	noteHandler := handlers.NewNoteHandler(rt.commandBus, rt.queryBus, rt.opts.ScopeByOwner, rt.opts.MaxBodyBytes, rt.logger)

	router.NotFound(noteHandler.InvalidRoute)
	router.MethodNotAllowed(noteHandler.InvalidRoute)

	router.Route("/notes", func(r chi.Router) {
		r.Get("/", noteHandler.ListNotes)
		r.Post("/", noteHandler.CreateNote)
		r.Get("/{id}", noteHandler.GetNote)
		r.Put("/{id}", noteHandler.UpdateNote)
		r.Delete("/{id}", noteHandler.DeleteNote)
	})

	return router
}
