package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"

	apigql "github.com/libris-app/libris/internal/api/graphql"
	apihandler "github.com/libris-app/libris/internal/api/handler"
	apimw "github.com/libris-app/libris/internal/api/middleware"
	"github.com/libris-app/libris/internal/auth"
	"github.com/libris-app/libris/internal/pubsub"
	"github.com/libris-app/libris/internal/store"
)

// RouterDeps holds the wired dependencies for the router.
type RouterDeps struct {
	Tokens      *auth.Tokens
	Broker      *pubsub.Broker
	Publisher   pubsub.Publisher
	LoginSecret string
}

func NewRouter(logger *slog.Logger, s *store.Store, deps *RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.Logger(logger))
	r.Use(apimw.CORS)
	r.Use(chimw.Recoverer)

	// Health checks
	health := apihandler.NewHealthHandler(s.Pool())
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// GraphQL. Token decoding is optional-auth: a bad or missing bearer token
	// resolves to an anonymous request, and individual mutations enforce
	// authentication themselves.
	resolver := apigql.NewResolver(logger, s, deps.Broker, deps.Publisher, deps.Tokens, deps.LoginSecret)
	schema := graphqlgo.MustParseSchema(apigql.Schema, resolver)
	gqlHandler := graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(deps.Tokens, s, logger))
		r.Handle("/graphql", gqlHandler)
	})
	r.Get("/graphql/playground", graphiqlHandler)

	return r
}
