package api

import (
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/nerdwave-nick/counterdex/internal/api/common"
	"github.com/rs/cors"
)

type Controller = common.Controller

// Config builds the huma config used for the api, also used by tests.
func Config() huma.Config {
	return huma.DefaultConfig("counterdex", "1.0.0")
}

// Register adds every controller's routes to the api.
func Register(humaAPI huma.API, controllers []Controller) {
	rctx := common.RouteCreationContext{API: humaAPI}
	for _, c := range controllers {
		c.RegisterRoutes(rctx)
	}
}

// MakeRouter mounts the api on mux and wraps it with CORS handling. No origins means any origin.
func MakeRouter(mux *http.ServeMux, controllers []Controller, corsOrigins []string) http.Handler {
	Register(humago.New(mux, Config()), controllers)

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !slices.Contains(corsOrigins, "*"),
	}).Handler(mux)
}
