package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/san-kum/bodelab/internal/api/handlers"
	"github.com/san-kum/bodelab/internal/config"
)

// NewRouter builds the chi router with logging, recovery and CORS, and
// mounts the huma API on it.
func NewRouter(cfg *config.Config, srv *config.ServerConfig, version string) (*chi.Mux, huma.API) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: srv.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	hcfg := huma.DefaultConfig("bodelab API", version)
	hcfg.DocsPath = "/api/docs"
	api := humachi.New(router, hcfg)

	RegisterRoutes(api, cfg, version)
	return router, api
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, cfg *config.Config, version string) {
	h := handlers.NewBodeHandler(cfg, version)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, h.Health)

	huma.Register(api, huma.Operation{
		OperationID: "listShapes",
		Method:      http.MethodGet,
		Path:        "/api/shapes",
		Summary:     "List transfer-function shapes",
		Description: "Returns every shape with its slider declarations and presets",
		Tags:        []string{"Bode"},
	}, h.ListShapes)

	huma.Register(api, huma.Operation{
		OperationID: "evaluateBode",
		Method:      http.MethodGet,
		Path:        "/api/bode/{shape}",
		Summary:     "Evaluate a frequency response",
		Description: "Returns magnitude, unwrapped phase, asymptotes and poles over a log-spaced grid",
		Tags:        []string{"Bode"},
	}, h.Evaluate)

	huma.Register(api, huma.Operation{
		OperationID: "renderBode",
		Method:      http.MethodGet,
		Path:        "/api/bode/{shape}/figure",
		Summary:     "Render a Bode figure",
		Tags:        []string{"Bode"},
	}, h.Figure)
}
