// Package router assembles the gin engine serving the repository browser.
package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"repobrowser/internal/application/service"
	"repobrowser/internal/config"
	"repobrowser/internal/middleware"
	"repobrowser/internal/presentation/handlers"
	"repobrowser/internal/presentation/views"
)

// Deps are the collaborators the routes are served by
type Deps struct {
	Config   *config.Config
	Sessions *service.SessionStore
	SSE      *handlers.SSEManager
	Logger   zerolog.Logger
}

// New builds the engine with every page and API route registered
func New(deps Deps) (*gin.Engine, error) {
	sessionMiddleware, err := middleware.NewSessionMiddleware(deps.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session middleware: %w", err)
	}

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// HTTP handlers
	healthHandler := handlers.NewHealthHandler(deps.Sessions)
	pageHandler := handlers.NewPageHandler(deps.Sessions, deps.Logger)
	repositoryHandler := handlers.NewRepositoryHandler(deps.Sessions)
	eventsHandler := handlers.NewEventsHandler(deps.Sessions, deps.SSE)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(cors.New(corsConfig(deps.Config.Server.CORSAllowedOrigins)))

	// Health check endpoint (no session required)
	router.GET("/api/v1/health", healthHandler.Health)

	// Server-rendered page
	pages := router.Group("/")
	pages.Use(sessionMiddleware.RequireSession())
	{
		pages.GET("/", pageHandler.Index)
		pages.POST("/search", pageHandler.SubmitSearch)
		pages.POST("/theme", pageHandler.ToggleTheme)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(sessionMiddleware.RequireSession())
	{
		v1.GET("/state", repositoryHandler.GetState)
		v1.PUT("/state/topic", repositoryHandler.SetTopic)
		v1.POST("/search", repositoryHandler.Search)
		v1.POST("/repositories/default", repositoryHandler.LoadDefault)
		v1.POST("/repositories/topic", repositoryHandler.LoadByTopic)
		v1.POST("/theme/toggle", repositoryHandler.ToggleTheme)
		v1.GET("/events", eventsHandler.Stream)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
