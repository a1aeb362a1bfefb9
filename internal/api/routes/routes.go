package routes

import (
	"fmt"
	"os"
	"time"

	"scrim-portal-backend/internal/api/handlers"
	"scrim-portal-backend/internal/api/middleware"
	"scrim-portal-backend/internal/auth"
	"scrim-portal-backend/internal/config"
	"scrim-portal-backend/internal/logger"
	"scrim-portal-backend/internal/repository"
	"scrim-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *auth.AuthHandler
	Team     *handlers.TeamHandler
	Schedule *handlers.ScheduleHandler
	Result   *handlers.ResultHandler
	User     *handlers.UserHandler
}

// SetupRoutes wires repositories, services and handlers over db and returns the router
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	log := logger.New()

	// Initialize validator
	validate := service.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	resultRepo := repository.NewResultRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo, cfg, validate)
	teamService := service.NewTeamService(teamRepo, validate)
	scheduleService := service.NewScheduleService(scheduleRepo, validate)
	resultService := service.NewResultService(resultRepo, scheduleRepo, validate)

	// Initialize auth configuration and services
	authConfig, err := auth.LoadAuthConfig(os.Getenv("AUTH_CONFIG_PATH"))
	if err != nil {
		return nil, err
	}
	if authConfig.JWTSecret == "" {
		authConfig.JWTSecret = cfg.JWTSecret
	}

	session := auth.SessionConfig{
		CookieName: cfg.SessionCookieName,
		TTL:        time.Duration(cfg.SessionTTLHours) * time.Hour,
		Secure:     cfg.CookieSecure,
	}

	provider := auth.NewProvider(authConfig)
	if provider == nil {
		log.Warn("GitHub login is not configured; /api/login will answer 503")
	}

	authService, err := auth.NewAuthService(authConfig, session, provider, userService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	gate := auth.NewAuthMiddleware(auth.NewSessionIdentityProvider(authService, userService, session.CookieName))

	// Initialize handlers
	h := &Handlers{
		Health:   handlers.NewHealthHandler(db),
		Auth:     auth.NewAuthHandler(authService),
		Team:     handlers.NewTeamHandler(teamService),
		Schedule: handlers.NewScheduleHandler(scheduleService),
		Result:   handlers.NewResultHandler(resultService),
		User:     handlers.NewUserHandler(userService),
	}

	return NewRouter(cfg, h, gate), nil
}

// NewRouter mounts the middleware chain and every route
func NewRouter(cfg *config.Config, h *Handlers, gate *auth.AuthMiddleware) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gate.Authenticate())

	// Health check routes
	router.GET("/health", h.Health.Health)
	router.GET("/health/ready", h.Health.Ready)
	router.GET("/health/live", h.Health.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Login flow; start and callback share one per-IP budget
	loginLimit := middleware.RateLimit(cfg.AuthRatePerMinute)
	api.GET("/auth/user", h.Auth.CurrentUser)
	api.GET("/login", loginLimit, h.Auth.Login)
	api.GET("/callback", loginLimit, h.Auth.Callback)
	api.GET("/logout", h.Auth.Logout)

	teams := api.Group("/teams")
	{
		teams.GET("", h.Team.ListApproved)
		teams.GET("/blocked", h.Team.ListBlocked)
		teams.GET("/vip", h.Team.ListVIP)
		teams.GET("/my", gate.RequireAuth(), h.Team.GetMine)
		teams.POST("", gate.RequireAuth(), h.Team.Register)
	}

	schedules := api.Group("/schedules")
	{
		schedules.GET("", h.Schedule.List)
		schedules.GET("/:id", h.Schedule.Get)
	}

	results := api.Group("/results")
	{
		results.GET("", h.Result.List)
		results.GET("/:id", h.Result.Get)
	}

	admin := api.Group("/admin", gate.RequireAdmin())
	{
		admin.GET("/teams", h.Team.AdminList)
		admin.GET("/teams/:id", h.Team.AdminGet)
		admin.PATCH("/teams/:id", h.Team.AdminUpdate)
		admin.DELETE("/teams/:id", h.Team.AdminDelete)

		admin.POST("/schedules", h.Schedule.Create)
		admin.PATCH("/schedules/:id", h.Schedule.Update)

		admin.POST("/results", h.Result.Create)

		admin.GET("/users", h.User.List)
		admin.PATCH("/users/:id/role", h.User.UpdateRole)
	}

	return router
}
