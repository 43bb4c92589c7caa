package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/i2i/project-management/internal/api/handler"
	"github.com/i2i/project-management/internal/api/middleware"
	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// Services groups the core services the router exposes over HTTP.
type Services struct {
	Auth     ports.AuthService
	Tokens   ports.TokenService
	Users    ports.UserService
	Roles    ports.RoleService
	Projects ports.ProjectService
}

// NewRouter builds and returns the Echo instance with all routes
// registered. Authorization mirrors the authority requirements of each
// operation; the self-service profile route needs authentication only.
func NewRouter(svcs Services, db *mongodrv.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("project_management"))

	authHandler := handler.NewAuthHandler(svcs.Auth)
	userHandler := handler.NewUserHandler(svcs.Users)
	roleHandler := handler.NewRoleHandler(svcs.Roles)
	projectHandler := handler.NewProjectHandler(svcs.Projects)

	authenticated := middleware.Auth(svcs.Tokens)
	adminOnly := middleware.RequireAny(domain.AuthorityAdmin)
	managers := middleware.RequireAny(domain.AuthorityAdmin, domain.AuthorityProjectManager)
	anyAuthority := middleware.RequireAny(domain.AuthorityAdmin, domain.AuthorityProjectManager, domain.AuthorityEmployee)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Users ---
	users := e.Group("/users", authenticated)
	users.POST("", userHandler.Create, adminOnly)
	users.PUT("/me", userHandler.UpdateMe) // self policy: any authenticated subject
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.GET("/:id", userHandler.GetByID, managers)
	users.GET("", userHandler.GetAll, managers)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Roles ---
	roles := e.Group("/roles", authenticated, adminOnly)
	roles.POST("", roleHandler.Create)
	roles.PUT("/:id", roleHandler.Update)
	roles.GET("/:id", roleHandler.GetByID)
	roles.GET("", roleHandler.GetAll)
	roles.DELETE("/:id", roleHandler.Delete)
	roles.POST("/assign/:userId", roleHandler.AssignRoles)

	// --- Projects ---
	projects := e.Group("/projects", authenticated)
	projects.POST("", projectHandler.Create, managers)
	projects.PUT("/:id", projectHandler.Update, managers)
	projects.GET("/:id", projectHandler.GetByID, anyAuthority)
	projects.GET("", projectHandler.GetAll, anyAuthority)
	projects.DELETE("/:id", projectHandler.Delete, adminOnly)
	projects.POST("/:projectId/assign/:userId", projectHandler.AddMember, managers)
	projects.POST("/:projectId/remove/:userId", projectHandler.RemoveMember, managers)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
