package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/platformsec/identity-service/internal/api/handler"
	"github.com/platformsec/identity-service/internal/api/middleware"
	"github.com/platformsec/identity-service/internal/core/domain"
	"github.com/platformsec/identity-service/internal/core/service"
	"github.com/platformsec/identity-service/internal/infrastructure/config"
	mongostore "github.com/platformsec/identity-service/internal/infrastructure/db/mongo"
	redisstore "github.com/platformsec/identity-service/internal/infrastructure/db/redis"
	"github.com/platformsec/identity-service/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.AuditDispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Stores ---
	userRepo := mongostore.NewUserRepository(db)
	roleRepo := mongostore.NewRoleRepository(db)
	auditRepo := mongostore.NewAuditRepository(db)
	limiter := redisstore.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)

	// --- Services ---
	auditService := service.NewAuditService(auditRepo, log)
	auditSink := queue.NewAuditDispatcher(0, auditService, log)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenLifetime)
	authService := service.NewAuthService(userRepo, tokenService, limiter, auditSink, log)
	userService := service.NewUserService(userRepo, auditSink, log)
	roleService := service.NewRoleService(roleRepo, auditSink, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	auditHandler := handler.NewAuditHandler(auditService)

	authn := middleware.Auth(tokenService)
	adminOnly := middleware.RBAC(domain.AdministrativeRoles...)

	// --- Auth routes ---
	e.POST("/api/auth/login", authHandler.Login)

	// --- User administration (admin roles required) ---
	user := e.Group("/api/user", authn, adminOnly)
	user.POST("/create", userHandler.Create)
	user.GET("/getall", userHandler.GetAll)
	user.GET("/getalluserdetails", userHandler.GetAllDetails)
	user.DELETE("/delete/:userId", userHandler.Delete)
	user.GET("/getuserdetails/:userId", userHandler.GetDetails)
	user.GET("/getuserdetailsbyusername/:userName", userHandler.GetDetailsByUsername)
	user.POST("/assignroles", userHandler.AssignRoles)
	user.PUT("/edituserroles", userHandler.EditRoles)
	user.PUT("/edituserprofile/:id", userHandler.EditProfile)

	// --- Role administration (admin roles required) ---
	role := e.Group("/api/role", authn, adminOnly)
	role.POST("/create", roleHandler.Create)
	role.GET("/getroles", roleHandler.GetAll)
	role.GET("/getrolebyid/:id", roleHandler.GetByID)
	role.DELETE("/deleterole/:id", roleHandler.Delete)
	role.PUT("/editrole/:id", roleHandler.Edit)

	// --- Audit trail (admin roles required) ---
	e.GET("/api/audit", auditHandler.ListRecent, authn, adminOnly)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, auditSink
}
