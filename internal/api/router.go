package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "github.com/cotizador/quoting-system/docs"
	"github.com/cotizador/quoting-system/internal/api/cookies"
	"github.com/cotizador/quoting-system/internal/api/handler"
	"github.com/cotizador/quoting-system/internal/api/middleware"
	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
	"github.com/cotizador/quoting-system/internal/core/pricing"
	"github.com/cotizador/quoting-system/internal/core/service"
	mongostore "github.com/cotizador/quoting-system/internal/infrastructure/db/mongo"
	"github.com/cotizador/quoting-system/internal/infrastructure/db/postgres"
	redisstore "github.com/cotizador/quoting-system/internal/infrastructure/db/redis"
	"github.com/cotizador/quoting-system/internal/infrastructure/http/handlers"
)

// Dependencies are the process-wide clients built once in main. Mongo, Redis
// and Board are optional: without them the audit trail, webhook dedup and
// board sync are disabled.
type Dependencies struct {
	DB       *gorm.DB
	Mongo    *mongodriver.Database
	Redis    *redis.Client
	Provider ports.IdentityProvider
	Board    ports.BoardSyncQueue

	DefaultRole   string
	WebhookSecret string
	SecureCookies bool
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	log := deps.Logger

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddleware("quoting"))

	// --- Dependencies ---
	users := postgres.NewUserRepository(deps.DB)
	quotes := postgres.NewQuoteRepository(deps.DB)
	rates := postgres.NewRateRepository(deps.DB)

	var events ports.QuoteEventRepository
	if deps.Mongo != nil {
		events = mongostore.NewEventRepository(deps.Mongo)
	}
	var dedup service.DedupChecker
	if deps.Redis != nil {
		dedup = redisstore.NewDedupChecker(deps.Redis)
	}

	rateService := service.NewRateService(rates, pricing.DefaultMultipliers, log)
	quoteService := service.NewQuoteService(quotes, users, rateService, events, deps.Board, log)
	webhookService := service.NewWebhookService(quotes, events, dedup, log)
	authService := service.NewAuthService(deps.Provider, users, deps.DefaultRole, log)
	sessionService := service.NewSessionService(users, deps.DefaultRole, log)

	ck := cookies.Config{Secure: deps.SecureCookies}
	session := middleware.Session(deps.Provider, sessionService, ck, log)
	requireSession := middleware.RequireSession()
	adminOnly := middleware.RBAC(users, log, domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(authService, ck, log)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	rateHandler := handler.NewRateHandler(rateService)
	webhookHandler := handler.NewWebhookHandler(webhookService, deps.WebhookSecret, log)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler().
		Add("postgres", handlers.PostgresCheck(deps.DB), true)
	if deps.Mongo != nil {
		healthDepsHandler.Add("mongo", handlers.MongoCheck(deps.Mongo), false)
	}
	if deps.Redis != nil {
		healthDepsHandler.Add("redis", handlers.RedisCheck(deps.Redis), false)
	}

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	// Login, sign-up and callback write a fresh session, so they skip the
	// reconciling middleware.
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/signup", authHandler.SignUp)
	e.GET("/auth/callback", authHandler.Callback)
	e.POST("/auth/logout", authHandler.Logout, session)
	e.GET("/auth/session", authHandler.Session, session)

	// --- Board webhook (shared secret, no session) ---
	e.POST("/api/webhooks/monday", webhookHandler.Receive)

	// --- Consultant routes ---
	apiGroup := e.Group("/api", session, requireSession)
	apiGroup.POST("/quotes", quoteHandler.Create)
	apiGroup.GET("/quotes", quoteHandler.List)
	apiGroup.GET("/quotes/:id", quoteHandler.Get)
	apiGroup.GET("/quotes/:id/export", quoteHandler.Export)
	apiGroup.GET("/rates/options", rateHandler.Options)

	// --- Admin routes (role re-checked against the user store) ---
	admin := e.Group("/admin", session, requireSession, adminOnly)
	admin.GET("/rates", rateHandler.List)
	admin.PUT("/rates", rateHandler.Upsert)
	admin.DELETE("/rates/:id", rateHandler.Delete)
	admin.PATCH("/quotes/:id/status", quoteHandler.Review)
	admin.DELETE("/quotes/:id", quoteHandler.Delete)
	admin.GET("/quotes/:id/events", quoteHandler.History)

	return e
}

// requestLogger logs one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
