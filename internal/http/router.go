// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
//
// Two route surfaces are mounted:
//   - the legacy root-level endpoints the mobile client ships with (tokens in
//     JSON bodies, the /promt_bot route name kept verbatim), and
//   - the versioned /api/v1 group behind bearer-token auth.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/config"
	"github.com/mydoctor-app/go-booking-backend/internal/http/handlers"
	"github.com/mydoctor-app/go-booking-backend/internal/http/middleware"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"
	"github.com/mydoctor-app/go-booking-backend/internal/search"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip response compression
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, idx search.Index, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (user ids are emails here)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, userEmail, doctorEmail, key string, now time.Time) (bool, error) {
			rec, err := repo.GetBookingIdempotency(ctx, db, userEmail, doctorEmail, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (gated; docs are generated at build time by swag)
	if cfg.SwaggerEnabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/index
	authSvc := services.NewAuthService(db)
	authSvc.TokenTTL = cfg.TokenTTL
	authSvc.BcryptCost = cfg.BcryptCost

	schedSvc := services.NewScheduleService()
	quotaSvc := &services.QuotaService{DB: db, MaxSessions: cfg.MaxSessions}
	doctorSvc := services.NewDoctorService(db)
	favSvc := services.NewFavoriteService(db)
	recordSvc := services.NewRecordService(db)

	bookingSvc := services.NewBookingService(db, schedSvc)
	bookingSvc.IdempotencyTTL = cfg.IdempotencyTTL

	botSvc := &services.BotService{
		DB:             db,
		Index:          idx,
		Threshold:      cfg.Threshold,
		MaxPromptRunes: 2000,
		TopicMaxLen:    64,
		TopicLocale:    language.English,
	}

	h := handlers.New(authSvc, doctorSvc, quotaSvc, schedSvc, bookingSvc, botSvc, favSvc, recordSvc)

	// Legacy mobile-client surface (tokens in JSON bodies)
	r.POST("/user/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/get_doctors_by_clinic_name", h.DoctorsByClinic)
	r.PUT("/book_appointment", h.BookAppointment)
	r.POST("/promt_bot", h.PromptBot)

	// Versioned API behind bearer-token auth
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.RequireAuth(authSvc.Resolve))
	{
		api.GET("/chat/quota", h.ChatQuota)
		api.POST("/chat/sessions", h.StartChatSession)

		api.GET("/schedule/dates", h.AvailableDates)
		api.GET("/schedule/slots", h.TimeSlots)

		api.GET("/favorites", h.ListFavorites)
		api.PUT("/favorites", h.AddFavorite)
		api.DELETE("/favorites/:key", h.RemoveFavorite)

		api.GET("/records", h.ListRecords)
		api.POST("/records/sync", h.SyncRecords)
		api.POST("/records/reconcile", h.ReconcileRecords)
		api.DELETE("/records/:id", h.DeleteRecord)

		api.PUT("/profile/onboarding", h.MarkOnboarding)
	}
}

// limitBody caps the request body size for all endpoints via
// http.MaxBytesReader; oversized bodies make downstream reads error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
