// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"openstudy/shop-api/db"
	"openstudy/shop-api/middleware"
	"openstudy/shop-api/pkg/security"
	"openstudy/shop-api/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Codec  *security.TokenCodec
	Ledger *service.Ledger
	Mailer service.Mailer
}

func NewRouter() (*API, error) {
	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	makeLogger()

	a := &API{
		DB:     database,
		Argon:  security.NewArgonHash(),
		Codec:  security.NewTokenCodec(viper.GetString("jwt.secret"), viper.GetDuration("jwt.ttl")),
		Ledger: service.NewLedger(database, viper.GetDuration("verification.verify_ttl"), viper.GetDuration("verification.reset_ttl")),
		Mailer: service.NewSMTPMailer(),
	}
	a.Router = a.buildRouter()

	service.TokenCleanup(viper.GetDuration("verification.cleanup_every"), database)

	return a, nil
}

func (a *API) buildRouter() *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.AuthHeader, "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetInt("userID"); v != 0 {
					fields = append(fields, zap.Int("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	authn := middleware.NewAuthMiddleware(a.DB, a.Codec)
	admin := middleware.NewAdminMiddleware()
	turnstile := middleware.NewTurnstileMiddleware()

	main := router.Group("/api", middleware.BodySizeLimiter(1<<20))
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a session token
		main.HEAD("/validate", authn, a.Validate)
	}

	auth := main.Group("/auth")
	if viper.GetBool("rate_limit.enabled") {
		auth.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: viper.GetInt("rate_limit.rps"),
			Burst:             viper.GetInt("rate_limit.burst"),
			CleanupInterval:   time.Minute,
			TTL:               10 * time.Minute,
		}))
	}
	{
		// POST /api/auth/register	-> Registers a new user and mails a verification link
		auth.POST("/register", turnstile, a.AuthRegister)

		// GET /api/auth/verify		-> Activates the account behind a verification token
		auth.GET("/verify", a.AuthVerify)

		// POST /api/auth/login		-> Logs in a verified user and returns a session token
		auth.POST("/login", turnstile, a.AuthLogin)

		// POST /api/auth/forgot-password	-> Mails a password reset link
		auth.POST("/forgot-password", turnstile, a.AuthForgotPassword)

		// POST /api/auth/reset-password	-> Replaces the password behind a reset token
		auth.POST("/reset-password", a.AuthResetPassword)

		// POST /api/auth/resend-verification	-> Re-mails the verification link, with a cooldown
		auth.POST("/resend-verification", a.AuthResendVerification)
	}

	users := main.Group("/users")
	{
		// GET /api/users		-> Lists users, admin only, paginated
		users.GET("", authn, admin, a.UserList)

		// GET /api/users/me		-> Returns the profile of the logged in user
		users.GET("/me", authn, a.UserMe)

		// PATCH /api/users/me		-> Updates profile fields of the logged in user
		users.PATCH("/me", authn, a.UserUpdate)
	}

	categories := main.Group("/categories")
	{
		// GET /api/categories		-> Lists all categories
		categories.GET("", cacheFor(60), a.CategoryList)

		// GET /api/categories/:id	-> Returns a single category
		categories.GET("/:id", a.CategoryFetch)

		// POST /api/categories 	-> Creates a category, admin only
		categories.POST("", authn, admin, a.CategoryCreate)

		// PATCH /api/categories/:id	-> Updates a category, admin only
		categories.PATCH("/:id", authn, admin, a.CategoryUpdate)

		// DELETE /api/categories/:id	-> Deletes a category, admin only
		categories.DELETE("/:id", authn, admin, a.CategoryDelete)
	}

	return router
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
