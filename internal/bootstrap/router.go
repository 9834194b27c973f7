package bootstrap

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/caregiver-app/picto-admin-backend/config"
	"github.com/caregiver-app/picto-admin-backend/internal/auth"
	"github.com/caregiver-app/picto-admin-backend/internal/categories"
	"github.com/caregiver-app/picto-admin-backend/internal/httpapi"
	"github.com/caregiver-app/picto-admin-backend/internal/middleware"
	"github.com/caregiver-app/picto-admin-backend/internal/pictograms"
	"github.com/caregiver-app/picto-admin-backend/internal/requests"
	"github.com/caregiver-app/picto-admin-backend/internal/stats"
	"github.com/caregiver-app/picto-admin-backend/internal/users"
)

const serviceName = "picto-admin-backend"

// NewRouter builds the gin engine with all middlewares and routes wired.
// The redis client may be nil, in which case the stats cache is skipped.
func NewRouter(cfg *config.Config, fb *Firebase, rdb *redis.Client) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.NewMetrics().Handler())
	r.Use(middleware.NewRateLimiter(10, 30).Handler())
	r.Use(corsMiddleware(cfg.CORS))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admins := auth.NewAdminRepo(fb.Firestore)
	emails := auth.NewEmailDirectory(fb.Auth)

	var cache stats.Cache
	if rdb != nil {
		cache = stats.NewRedisCache(rdb, stats.DefaultTTL)
	}

	api := r.Group("/api")

	httpapi.NewHealthHandler(serviceName, cfg.App.Version).RegisterRoutes(api)
	auth.NewHandler(fb.Auth, admins).Register(api.Group("/auth"))

	protected := api.Group("")
	protected.Use(auth.Gate(fb.Auth, admins))

	users.NewHandler(users.NewRepo(fb.Firestore), emails).Register(protected.Group("/users"))
	categories.NewHandler(categories.NewRepo(fb.Firestore)).Register(protected.Group("/categories"))
	pictograms.NewHandler(
		pictograms.NewRepo(fb.Firestore),
		pictograms.NewBucketImageStore(fb.Bucket, fb.BucketName),
	).Register(protected.Group("/pictograms"))
	requests.NewHandler(requests.NewRepo(fb.Firestore)).Register(protected.Group("/requests"))

	statsHandler := stats.NewHandler(stats.NewService(fb.Firestore, emails), cache)
	statsHandler.Register(protected.Group("/stats"))

	return r
}

func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if origin == "http://localhost:3000" {
				return true
			}
			if cfg.FrontendURL != "" && origin == cfg.FrontendURL {
				return true
			}
			// Vercel preview deployments of the admin frontend.
			return strings.HasSuffix(origin, ".vercel.app")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
