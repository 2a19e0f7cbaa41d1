package router

import (
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/config"
	"github.com/vaibh-c/Price-Pilot/internal/handler"
	"github.com/vaibh-c/Price-Pilot/internal/middleware"
	"github.com/vaibh-c/Price-Pilot/internal/pricing"
	"github.com/vaibh-c/Price-Pilot/internal/repository"
	"github.com/vaibh-c/Price-Pilot/internal/service"
	"github.com/vaibh-c/Price-Pilot/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, engine *pricing.Engine, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, rdb)
	optimizeSvc := service.NewOptimizeService(productRepo, suggestionRepo, engine, rdb)
	suggestionSvc := service.NewSuggestionService(suggestionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	optimizeH := handler.NewOptimizeHandler(optimizeSvc, dispatcher, cfg.NotifyEmail)
	suggestionsH := handler.NewSuggestionsHandler(suggestionSvc)
	priceH := handler.NewPriceCheckHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Public price lookup — read-only, Redis-cached
	r.GET("/v1/price/:sku", priceH.GetPriceBySKU)

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.POST("/upload", productsH.Upload)
		}

		v1.POST("/optimize", optimizeH.Optimize)
		v1.POST("/optimize/async", optimizeH.OptimizeAsync)

		suggestions := v1.Group("/suggestions")
		{
			suggestions.GET("", suggestionsH.List)
			suggestions.GET("/report", suggestionsH.Report)
			suggestions.GET("/:id", suggestionsH.Get)
			suggestions.POST("/apply", optimizeH.Apply)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
