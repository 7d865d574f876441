package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vijayakumarsahana16-san/phishproof/internal/adapter/http/handler"
	"github.com/vijayakumarsahana16-san/phishproof/internal/adapter/http/middleware"
	"github.com/vijayakumarsahana16-san/phishproof/internal/infrastructure/metrics"
	"github.com/vijayakumarsahana16-san/phishproof/internal/usecase"
)

// Options holds the collaborators the router wires into handlers
type Options struct {
	Detector    usecase.DetectorUsecase
	Redis       *redis.Client
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	AllowOrigin string
}

// Setup creates and configures the Gin router
func Setup(opts Options) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(opts.Logger))
	router.Use(middleware.Recovery(opts.Logger))
	router.Use(middleware.CORS(opts.AllowOrigin))
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}

	// Health endpoints
	healthHandler := handler.NewHealthHandler(opts.Detector, opts.Redis)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// Classification
	analyzeHandler := handler.NewAnalyzeHandler(opts.Detector)
	router.POST("/analyze", analyzeHandler.Analyze)
	router.GET("/model", analyzeHandler.Model)

	return router
}
