package api

import (
	"github.com/Ayash-Bera/goai/backend/internal/api/handlers"
	"github.com/Ayash-Bera/goai/backend/internal/generator"
	"github.com/Ayash-Bera/goai/backend/internal/health"
	"github.com/Ayash-Bera/goai/backend/internal/learning"
	"github.com/Ayash-Bera/goai/backend/internal/metrics"
	"github.com/Ayash-Bera/goai/backend/internal/middleware"
	"github.com/Ayash-Bera/goai/backend/internal/projects"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Dependencies are the services the HTTP surface is built from. CacheStats
// and RateLimiter may be nil.
type Dependencies struct {
	Generator   *generator.Service
	Learning    *learning.System
	Projects    *projects.Repository
	Health      *health.HealthChecker
	CacheStats  handlers.CacheStats
	RateLimiter *middleware.RateLimiter
	Logger      *logrus.Logger
}

// NewRouter builds a gin engine with middleware and every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	m := metrics.NewMetrics()

	router := gin.New()
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics(m))

	RegisterRoutes(router, deps, m)
	return router
}

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, deps Dependencies, m *metrics.Metrics) {
	generate := handlers.NewGenerateHandler(deps.Generator, deps.Logger)
	audit := handlers.NewQualityHandler(m, deps.Logger)
	learn := handlers.NewLearningHandler(deps.Learning, m, deps.Logger)
	project := handlers.NewProjectHandler(deps.Projects, deps.Logger)
	system := handlers.NewSystemHandler(deps.Health, deps.CacheStats, deps.Logger)

	router.GET("/health", system.HandleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	if deps.RateLimiter != nil {
		apiGroup.Use(deps.RateLimiter.RateLimit())
	}

	apiGroup.POST("/generate", generate.HandleGenerate)
	apiGroup.GET("/cli-status", generate.HandleCLIStatus)
	apiGroup.POST("/classify", generate.HandleClassify)
	apiGroup.POST("/quality/audit", audit.HandleAudit)
	apiGroup.GET("/deploy/config", system.HandleDeployConfig)
	apiGroup.GET("/cache/stats", system.HandleCacheStats)

	learningGroup := apiGroup.Group("/learning")
	{
		learningGroup.POST("/examples", learn.HandleRecordExample)
		learningGroup.GET("/examples", learn.HandleListExamples)
		learningGroup.GET("/patterns", learn.HandlePatterns)
		learningGroup.POST("/similar", learn.HandleSimilar)
		learningGroup.POST("/improve", learn.HandleImprove)
	}

	projectGroup := apiGroup.Group("/projects")
	{
		projectGroup.GET("", project.HandleList)
		projectGroup.POST("", project.HandleCreate)
		projectGroup.GET("/export", project.HandleExport)
		projectGroup.POST("/import", project.HandleImport)
		projectGroup.GET("/:id", project.HandleGet)
		projectGroup.PUT("/:id", project.HandleUpdate)
		projectGroup.DELETE("/:id", project.HandleDelete)
	}
}
