package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/database"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/handler"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/metrics"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/middleware"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/repository"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/service"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/view"
)

// Config holds the dependencies needed to build the router
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	// Gatherer backs /metrics; nil means the default prometheus registry
	Gatherer prometheus.Gatherer
}

// Setup wires repositories, services and handlers and registers every route
func Setup(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics, cfg.BasePath))
	}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	metricsHandler := gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	healthHandler := health(cfg.DB)

	// health checks and scrapes work at the root and under the base path
	r.GET("/health", healthHandler)
	r.GET("/metrics", metricsHandler)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		r.GET(cfg.BasePath+"/health", healthHandler)
		r.GET(cfg.BasePath+"/metrics", metricsHandler)
	}

	// Swagger UI and doc.json
	r.GET(strings.TrimSuffix(cfg.BasePath, "/")+"/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	templateRepo := repository.NewStepTemplateRepository(cfg.DB)
	stepRepo := repository.NewProductionStepRepository(cfg.DB)
	rocketRepo := repository.NewRocketRepository(cfg.DB)
	approvalRepo := repository.NewApprovalRepository(cfg.DB)

	// Services
	templateService := service.NewStepTemplateService(templateRepo, stepRepo, cfg.Metrics, logger)
	stepService := service.NewProductionStepService(stepRepo, templateRepo, rocketRepo, cfg.Metrics, logger)
	rocketService := service.NewRocketService(rocketRepo, logger)
	approvalService := service.NewApprovalService(approvalRepo, stepRepo, cfg.Metrics, logger)

	// Handlers
	templateHandler := handler.NewTemplateHandler(templateService, logger)
	formHandler := handler.NewFormHandler(templateService, stepService, view.MustNew(), cfg.BasePath, logger)
	rocketHandler := handler.NewRocketHandler(rocketService, logger)
	stepHandler := handler.NewStepHandler(stepService, logger)
	approvalHandler := handler.NewApprovalHandler(approvalService, logger)

	manage := middleware.RequireRole(domain.RoleAdmin, domain.RoleEngineer)
	record := middleware.RequireRole(domain.RoleAdmin, domain.RoleEngineer, domain.RoleStaff)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	api := r.Group(cfg.BasePath)
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		templates := api.Group("/templates")
		{
			templates.GET("", manage, templateHandler.ListTemplates)
			templates.GET("/active", templateHandler.ListActiveTemplates)
			templates.POST("", manage, templateHandler.CreateTemplate)
			templates.POST("/validate", manage, templateHandler.ValidateFields)
			templates.GET("/:templateId", templateHandler.GetTemplate)
			templates.PUT("/:templateId", manage, templateHandler.UpdateTemplate)
			templates.PUT("/:templateId/fields", manage, templateHandler.ReplaceFields)
			templates.PATCH("/:templateId/active", manage, templateHandler.SetActive)
			templates.DELETE("/:templateId", manage, templateHandler.DeleteTemplate)
			templates.GET("/:templateId/form", record, formHandler.RenderForm)
		}

		rockets := api.Group("/rockets")
		{
			rockets.GET("", rocketHandler.ListRockets)
			rockets.POST("", manage, rocketHandler.CreateRocket)
			rockets.GET("/:rocketId", rocketHandler.GetRocket)
			rockets.PATCH("/:rocketId/status", manage, rocketHandler.UpdateStatus)
			rockets.GET("/:rocketId/steps", stepHandler.ListSteps)
			rockets.POST("/:rocketId/steps", record, stepHandler.RecordStep)
		}

		steps := api.Group("/steps")
		{
			steps.GET("/:stepId", stepHandler.GetStep)
			steps.PUT("/:stepId", record, stepHandler.UpdateStep)
			steps.DELETE("/:stepId", adminOnly, stepHandler.DeleteStep)
			steps.GET("/:stepId/approvals", approvalHandler.ListApprovals)
			steps.POST("/:stepId/approvals", manage, approvalHandler.Review)
		}
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
