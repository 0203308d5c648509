package api

import (
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	// swaggerFiles "github.com/swaggo/files"
	// ginSwagger "github.com/swaggo/gin-swagger"
)

// Services bundles the use cases served over HTTP.
type Services struct {
	Auth     service.AuthService
	Exercise service.ExerciseService
	Template service.TemplateService
	Session  service.SessionService
	Progress service.ProgressService
	Export   service.ExportService
}

// MetricsRoute exposes a prometheus handler. A nil Handler disables it.
type MetricsRoute struct {
	Path    string
	Handler http.Handler
}

// SetupRoutes installs middleware and every route on router. metricsManager
// may be nil, which disables request metrics.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	services Services,
	metricsManager *metrics.Manager,
	metricsRoute MetricsRoute,
) {
	router.Use(PanicRecovery(metricsManager), LogRequest())
	if metricsManager != nil {
		router.Use(RequestMetrics(metricsManager))
	}

	authHandler := NewAuthHandler(services.Auth)
	exerciseHandler := NewExerciseHandler(services.Exercise)
	templateHandler := NewTemplateHandler(services.Template)
	sessionHandler := NewSessionHandler(services.Session)
	progressHandler := NewProgressHandler(services.Progress, services.Export)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if metricsRoute.Handler != nil {
		router.GET(metricsRoute.Path, gin.WrapH(metricsRoute.Handler))
	}

	// router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Exercise Library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExerciseByID)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/media-url", exerciseHandler.RequestMediaUploadURL)
			exerciseGroup.PUT("/:id/media", exerciseHandler.ConfirmMediaUpload)
		}

		// --- Templates ---
		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.GetTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplateByID)
			templateGroup.PUT("/:id", templateHandler.UpdateTemplate)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		// --- Sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.LogSession)
			sessionGroup.GET("", sessionHandler.GetSessions)
			sessionGroup.GET("/:id", sessionHandler.GetSessionByID)
			sessionGroup.PUT("/:id", sessionHandler.ReplaceSession)
			sessionGroup.DELETE("/:id", sessionHandler.DeleteSession)
		}

		// --- Progress ---
		progressGroup := protected.Group("/progress")
		{
			progressGroup.GET("/e1rm", progressHandler.GetE1RMTrend)
			progressGroup.GET("/volume", progressHandler.GetVolumeTrend)
			progressGroup.GET("/last", progressHandler.GetLastPerformance)
			progressGroup.POST("/export", progressHandler.CreateExport)
			progressGroup.GET("/exports", progressHandler.GetExports)
			progressGroup.GET("/exports/:id", progressHandler.GetExportByID)
		}
	}
}
