package routes

import (
	"farmpanel/internal/api/handlers"
	"farmpanel/internal/api/middleware"
	"farmpanel/internal/config"
	"farmpanel/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(cfg)
	sessionService := services.NewSessionService(cfg)
	equipmentService := services.NewEquipmentService()
	reportService := services.NewReportService()
	webcamService := services.NewWebcamService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessionService, cfg)
	dashboardHandler := handlers.NewDashboardHandler(authService, equipmentService)
	equipmentHandler := handlers.NewEquipmentHandler(authService, equipmentService)
	webcamHandler := handlers.NewWebcamHandler(authService, webcamService)
	reportHandler := handlers.NewReportHandler(authService, equipmentService, reportService)
	statusHandler := handlers.NewStatusHandler(authService)
	ssoHandler := handlers.NewSSOHandler()

	// Public routes
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/api/validate_session", ssoHandler.ValidateSession)

	// Session-gated page routes
	protected := r.Group("")
	protected.Use(middleware.SessionRequired(sessionService))
	{
		protected.GET("/", authHandler.Index)
		protected.GET("/logout", authHandler.Logout)
		protected.GET("/dashboard", dashboardHandler.Dashboard)
		protected.GET("/equipment", equipmentHandler.List)
		protected.GET("/equipment/search", equipmentHandler.SearchPage)
		protected.POST("/equipment/search", equipmentHandler.Search)
		protected.GET("/webcam", webcamHandler.Viewer)
		protected.POST("/webcam/request_image", webcamHandler.RequestImage)
		protected.GET("/reports", reportHandler.Page)
		protected.POST("/reports/generate", reportHandler.Generate)
		protected.GET("/status", statusHandler.Status)
		protected.GET("/settings", authHandler.Settings)
	}
}
