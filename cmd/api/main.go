package main

import (
	"course-connect/config"
	"course-connect/controllers"
	"course-connect/middleware"
	"course-connect/monitor"
	"course-connect/routes"
	"course-connect/services"
	"course-connect/views"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, logWriter := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.LoadAppConfig()

	// The course list comes from MySQL only when one is configured
	if config.DatabaseConfigured() {
		if err := config.InitDB(); err != nil {
			log.Printf("Warning: %v; serving the built-in course list", err)
		}
	}

	catalog := services.NewCourseCatalogService(config.DB)
	drafts := services.NewDraftStore(cfg.DraftTTL)
	gate := services.NewLoginGate(cfg.EmailDomain, cfg.LoginDelay)
	issuer := middleware.NewSessionIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour, cfg.ReleaseMode)
	controllers.Init(catalog, drafts, gate, issuer)

	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logWriter))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.SetHTMLTemplate(views.Templates())

	if monitor.RegisterMonitorPage(router, cfg.MonitorToken, config.LogFilePath()) {
		log.Printf("Monitor available at /monitor")
	}

	routes.SetupRoutes(router, issuer)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	log.Printf("📚 Serving %s course list", catalog.Source())
	log.Printf("🔒 Sign-in restricted to @%s addresses (simulated, %s delay)", cfg.EmailDomain, cfg.LoginDelay)
	if cfg.ReleaseMode {
		log.Printf("🏭 Running in production mode")
	} else {
		log.Printf("🔧 Running in development mode")
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
