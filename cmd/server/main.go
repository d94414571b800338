package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"revenue_leak_audit/config"
	"revenue_leak_audit/handlers"
	"revenue_leak_audit/middleware"
	"revenue_leak_audit/services"
	"revenue_leak_audit/services/jobs"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Form relay shared by every visitor
	relay, err := services.NewRelay(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize form relay: %v", err)
	}
	log.Printf("[INFO] Form relay: %s", cfg.RelayProvider)

	// Per-visitor page state
	store := services.NewPageStore(cfg.SessionTTL, services.NewFlowFactory(cfg, relay))
	defer store.Close()
	limiter := middleware.NewApplicationRateLimiter()

	// Background cleanup of idle visitors and rate limit windows
	scheduler, err := jobs.StartScheduler(store, limiter)
	if err != nil {
		log.Fatalf("Failed to start cleanup scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Cache-busting hashes for static assets
	middleware.InitAssetVersions("static")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(echomiddleware.BodyLimit("64K"))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	// Infrastructure routes
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	if cfg.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	// Page routes (visitor session + CSRF)
	page := e.Group("")
	page.Use(middleware.CSPNonce())
	page.Use(middleware.CSRF(cfg))
	page.Use(middleware.VisitorSession(cfg, store))
	{
		page.GET("/", handlers.LandingHandler)

		page.POST("/apply/open", handlers.OpenApplicationHandler)
		page.POST("/apply/close", handlers.CloseApplicationHandler)
		page.POST("/apply/draft", handlers.SaveDraftHandler)
		page.GET("/apply/modal", handlers.ApplicationModalHandler)

		page.POST("/apply", handlers.SubmitApplicationHandler, limiter.Middleware())
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] Shutting down server")

	// In-flight submissions get time to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARNING] Server shutdown: %v", err)
	}
}
