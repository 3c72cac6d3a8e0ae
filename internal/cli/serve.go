package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ohc225/gestion-terrain-immobilier/internal/config"
	"github.com/ohc225/gestion-terrain-immobilier/internal/database"
	"github.com/ohc225/gestion-terrain-immobilier/internal/handlers"
	"github.com/ohc225/gestion-terrain-immobilier/internal/logger"
	"github.com/ohc225/gestion-terrain-immobilier/internal/middleware"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
	"github.com/ohc225/gestion-terrain-immobilier/internal/services"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
		return err
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	router := buildRouter(cfg, db, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("Server failed to start", err, nil)
		return err
	case <-quit:
	}

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
		return err
	}

	log.Info("Server exited", nil)
	return nil
}

// buildRouter wires middleware, handlers and routes onto a Gin engine.
func buildRouter(cfg *config.Config, db *database.Database, log *logger.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Middleware in order: RequestID -> Logger -> Recovery -> CORS -> Metrics
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))
	router.Use(middleware.Metrics())

	// Health and operational routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Repository and service layers
	lotissementRepo := repository.NewLotissementRepository(db)
	ilotLotRepo := repository.NewIlotLotRepository(db)
	attributaireRepo := repository.NewAttributaireRepository(db)

	lotissementService := services.NewLotissementService(lotissementRepo, log)
	ilotLotService := services.NewIlotLotService(ilotLotRepo, lotissementRepo, log)
	attributaireService := services.NewAttributaireService(attributaireRepo, ilotLotRepo, db, log)

	lotissementHandler := handlers.NewLotissementHandler(lotissementService)
	ilotLotHandler := handlers.NewIlotLotHandler(ilotLotService)
	attributaireHandler := handlers.NewAttributaireHandler(attributaireService)

	api := router.Group("/api")
	{
		lotissements := api.Group("/lotissements")
		{
			lotissements.GET("", lotissementHandler.List)
			lotissements.GET("/search", lotissementHandler.Search)
			lotissements.GET("/:id", lotissementHandler.GetByID)
			lotissements.POST("", lotissementHandler.Create)
			lotissements.PUT("/:id", lotissementHandler.Update)
			lotissements.DELETE("/:id", lotissementHandler.Delete)
		}

		ilotsLots := api.Group("/ilots-lots")
		{
			ilotsLots.GET("", ilotLotHandler.List)
			ilotsLots.GET("/search", ilotLotHandler.Search)
			ilotsLots.GET("/lotissement/:lotissementId", ilotLotHandler.ListByLotissement)
			ilotsLots.GET("/:id", ilotLotHandler.GetByID)
			ilotsLots.POST("", ilotLotHandler.Create)
			ilotsLots.PUT("/:id", ilotLotHandler.Update)
			ilotsLots.DELETE("/:id", ilotLotHandler.Delete)
		}

		attributaires := api.Group("/attributaires")
		{
			attributaires.GET("", attributaireHandler.List)
			attributaires.GET("/search", attributaireHandler.Search)
			attributaires.GET("/ilot-lot/:ilotsLotsId", attributaireHandler.ListByIlotLot)
			attributaires.GET("/:id", attributaireHandler.GetByID)
			attributaires.POST("", attributaireHandler.Create)
			attributaires.PUT("/:id", attributaireHandler.Update)
			attributaires.DELETE("/:id", attributaireHandler.Delete)
		}
	}

	return router
}
