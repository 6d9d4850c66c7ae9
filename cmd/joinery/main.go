package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitfantasy/joinery/internal/config"
	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/handler"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/service"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"github.com/bitfantasy/joinery/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Set at build time via -ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env is optional; real deployments use environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting joinery service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	st, err := store.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if !st.Available() {
		zapLogger.Warn("No database configured, running degraded: reads return empty collections, writes are rejected")
	} else {
		if err := migrate(st.DB(), zapLogger); err != nil {
			zapLogger.Fatal("Database migration failed", zap.Error(err))
		}
		zapLogger.Info("Database migration completed")
	}

	qc := initQueryCache(cfg.Redis, zapLogger)

	repos := repository.NewRepositories(st)
	services := service.NewServices(repos, qc, cfg)
	handlers := handler.NewHandlers(services)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

// initQueryCache prefers redis so invalidation reaches every instance;
// without redis a per-process memory cache still covers the single-node
// deployment.
func initQueryCache(cfg config.RedisConfig, zapLogger *zap.Logger) cache.Store {
	if !cfg.Configured() {
		zapLogger.Info("No redis configured, using in-memory query cache")
		return cache.NewMemoryStore()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	zapLogger.Info("Using redis query cache", zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)))
	return cache.NewRedisStore(rdb, 0)
}

// migrate creates tables in dependency order, then applies the raw SQL
// that AutoMigrate does not cover.
func migrate(db *gorm.DB, zapLogger *zap.Logger) error {
	if err := db.AutoMigrate(
		&entity.Customer{},
		&entity.Supplier{},
		&entity.Hardware{},
		&entity.Material{},
		&entity.TemplateCabinet{},
		&entity.QuoteProject{},
		&entity.JoineryItem{},
		&entity.Cabinet{},
		&entity.CabinetHardware{},
		&entity.CabinetMaterial{},
		&entity.SpecializedItem{},
		&entity.ProjectTask{},
		&entity.Installer{},
		&entity.ProjectInstaller{},
		&entity.Setting{},
		&entity.ProjectDocument{},
	); err != nil {
		return err
	}

	migrationSQL := []string{
		// Status and category guards
		`ALTER TABLE quote_projects ADD CONSTRAINT chk_quote_projects_status
			CHECK (status IN ('draft','sent','accepted','rejected','expired','in_progress','completed'))`,
		`ALTER TABLE template_cabinets ADD CONSTRAINT chk_template_cabinets_category
			CHECK (category IN ('base','wall','tall','commercial','accessories'))`,
		`ALTER TABLE specialized_items ADD CONSTRAINT chk_specialized_items_type
			CHECK (item_type IN ('hardware','material'))`,
		// One assignment per installer per project
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_project_installers_unique
			ON project_installers (quote_project_id, installer_id)`,
		// Schedule view scans projects by install date
		`CREATE INDEX IF NOT EXISTS idx_quote_projects_schedule
			ON quote_projects (install_commencement_date) WHERE NOT is_quote`,
	}

	for _, sql := range migrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			zapLogger.Warn("Migration SQL warning (may already exist)", zap.String("sql", sql), zap.Error(err))
		}
	}

	return nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", h.Supplier.List)
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("/:id", h.Supplier.Get)
			suppliers.PUT("/:id", h.Supplier.Update)
			suppliers.DELETE("/:id", h.Supplier.Delete)
		}

		hardware := v1.Group("/hardware")
		{
			hardware.GET("", h.Hardware.List)
			hardware.POST("", h.Hardware.Create)
			hardware.POST("/import", h.Hardware.Import)
			hardware.GET("/:id", h.Hardware.Get)
			hardware.PUT("/:id", h.Hardware.Update)
			hardware.DELETE("/:id", h.Hardware.Delete)
		}

		materials := v1.Group("/materials")
		{
			materials.GET("", h.Material.List)
			materials.POST("", h.Material.Create)
			materials.POST("/import", h.Material.Import)
			materials.GET("/:id", h.Material.Get)
			materials.PUT("/:id", h.Material.Update)
			materials.DELETE("/:id", h.Material.Delete)
		}

		templates := v1.Group("/template-cabinets")
		{
			templates.GET("", h.TemplateCabinet.List)
			templates.POST("", h.TemplateCabinet.Create)
			templates.GET("/:id", h.TemplateCabinet.Get)
			templates.PUT("/:id", h.TemplateCabinet.Update)
			templates.DELETE("/:id", h.TemplateCabinet.Delete)
		}

		// Quote/project list views
		v1.GET("/quotes", h.QuoteProject.ListQuotes)
		v1.GET("/quotes/:id/export", h.QuoteProject.Export)
		v1.GET("/projects", h.QuoteProject.ListProjects)
		v1.GET("/schedule", h.QuoteProject.Schedule)

		quoteProjects := v1.Group("/quote-projects")
		{
			quoteProjects.POST("", h.QuoteProject.Create)
			quoteProjects.GET("/:id", h.QuoteProject.Get)
			quoteProjects.PUT("/:id", h.QuoteProject.Update)
			quoteProjects.DELETE("/:id", h.QuoteProject.Delete)

			quoteProjects.GET("/:id/items", h.JoineryItem.ListByQuoteProject)
			quoteProjects.POST("/:id/items", h.JoineryItem.Create)

			quoteProjects.GET("/:id/tasks", h.Task.ListByProject)
			quoteProjects.POST("/:id/tasks", h.Task.Create)

			quoteProjects.GET("/:id/installers", h.QuoteProject.ListInstallers)
			quoteProjects.POST("/:id/installers", h.QuoteProject.AssignInstaller)
			quoteProjects.DELETE("/:id/installers/:installerId", h.QuoteProject.UnassignInstaller)

			quoteProjects.GET("/:id/documents", h.Document.List)
			quoteProjects.POST("/:id/documents", h.Document.Upload)
		}

		items := v1.Group("/items")
		{
			items.GET("/:id", h.JoineryItem.Get)
			items.PUT("/:id", h.JoineryItem.Update)
			items.DELETE("/:id", h.JoineryItem.Delete)

			items.GET("/:id/cabinets", h.Cabinet.ListByItem)
			items.POST("/:id/cabinets", h.Cabinet.Create)

			items.GET("/:id/specialized-items", h.JoineryItem.ListSpecialized)
			items.POST("/:id/specialized-items", h.JoineryItem.CreateSpecialized)
		}

		v1.PUT("/cabinets/:id", h.Cabinet.Update)
		v1.DELETE("/cabinets/:id", h.Cabinet.Delete)
		v1.DELETE("/specialized-items/:id", h.JoineryItem.DeleteSpecialized)

		tasks := v1.Group("/tasks")
		{
			tasks.GET("", h.Task.View)
			tasks.PUT("/:id", h.Task.Update)
			tasks.PUT("/:id/flag", h.Task.Flag)
			tasks.DELETE("/:id", h.Task.Delete)
		}

		installers := v1.Group("/installers")
		{
			installers.GET("", h.Installer.List)
			installers.POST("", h.Installer.Create)
			installers.PUT("/:id", h.Installer.Update)
			installers.DELETE("/:id", h.Installer.Delete)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", h.Setting.List)
			settings.PUT("", h.Setting.Put)
			settings.GET("/:key", h.Setting.Get)
		}

		v1.GET("/documents/:id", h.Document.Download)
		v1.DELETE("/documents/:id", h.Document.Delete)

		v1.GET("/sse/events", h.SSE.Stream)
	}
}
