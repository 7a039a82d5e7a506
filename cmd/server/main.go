package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "bookhive/docs"
	"bookhive/internal/client/openlibrary"
	"bookhive/internal/config"
	cronrunner "bookhive/internal/cron"
	"bookhive/internal/db"
	"bookhive/internal/handler"
	"bookhive/internal/identity"
	"bookhive/internal/logger"
	"bookhive/internal/recommend"
	gormrepository "bookhive/internal/repository/gorm"
	"bookhive/internal/service"
)

func main() {
	cfgPath := os.Getenv("BH_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("BH_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	libraryHTTP := &http.Client{Timeout: cfg.OpenLibrary.Timeout}
	libraryClient := openlibrary.NewClient(libraryHTTP, cfg.OpenLibrary.BaseURL)
	store := gormrepository.New(dbConn.Gorm)
	resolver := identity.NewResolver(store)

	stateService := &service.ScrapeStateService{Repo: store, Logger: logger}
	syncService := &service.CatalogSyncService{
		Store:   store,
		States:  stateService,
		Library: libraryClient,
		Logger:  logger,
		Config:  cfg.CatalogSync,
	}
	queryService := &service.CatalogQueryService{Repo: store}
	prefService := &service.PreferenceService{Store: store, Logger: logger, Config: cfg.Preferences}
	ratingService := &service.RatingService{Store: store, Prefs: prefService, Logger: logger}
	collectionService := &service.CollectionService{Store: store}
	generator := &recommend.Generator{Store: store, Logger: logger, Config: cfg.Recommend, Prefs: cfg.Preferences}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	catalogHandler := &handler.CatalogHandler{
		Sync:    syncService,
		Query:   queryService,
		Sources: cfg.CatalogSync.Sources,
		Logger:  logger,
	}
	catalogHandler.Register(engine)
	usersHandler := &handler.UsersHandler{Store: store, Users: resolver}
	usersHandler.Register(engine)
	ratingsHandler := &handler.RatingsHandler{Ratings: ratingService, Users: resolver, Logger: logger}
	ratingsHandler.Register(engine)
	actionsHandler := &handler.ActionsHandler{Prefs: prefService, Users: resolver, Logger: logger}
	actionsHandler.Register(engine)
	recsHandler := &handler.RecommendationsHandler{Generator: generator, Store: store, Users: resolver, Logger: logger}
	recsHandler.Register(engine)
	collectionsHandler := &handler.CollectionsHandler{Collections: collectionService, Users: resolver, Logger: logger}
	collectionsHandler.Register(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		for _, src := range cfg.CatalogSync.Sources {
			src := src
			_, err := cronRunner.Add(cfg.Cron.CatalogSync, func(ctx context.Context) {
				outcome, err := syncService.Run(ctx, src)
				if errors.Is(err, service.ErrClaimHeld) {
					logger.Debug("catalog sync tick skipped, claim held", zap.String("source", src.Name))
					return
				}
				if errors.Is(err, service.ErrAttemptsExhausted) {
					logger.Debug("catalog sync parked", zap.String("source", src.Name))
					return
				}
				if err != nil {
					logger.Warn("cron catalog sync failed",
						zap.String("source", src.Name),
						zap.Error(err))
					return
				}
				logger.Info("cron catalog sync ok",
					zap.String("source", outcome.Source),
					zap.Int("pages", outcome.Pages),
					zap.Int("books", outcome.Books),
					zap.Int("authors", outcome.Authors),
					zap.Int("genres", outcome.Genres),
					zap.Int("skipped", outcome.Skipped),
					zap.Bool("terminal", outcome.Terminal),
				)
			})
			if err != nil {
				logger.Warn("cron register catalog sync failed",
					zap.String("source", src.Name),
					zap.Error(err))
			}
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
