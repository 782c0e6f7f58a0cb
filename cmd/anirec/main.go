package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/yatagawa/anirec/internal/config"
	"github.com/yatagawa/anirec/internal/dataset"
	"github.com/yatagawa/anirec/internal/handler"
	"github.com/yatagawa/anirec/internal/job"
	"github.com/yatagawa/anirec/internal/middleware"
	"github.com/yatagawa/anirec/internal/repo"
	"github.com/yatagawa/anirec/internal/schedule"
	"github.com/yatagawa/anirec/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "anirec",
		Short: "anime recommendation server",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "serve the recommendation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "import the dataset, vectors and neighbor lists into postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runImport(cfg)
		},
	}

	rootCmd.AddCommand(runCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", path))
	return cfg, nil
}

func buildDatasetService(cfg *config.Config) (*service.DatasetService, error) {
	source, err := dataset.NewSource(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("init dataset source: %w", err)
	}
	return service.NewDatasetService(source, cfg.Dataset, cfg.Vectorizer), nil
}

func buildImportService(cfg *config.Config, datasets *service.DatasetService) (*service.ImportService, error) {
	db, err := repo.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := repo.ApplyMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	animeRepo := repo.NewAnimeRepo(db)
	vectorRepo := repo.NewVectorRepo(db)
	neighborRepo := repo.NewNeighborRepo(db)
	return service.NewImportService(datasets, animeRepo, vectorRepo, neighborRepo, cfg.Recommend.NeighborK), nil
}

func runImport(cfg *config.Config) error {
	if !cfg.DB.Enabled() {
		return fmt.Errorf("db is required for import")
	}
	datasets, err := buildDatasetService(cfg)
	if err != nil {
		return err
	}
	importer, err := buildImportService(cfg, datasets)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := datasets.Reload(ctx); err != nil {
		return err
	}
	return importer.Run(ctx)
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("dataset", cfg.Dataset.Type),
	)

	datasets, err := buildDatasetService(cfg)
	if err != nil {
		return err
	}
	if err := datasets.Reload(context.Background()); err != nil {
		return fmt.Errorf("initial index build: %w", err)
	}

	var importer *service.ImportService
	if cfg.DB.Enabled() {
		importer, err = buildImportService(cfg, datasets)
		if err != nil {
			return err
		}
	}

	recommendService := service.NewRecommendService(datasets, cfg.Recommend)
	authService := service.NewAuthService(cfg.AdminKeyHash, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))

	deps := handler.RouterDeps{
		Meta:            handler.NewMetaHandler(recommendService),
		Recommend:       handler.NewRecommendHandler(recommendService),
		Classify:        handler.NewClassifyHandler(recommendService),
		Auth:            handler.NewAuthHandler(authService),
		Admin:           handler.NewAdminHandler(datasets, importer),
		JWTSecret:       []byte(cfg.JWTSecret),
		RateLimitWindow: time.Duration(cfg.Recommend.RateLimitMillis) * time.Millisecond,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.ReindexCron != "" {
		if err := scheduler.AddJob(job.NewReindexJob(datasets), cfg.ReindexCron); err != nil {
			return err
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
