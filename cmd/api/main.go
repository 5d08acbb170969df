package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"microdrama-go/internal/api/handler"
	"microdrama-go/internal/api/middleware"
	"microdrama-go/internal/api/router"
	"microdrama-go/internal/config"
	"microdrama-go/internal/infra/database"
	infraES "microdrama-go/internal/infra/elasticsearch"
	infraKafka "microdrama-go/internal/infra/kafka"
	infraMinio "microdrama-go/internal/infra/minio"
	infraRedis "microdrama-go/internal/infra/redis"
	"microdrama-go/internal/metrics"
	"microdrama-go/internal/model"
	"microdrama-go/internal/playback"
	"microdrama-go/internal/repository"
	"microdrama-go/internal/service"
	"microdrama-go/pkg/logger"

	_ "microdrama-go/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Microdrama API
// @version 1.0
// @description 短剧目录服务 API
// @BasePath /api/v1

func main() {
	// .env 可选，存在时注入环境变量（MUX_SIGNING_KEY_ID 等）
	_ = godotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 数据库是唯一的必需依赖
	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db, model.All()...); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	checks := map[string]handler.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}

	// Redis（可选，用于评分限流）
	var ratingLimit gin.HandlerFunc
	if cfg.Redis.Enabled() {
		rdb, err := infraRedis.Open(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, rating rate limit disabled", zap.Error(err))
		} else {
			defer infraRedis.Close(rdb)
			ratingLimit = middleware.RateLimit(
				infraRedis.NewWindowCounter(rdb),
				cfg.RateLimit.Requests,
				cfg.RateLimit.WindowDuration(),
			)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	// MinIO（可选，封面与缩略图对象键预签名）
	var artwork service.ArtworkResolver
	if cfg.MinIO.Enabled() {
		resolver, err := infraMinio.Open(ctx, &cfg.MinIO)
		if err != nil {
			logger.Warn("MinIO unavailable, artwork references returned as stored", zap.Error(err))
		} else {
			artwork = resolver
		}
	}

	// Kafka（可选，领域事件）
	var publisher service.EventPublisher
	if cfg.Kafka.Enabled() {
		producer := infraKafka.NewProducer(&cfg.Kafka)
		defer producer.Close()
		publisher = producer
	}

	// Elasticsearch（可选，失败则搜索降级到 DB）
	var index service.ShowIndexer
	if len(cfg.Elasticsearch.Hosts) > 0 {
		showIndex, err := infraES.Open(ctx, &cfg.Elasticsearch)
		if err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			index = showIndex
		}
	}

	signer := playback.NewSigner(cfg.Mux)
	logger.Info("Playback signer ready", zap.Bool("signing", signer.Signing()))

	// 初始化依赖（Repository -> Service -> Handler）
	showRepo := repository.NewShowRepository(db)
	episodeRepo := repository.NewEpisodeRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)

	showService := service.NewShowService(showRepo, episodeRepo, signer, artwork)
	ratingService := service.NewRatingService(showRepo, ratingRepo, publisher)
	watchService := service.NewWatchService(episodeRepo, historyRepo, publisher)
	searchService := service.NewSearchService(showRepo, index, artwork)
	assetService := service.NewAssetService(episodeRepo, signer)

	// 视频资源就绪事件消费者（后台 goroutine）
	if cfg.Kafka.Enabled() {
		go infraKafka.StartAssetReadyConsumer(
			ctx,
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic("asset_ready"),
			cfg.App.Name+"-asset-ready",
			assetService.HandleAssetReady,
		)
	}

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(metrics.GinMiddleware())
	r.Use(middleware.CORS(cfg.App, cfg.CORS))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, router.Handlers{
		Show:   handler.NewShowHandler(showService),
		Rating: handler.NewRatingHandler(ratingService),
		Watch:  handler.NewWatchHandler(watchService),
		Search: handler.NewSearchHandler(searchService),
		Health: handler.NewHealthHandler(cfg.App.Version, checks),
	}, ratingLimit)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.Bool("redis", ratingLimit != nil),
		zap.Bool("minio", artwork != nil),
		zap.Bool("kafka", publisher != nil),
		zap.Bool("elasticsearch", index != nil),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server exited")
}
