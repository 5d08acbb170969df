package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"microdrama-go/internal/config"
	"microdrama-go/internal/infra/database"
	infraES "microdrama-go/internal/infra/elasticsearch"
	infraKafka "microdrama-go/internal/infra/kafka"
	"microdrama-go/internal/repository"
	"microdrama-go/internal/service"
	"microdrama-go/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// 搜索索引同步 worker：消费 rating.recorded，把最新的点赞/点踩汇总写回 ES
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if !cfg.Kafka.Enabled() {
		logger.Fatal("Kafka brokers not configured, nothing to consume")
	}

	// 监听系统信号，优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	index, err := infraES.Open(ctx, &cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}

	searchService := service.NewSearchService(repository.NewShowRepository(db), index, nil)

	// 启动时做一次全量同步，之后按事件增量更新
	success, failed, err := searchService.SyncShowsToES(ctx)
	if err != nil {
		logger.Error("Initial reindex failed", zap.Error(err))
	} else {
		logger.Info("Initial reindex completed", zap.Int("success", success), zap.Int("failed", failed))
	}

	topic := cfg.Kafka.Topic("rating_recorded")
	groupID := cfg.App.Name + "-search-sync"
	logger.Info("Search sync worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	// 阻塞直到 ctx 取消
	infraKafka.StartRatingRecordedConsumer(ctx, cfg.Kafka.Brokers, topic, groupID,
		func(ctx context.Context, evt *infraKafka.RatingRecorded) error {
			return searchService.SyncShowToES(ctx, evt.ShowID)
		},
	)

	logger.Info("Search sync worker stopped")
}
