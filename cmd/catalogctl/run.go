package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"microdrama-go/internal/config"
	"microdrama-go/internal/infra/database"
	infraES "microdrama-go/internal/infra/elasticsearch"
	infraMinio "microdrama-go/internal/infra/minio"
	infraRedis "microdrama-go/internal/infra/redis"
	"microdrama-go/internal/model"
	"microdrama-go/internal/playback"
	"microdrama-go/internal/repository"
	"microdrama-go/internal/service"
	"microdrama-go/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

// withDB 加载配置并打开数据库，fn 返回后关闭连接
func withDB(fn func(cfg *config.Config, db *gorm.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(cfg, db)
}

func runMigrateUp(ctx context.Context) error {
	return withDB(func(_ *config.Config, db *gorm.DB) error {
		return database.AutoMigrate(db.WithContext(ctx), model.All()...)
	})
}

func runMigrateDown(ctx context.Context) error {
	return withDB(func(_ *config.Config, db *gorm.DB) error {
		return database.DropAll(db.WithContext(ctx), model.All()...)
	})
}

func runSeed(ctx context.Context, out io.Writer, shows, episodes int) error {
	return withDB(func(_ *config.Config, db *gorm.DB) error {
		if err := database.AutoMigrate(db, model.All()...); err != nil {
			return err
		}
		res, err := service.NewSeedService(db).Seed(ctx, service.SeedOptions{Shows: shows, EpisodesPerShow: episodes})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "seeded %d shows, %d episodes, %d ratings\n", res.Shows, res.Episodes, res.Ratings)
		return nil
	})
}

func runReindex(ctx context.Context, out io.Writer) error {
	return withDB(func(cfg *config.Config, db *gorm.DB) error {
		index, err := infraES.Open(ctx, &cfg.Elasticsearch)
		if err != nil {
			return err
		}
		success, failed, err := service.NewSearchService(repository.NewShowRepository(db), index, nil).SyncShowsToES(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "indexed %d shows, %d failed\n", success, failed)
		return nil
	})
}

func runBackfill(ctx context.Context, out io.Writer, ids []string, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return withDB(func(cfg *config.Config, db *gorm.DB) error {
		assets := service.NewAssetService(repository.NewEpisodeRepository(db), playback.NewSigner(cfg.Mux))
		counts, err := assets.BackfillPlaybackIDs(ctx, ids, rand.New(rand.NewSource(seed)))
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(counts))
		for id := range counts {
			keys = append(keys, id)
		}
		sort.Strings(keys)
		for _, id := range keys {
			fmt.Fprintf(out, "%s\t%d\n", id, counts[id])
		}
		return nil
	})
}

// runPing 依次检查已配置的存储，任一失败都返回错误
func runPing(ctx context.Context, out io.Writer) error {
	return withDB(func(cfg *config.Config, db *gorm.DB) error {
		failed := 0
		report := func(name string, err error) {
			if err != nil {
				failed++
				fmt.Fprintf(out, "%-14s FAIL %v\n", name, err)
				return
			}
			fmt.Fprintf(out, "%-14s ok\n", name)
		}

		report("database", database.Ping(ctx, db))

		if cfg.Redis.Enabled() {
			rdb, err := infraRedis.Open(&cfg.Redis)
			if err == nil {
				_ = infraRedis.Close(rdb)
			}
			report("redis", err)
		}
		if cfg.MinIO.Enabled() {
			_, err := infraMinio.Open(ctx, &cfg.MinIO)
			report("minio", err)
		}
		if len(cfg.Elasticsearch.Hosts) > 0 {
			_, err := infraES.Open(ctx, &cfg.Elasticsearch)
			report("elasticsearch", err)
		}

		if failed > 0 {
			return fmt.Errorf("%d store(s) unreachable", failed)
		}
		return nil
	})
}
