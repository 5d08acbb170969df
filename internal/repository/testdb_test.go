package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"microdrama-go/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: 每个连接是独立的库，固定为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func seedShow(t *testing.T, db *gorm.DB, title string, createdAt time.Time) *model.Show {
	t.Helper()
	show := &model.Show{Title: title, CreatedAt: createdAt, UpdatedAt: createdAt}
	require.NoError(t, db.Create(show).Error)
	return show
}

// seedEpisodes 为短剧创建 n 集，序号从 1 开始
func seedEpisodes(t *testing.T, db *gorm.DB, showID string, n int) []model.Episode {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	episodes := make([]model.Episode, 0, n)
	for i := 1; i <= n; i++ {
		episodes = append(episodes, model.Episode{
			ShowID:        showID,
			Title:         fmt.Sprintf("Episode %d", i),
			Order:         i,
			MuxPlaybackID: fmt.Sprintf("playback-%d", i),
			DurationSec:   60 + i,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
	}
	require.NoError(t, NewEpisodeRepository(db).Create(context.Background(), episodes))
	return episodes
}
