package repository

import (
	"context"
	"testing"
	"time"

	"microdrama-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchHistoryRepository_MarkWatchedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	show := seedShow(t, db, "Watch", time.Now())
	episodes := seedEpisodes(t, db, show.ID, 1)
	repo := NewWatchHistoryRepository(db)

	first, err := repo.MarkWatched(ctx, episodes[0].ID)
	require.NoError(t, err)
	assert.True(t, first.Watched)

	second, err := repo.MarkWatched(ctx, episodes[0].ID)
	require.NoError(t, err)
	assert.True(t, second.Watched)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.WatchHistory{}).Where("episode_id = ?", episodes[0].ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWatchHistoryRepository_MarkUnwatched(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	show := seedShow(t, db, "Watch", time.Now())
	episodes := seedEpisodes(t, db, show.ID, 1)
	repo := NewWatchHistoryRepository(db)

	watched, updatedAt, err := repo.GetStatus(ctx, episodes[0].ID)
	require.NoError(t, err)
	assert.False(t, watched, "no record means unwatched")
	assert.Nil(t, updatedAt)

	_, err = repo.MarkWatched(ctx, episodes[0].ID)
	require.NoError(t, err)
	record, err := repo.MarkUnwatched(ctx, episodes[0].ID)
	require.NoError(t, err)
	assert.False(t, record.Watched)

	watched, updatedAt, err = repo.GetStatus(ctx, episodes[0].ID)
	require.NoError(t, err)
	assert.False(t, watched)
	require.NotNil(t, updatedAt)
	assert.Equal(t, record.UpdatedAt.Unix(), updatedAt.Unix())
}

// 三集短剧，第一集已看：完整走一遍筛选与排序
func TestWatchHistoryRepository_ThreeEpisodeScenario(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	show := seedShow(t, db, "Test Show", time.Now())
	episodes := seedEpisodes(t, db, show.ID, 3)

	_, err := NewWatchHistoryRepository(db).MarkWatched(ctx, episodes[0].ID)
	require.NoError(t, err)

	repo := NewEpisodeRepository(db)
	all, err := repo.ListByShow(ctx, show.ID, model.EpisodeQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Watched)
	assert.False(t, all[1].Watched)
	assert.False(t, all[2].Watched)

	desc, err := repo.ListByShow(ctx, show.ID, model.EpisodeQuery{Filter: model.FilterUnwatched, Direction: model.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, orders(desc))
}
