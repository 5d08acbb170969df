package repository

import (
	"context"
	"strings"

	"microdrama-go/internal/model"

	"gorm.io/gorm"
)

const episodeWithWatchColumns = `e.id, e.show_id, e.title, e."order", e.mux_playback_id, e.duration_sec,
	e.thumbnail_url, e.created_at, e.updated_at,
	COALESCE(wh.watched, false) AS watched`

// 排序字段到列名的映射，只允许白名单中的列拼接进 ORDER BY
var episodeSortColumns = map[model.SortField]string{
	model.SortByTitle:     "e.title",
	model.SortByOrder:     `e."order"`,
	model.SortByCreatedAt: "e.created_at",
}

type EpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// ListByShow 获取短剧的剧集列表（含观看状态），支持按观看状态筛选与排序。
// 短剧不存在时返回空列表。
func (r *EpisodeRepository) ListByShow(ctx context.Context, showID string, q model.EpisodeQuery) ([]model.EpisodeWithWatchStatus, error) {
	q = q.Normalize()

	query := r.db.WithContext(ctx).
		Table("episodes AS e").
		Select(episodeWithWatchColumns).
		Joins("LEFT JOIN watch_history wh ON wh.episode_id = e.id").
		Where("e.show_id = ?", showID)

	switch q.Filter {
	case model.FilterWatched:
		query = query.Where("COALESCE(wh.watched, false) = true")
	case model.FilterUnwatched:
		query = query.Where("(wh.watched = false OR wh.watched IS NULL)")
	}

	column, ok := episodeSortColumns[q.SortBy]
	if !ok {
		column = episodeSortColumns[model.SortByOrder]
	}
	// e.id 作为第二排序键，保证同值时结果稳定
	query = query.
		Order(column + " " + strings.ToUpper(string(q.Direction))).
		Order("e.id ASC")

	var rows []episodeRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	episodes := make([]model.EpisodeWithWatchStatus, 0, len(rows))
	for _, row := range rows {
		ep, err := row.decode()
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

// GetByID 根据 ID 获取剧集
func (r *EpisodeRepository) GetByID(ctx context.Context, id string) (*model.Episode, error) {
	var episode model.Episode
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&episode).Error; err != nil {
		return nil, err
	}
	return &episode, nil
}

// ListAll 全部剧集，按短剧、序号排序
func (r *EpisodeRepository) ListAll(ctx context.Context) ([]model.Episode, error) {
	var episodes []model.Episode
	err := r.db.WithContext(ctx).Order("show_id ASC").Order(`"order" ASC`).Order("id ASC").Find(&episodes).Error
	return episodes, err
}

// Create 批量创建剧集
func (r *EpisodeRepository) Create(ctx context.Context, episodes []model.Episode) error {
	if len(episodes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(episodes, 100).Error
}

// AssetUpdate 视频资源就绪后需要回写的字段
type AssetUpdate struct {
	PlaybackID   string
	DurationSec  *int
	ThumbnailURL *string
}

// UpdateAsset 更新剧集的 Mux 播放ID；缩略图只在原来为空时填充
func (r *EpisodeRepository) UpdateAsset(ctx context.Context, episodeID string, u AssetUpdate) error {
	updates := map[string]interface{}{
		"mux_playback_id": u.PlaybackID,
	}
	if u.DurationSec != nil {
		updates["duration_sec"] = *u.DurationSec
	}
	if u.ThumbnailURL != nil {
		updates["thumbnail_url"] = gorm.Expr("COALESCE(thumbnail_url, ?)", *u.ThumbnailURL)
	}

	result := r.db.WithContext(ctx).Model(&model.Episode{}).Where("id = ?", episodeID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
