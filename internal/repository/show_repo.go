package repository

import (
	"context"
	"strings"

	"microdrama-go/internal/model"

	"gorm.io/gorm"
)

// 评分汇总在同一条查询中由 ratings 表实时求和
const showWithRatingsColumns = `s.id, s.title, s.description, s.cover_url, s.created_at, s.updated_at,
	COALESCE(SUM(CASE WHEN r.rating_value = 1 THEN 1 ELSE 0 END), 0) AS likes,
	COALESCE(SUM(CASE WHEN r.rating_value = 0 THEN 1 ELSE 0 END), 0) AS dislikes`

type ShowRepository struct {
	db *gorm.DB
}

func NewShowRepository(db *gorm.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

func (r *ShowRepository) withRatings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("shows AS s").
		Select(showWithRatingsColumns).
		Joins("LEFT JOIN ratings r ON r.show_id = s.id").
		Group("s.id, s.title, s.description, s.cover_url, s.created_at, s.updated_at")
}

// List 全部短剧（含评分汇总），最新创建的在前
func (r *ShowRepository) List(ctx context.Context) ([]model.ShowWithRatings, error) {
	var rows []showRow
	err := r.withRatings(ctx).
		Order("s.created_at DESC").
		Order("s.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeShowRows(rows)
}

// GetByID 根据 ID 获取短剧（含评分汇总），不存在返回 gorm.ErrRecordNotFound
func (r *ShowRepository) GetByID(ctx context.Context, id string) (*model.ShowWithRatings, error) {
	var rows []showRow
	if err := r.withRatings(ctx).Where("s.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	show, err := rows[0].decode()
	if err != nil {
		return nil, err
	}
	return &show, nil
}

// GetByIDs 批量获取短剧，结果按传入 ID 的顺序排列，不存在的 ID 被忽略
func (r *ShowRepository) GetByIDs(ctx context.Context, ids []string) ([]model.ShowWithRatings, error) {
	if len(ids) == 0 {
		return []model.ShowWithRatings{}, nil
	}

	var rows []showRow
	if err := r.withRatings(ctx).Where("s.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	shows, err := decodeShowRows(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.ShowWithRatings, len(shows))
	for _, s := range shows {
		byID[s.ID] = s
	}
	ordered := make([]model.ShowWithRatings, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

// Search 按标题/简介模糊搜索（ES 不可用时的降级路径）
func (r *ShowRepository) Search(ctx context.Context, keyword string, skip, limit int) ([]model.ShowWithRatings, int64, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(keyword))) + "%"
	match := `LOWER(s.title) LIKE ? ESCAPE '\' OR LOWER(COALESCE(s.description, '')) LIKE ? ESCAPE '\'`

	var total int64
	err := r.db.WithContext(ctx).Table("shows AS s").Where(match, pattern, pattern).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []showRow
	err = r.withRatings(ctx).
		Where(match, pattern, pattern).
		Order("likes DESC").
		Order("s.created_at DESC").
		Order("s.id ASC").
		Offset(skip).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	shows, err := decodeShowRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return shows, total, nil
}

// likeEscaper 让关键词中的 % 与 _ 按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Exists 短剧是否存在
func (r *ShowRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Show{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create 创建短剧
func (r *ShowRepository) Create(ctx context.Context, show *model.Show) error {
	return r.db.WithContext(ctx).Create(show).Error
}
