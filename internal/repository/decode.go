package repository

import (
	"errors"
	"fmt"
	"time"

	"microdrama-go/internal/model"
)

// ErrDecode 查询结果缺少必填字段
var ErrDecode = errors.New("decode row")

// showRow 短剧聚合查询的原始行
type showRow struct {
	ID          string    `gorm:"column:id"`
	Title       string    `gorm:"column:title"`
	Description *string   `gorm:"column:description"`
	CoverURL    *string   `gorm:"column:cover_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
	Likes       int64     `gorm:"column:likes"`
	Dislikes    int64     `gorm:"column:dislikes"`
}

func (r showRow) decode() (model.ShowWithRatings, error) {
	if r.ID == "" {
		return model.ShowWithRatings{}, fmt.Errorf("%w: show missing id", ErrDecode)
	}
	if r.Title == "" {
		return model.ShowWithRatings{}, fmt.Errorf("%w: show %s missing title", ErrDecode, r.ID)
	}
	likes, dislikes := r.Likes, r.Dislikes
	if likes < 0 {
		likes = 0
	}
	if dislikes < 0 {
		dislikes = 0
	}
	return model.ShowWithRatings{
		Show: model.Show{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			CoverURL:    r.CoverURL,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		RatingTotals: model.RatingTotals{Likes: likes, Dislikes: dislikes},
	}, nil
}

func decodeShowRows(rows []showRow) ([]model.ShowWithRatings, error) {
	shows := make([]model.ShowWithRatings, 0, len(rows))
	for _, row := range rows {
		s, err := row.decode()
		if err != nil {
			return nil, err
		}
		shows = append(shows, s)
	}
	return shows, nil
}

// episodeRow 剧集 + 观看状态的原始行
type episodeRow struct {
	ID            string    `gorm:"column:id"`
	ShowID        string    `gorm:"column:show_id"`
	Title         string    `gorm:"column:title"`
	Order         int       `gorm:"column:order"`
	MuxPlaybackID string    `gorm:"column:mux_playback_id"`
	DurationSec   int       `gorm:"column:duration_sec"`
	ThumbnailURL  *string   `gorm:"column:thumbnail_url"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
	Watched       *bool     `gorm:"column:watched"`
}

func (r episodeRow) decode() (model.EpisodeWithWatchStatus, error) {
	switch {
	case r.ID == "":
		return model.EpisodeWithWatchStatus{}, fmt.Errorf("%w: episode missing id", ErrDecode)
	case r.ShowID == "":
		return model.EpisodeWithWatchStatus{}, fmt.Errorf("%w: episode %s missing show_id", ErrDecode, r.ID)
	case r.Title == "":
		return model.EpisodeWithWatchStatus{}, fmt.Errorf("%w: episode %s missing title", ErrDecode, r.ID)
	case r.MuxPlaybackID == "":
		return model.EpisodeWithWatchStatus{}, fmt.Errorf("%w: episode %s missing mux_playback_id", ErrDecode, r.ID)
	}
	return model.EpisodeWithWatchStatus{
		Episode: model.Episode{
			ID:            r.ID,
			ShowID:        r.ShowID,
			Title:         r.Title,
			Order:         r.Order,
			MuxPlaybackID: r.MuxPlaybackID,
			DurationSec:   r.DurationSec,
			ThumbnailURL:  r.ThumbnailURL,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		},
		// 没有观看记录视为未观看
		Watched: r.Watched != nil && *r.Watched,
	}, nil
}
