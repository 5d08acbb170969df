package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMessage 消息体无法解析或缺少必填字段
var ErrInvalidMessage = errors.New("invalid kafka message")

// RatingRecorded 评分写入后发布
type RatingRecorded struct {
	RatingID    string    `json:"rating_id"`
	ShowID      string    `json:"show_id"`
	RatingValue int       `json:"rating_value"`
	CreatedAt   time.Time `json:"created_at"`
}

// EpisodeWatched 观看状态变更后发布
type EpisodeWatched struct {
	EpisodeID string    `json:"episode_id"`
	ShowID    string    `json:"show_id"`
	Watched   bool      `json:"watched"`
	At        time.Time `json:"at"`
}

// AssetReady 视频资源在 Mux 处理完成，由上游发布
type AssetReady struct {
	EpisodeID    string  `json:"episode_id"`
	PlaybackID   string  `json:"playback_id"`
	DurationSec  *int    `json:"duration_sec,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

// DecodeRatingRecorded 解析 rating.recorded 消息
func DecodeRatingRecorded(value []byte) (*RatingRecorded, error) {
	var evt RatingRecorded
	if err := json.Unmarshal(value, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if evt.ShowID == "" {
		return nil, fmt.Errorf("%w: missing show_id", ErrInvalidMessage)
	}
	return &evt, nil
}

// DecodeAssetReady 解析 asset.ready 消息
func DecodeAssetReady(value []byte) (*AssetReady, error) {
	var evt AssetReady
	if err := json.Unmarshal(value, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	switch {
	case evt.EpisodeID == "":
		return nil, fmt.Errorf("%w: missing episode_id", ErrInvalidMessage)
	case evt.PlaybackID == "":
		return nil, fmt.Errorf("%w: missing playback_id", ErrInvalidMessage)
	case evt.DurationSec != nil && *evt.DurationSec < 0:
		return nil, fmt.Errorf("%w: negative duration_sec", ErrInvalidMessage)
	}
	return &evt, nil
}
