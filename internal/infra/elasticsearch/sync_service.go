package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"microdrama-go/internal/model"
	"microdrama-go/pkg/logger"

	"go.uber.org/zap"
)

// ShowDoc ES 短剧文档结构
type ShowDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url,omitempty"`
	Likes       int64  `json:"likes"`
	Dislikes    int64  `json:"dislikes"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func showToDoc(s *model.ShowWithRatings) *ShowDoc {
	doc := &ShowDoc{
		ID:        s.ID,
		Title:     s.Title,
		Likes:     s.Likes,
		Dislikes:  s.Dislikes,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Description != nil {
		doc.Description = *s.Description
	}
	if s.CoverURL != nil {
		doc.CoverURL = *s.CoverURL
	}
	return doc
}

// SyncShow 同步单个短剧（含最新评分汇总）
func (i *ShowIndex) SyncShow(ctx context.Context, s *model.ShowWithRatings) error {
	body, err := json.Marshal(showToDoc(s))
	if err != nil {
		return err
	}

	resp, err := i.es.Index(
		i.index,
		bytes.NewReader(body),
		i.es.Index.WithContext(ctx),
		i.es.Index.WithDocumentID(s.ID),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Show synced to ES", zap.String("show_id", s.ID))
	return nil
}

// DeleteShow 从 ES 删除短剧，文档不存在不算错误
func (i *ShowIndex) DeleteShow(ctx context.Context, showID string) error {
	resp, err := i.es.Delete(i.index, showID, i.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSync 批量同步短剧
func (i *ShowIndex) BulkSync(ctx context.Context, shows []model.ShowWithRatings) (success, failed int, err error) {
	var buf strings.Builder
	for idx := range shows {
		docBody, err := json.Marshal(showToDoc(&shows[idx]))
		if err != nil {
			return 0, len(shows), err
		}
		meta, _ := json.Marshal(map[string]interface{}{
			"index": map[string]string{"_index": i.index, "_id": shows[idx].ID},
		})
		buf.Write(meta)
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	if buf.Len() == 0 {
		return 0, 0, nil
	}

	resp, err := i.es.Bulk(strings.NewReader(buf.String()), i.es.Bulk.WithContext(ctx))
	if err != nil {
		return 0, len(shows), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(shows), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return 0, len(shows), fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// SearchResult 搜索命中的短剧 ID（按相关度排序）与总数
type SearchResult struct {
	IDs   []string
	Total int64
}

// BuildSearchQuery 标题/简介多字段匹配，按相关度、点赞数排序
func BuildSearchQuery(keyword string, from, size int) map[string]interface{} {
	q := strings.TrimSpace(keyword)

	var query map[string]interface{}
	if q == "" {
		query = map[string]interface{}{"match_all": map[string]interface{}{}}
	} else {
		query = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":    q,
				"fields":   []string{"title^3", "description^1"},
				"type":     "best_fields",
				"operator": "or",
			},
		}
	}

	return map[string]interface{}{
		"query":   query,
		"_source": []string{"id"},
		"from":    from,
		"size":    size,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"likes": map[string]string{"order": "desc"}},
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
	}
}

// Search 搜索短剧，返回命中 ID
func (i *ShowIndex) Search(ctx context.Context, keyword string, from, size int) (*SearchResult, error) {
	body, err := json.Marshal(BuildSearchQuery(keyword, from, size))
	if err != nil {
		return nil, err
	}

	resp, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID string `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	result := &SearchResult{
		IDs:   make([]string, 0, len(esResp.Hits.Hits)),
		Total: esResp.Hits.Total.Value,
	}
	for _, h := range esResp.Hits.Hits {
		if h.Source.ID != "" {
			result.IDs = append(result.IDs, h.Source.ID)
		}
	}
	return result, nil
}
