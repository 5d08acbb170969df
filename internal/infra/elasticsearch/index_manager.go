package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"microdrama-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// ShowIndex shows 索引的读写
type ShowIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewShowIndex(es *elasticsearch.Client, index string) *ShowIndex {
	if index == "" {
		index = "shows"
	}
	return &ShowIndex{es: es, index: index}
}

// Name 索引名
func (i *ShowIndex) Name() string {
	return i.index
}

// ShowsIndexMapping 返回 shows 索引的 mapping
func ShowsIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "keyword"},
				"title": {
					"type": "text",
					"analyzer": "standard",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 255}}
				},
				"description": {"type": "text", "analyzer": "standard"},
				"cover_url": {"type": "keyword", "index": false},
				"likes": {"type": "long"},
				"dislikes": {"type": "long"},
				"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsureIndex 确保索引存在，不存在则创建
func (i *ShowIndex) EnsureIndex(ctx context.Context) error {
	resp, err := i.es.Indices.Exists([]string{i.index}, i.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch shows index already exists", zap.String("index", i.index))
		return nil
	}

	resp, err = i.es.Indices.Create(
		i.index,
		i.es.Indices.Create.WithContext(ctx),
		i.es.Indices.Create.WithBody(strings.NewReader(ShowsIndexMapping())),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch shows index created", zap.String("index", i.index))
	return nil
}
