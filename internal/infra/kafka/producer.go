package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"microdrama-go/internal/config"
	"microdrama-go/internal/metrics"
	"microdrama-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter kafka.Writer 的最小接口
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer 领域事件生产者
type Producer struct {
	writer         messageWriter
	ratingTopic    string
	episodeTopic   string
	publishTimeout time.Duration
}

// NewProducer 创建 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return newProducer(writer, cfg)
}

func newProducer(w messageWriter, cfg *config.KafkaConfig) *Producer {
	return &Producer{
		writer:         w,
		ratingTopic:    cfg.Topic("rating_recorded"),
		episodeTopic:   cfg.Topic("episode_watched"),
		publishTimeout: 5 * time.Second,
	}
}

// RatingRecorded 发布评分事件，同一短剧的事件落在同一分区
func (p *Producer) RatingRecorded(ctx context.Context, evt RatingRecorded) error {
	return p.send(ctx, p.ratingTopic, "show-"+evt.ShowID, evt)
}

// EpisodeWatched 发布观看状态事件
func (p *Producer) EpisodeWatched(ctx context.Context, evt EpisodeWatched) error {
	return p.send(ctx, p.episodeTopic, "episode-"+evt.EpisodeID, evt)
}

func (p *Producer) send(ctx context.Context, topic, key string, evt interface{}) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		return fmt.Errorf("failed to send kafka message: %w", err)
	}

	metrics.EventsPublished.WithLabelValues(topic, "ok").Inc()
	logger.Debug("Kafka event sent", zap.String("topic", topic), zap.String("key", key))
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
