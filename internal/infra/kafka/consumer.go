package kafka

import (
	"context"
	"errors"
	"time"

	"microdrama-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageReader kafka.Reader 的最小接口
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// MessageHandler 处理单条消息；返回错误只记录日志，不会阻塞后续消息
type MessageHandler func(ctx context.Context, msg kafka.Message) error

// AssetReadyHandler 处理 asset.ready 事件
type AssetReadyHandler func(ctx context.Context, evt *AssetReady) error

// RatingRecordedHandler 处理 rating.recorded 事件
type RatingRecordedHandler func(ctx context.Context, evt *RatingRecorded) error

// NewReader 创建消费组 reader
func NewReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})
}

// StartAssetReadyConsumer 启动 asset.ready 消费者（阻塞，需在 goroutine 中运行）
func StartAssetReadyConsumer(ctx context.Context, brokers []string, topic, groupID string, handler AssetReadyHandler) {
	Consume(ctx, NewReader(brokers, topic, groupID), topic, func(ctx context.Context, msg kafka.Message) error {
		evt, err := DecodeAssetReady(msg.Value)
		if err != nil {
			return err
		}
		logger.Info("Received asset ready event",
			zap.String("episode_id", evt.EpisodeID),
			zap.String("playback_id", evt.PlaybackID),
		)
		return handler(ctx, evt)
	})
}

// StartRatingRecordedConsumer 启动 rating.recorded 消费者（阻塞）
func StartRatingRecordedConsumer(ctx context.Context, brokers []string, topic, groupID string, handler RatingRecordedHandler) {
	Consume(ctx, NewReader(brokers, topic, groupID), topic, func(ctx context.Context, msg kafka.Message) error {
		evt, err := DecodeRatingRecorded(msg.Value)
		if err != nil {
			return err
		}
		return handler(ctx, evt)
	})
}

// Consume 循环读取消息直到 ctx 取消，退出时关闭 reader
func Consume(ctx context.Context, reader messageReader, topic string, handle MessageHandler) {
	log := logger.Named("kafka.consumer").With(zap.String("topic", topic))

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error("Failed to close kafka consumer", zap.Error(err))
		}
		log.Info("Kafka consumer stopped")
	}()

	log.Info("Kafka consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if err := handle(ctx, msg); err != nil {
			if errors.Is(err, ErrInvalidMessage) {
				log.Error("Dropping invalid kafka message",
					zap.Error(err),
					zap.ByteString("value", msg.Value),
				)
				continue
			}
			log.Error("Failed to handle kafka message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}
