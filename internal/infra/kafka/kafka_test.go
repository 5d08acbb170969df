package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"microdrama-go/internal/config"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

// fakeReader 依次返回预置消息，读完后阻塞直到 ctx 取消
type fakeReader struct {
	msgs   chan kafka.Message
	closed bool
}

func newFakeReader(values ...string) *fakeReader {
	r := &fakeReader{msgs: make(chan kafka.Message, len(values))}
	for i, v := range values {
		r.msgs <- kafka.Message{Offset: int64(i), Value: []byte(v)}
	}
	return r
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-r.msgs:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestProducer_PublishesToConfiguredTopics(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, &config.KafkaConfig{Topics: map[string]string{"rating_recorded": "ratings.v1"}})
	ctx := context.Background()

	require.NoError(t, p.RatingRecorded(ctx, RatingRecorded{RatingID: "r1", ShowID: "s1", RatingValue: 1}))
	require.NoError(t, p.EpisodeWatched(ctx, EpisodeWatched{EpisodeID: "e1", ShowID: "s1", Watched: true}))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "ratings.v1", w.msgs[0].Topic)
	assert.Equal(t, "show-s1", string(w.msgs[0].Key))
	assert.Equal(t, "episode.watched", w.msgs[1].Topic)
	assert.Equal(t, "episode-e1", string(w.msgs[1].Key))

	evt, err := DecodeRatingRecorded(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "r1", evt.RatingID)
	assert.Equal(t, 1, evt.RatingValue)

	var watched EpisodeWatched
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &watched))
	assert.True(t, watched.Watched)
}

func TestProducer_WriteError(t *testing.T) {
	p := newProducer(&fakeWriter{err: errors.New("broker down")}, &config.KafkaConfig{})
	err := p.RatingRecorded(context.Background(), RatingRecorded{ShowID: "s1"})
	assert.ErrorContains(t, err, "broker down")

	var nilProducer *Producer
	assert.NoError(t, nilProducer.Close())
}

func TestDecodeAssetReady(t *testing.T) {
	evt, err := DecodeAssetReady([]byte(`{"episode_id":"e1","playback_id":"p1","duration_sec":90,"thumbnail_url":"https://x/y.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, "e1", evt.EpisodeID)
	assert.Equal(t, "p1", evt.PlaybackID)
	require.NotNil(t, evt.DurationSec)
	assert.Equal(t, 90, *evt.DurationSec)
	require.NotNil(t, evt.ThumbnailURL)

	evt, err = DecodeAssetReady([]byte(`{"episode_id":"e1","playback_id":"p1"}`))
	require.NoError(t, err)
	assert.Nil(t, evt.DurationSec)
	assert.Nil(t, evt.ThumbnailURL)

	for _, bad := range []string{
		`not json`,
		`{"playback_id":"p1"}`,
		`{"episode_id":"e1"}`,
		`{"episode_id":"e1","playback_id":"p1","duration_sec":-1}`,
	} {
		_, err := DecodeAssetReady([]byte(bad))
		assert.ErrorIs(t, err, ErrInvalidMessage, bad)
	}
}

func TestDecodeRatingRecorded_MissingShow(t *testing.T) {
	_, err := DecodeRatingRecorded([]byte(`{"rating_id":"r1"}`))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestConsume_HandlesMessagesUntilCancelled(t *testing.T) {
	reader := newFakeReader(`{"n":1}`, `{"n":2}`, `{"n":3}`)
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		Consume(ctx, reader, "test", func(_ context.Context, msg kafka.Message) error {
			mu.Lock()
			seen = append(seen, string(msg.Value))
			n := len(seen)
			mu.Unlock()
			if n == 2 {
				// 处理失败不影响后续消息
				return errors.New("boom")
			}
			if n == 3 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
	assert.Equal(t, []string{`{"n":1}`, `{"n":2}`, `{"n":3}`}, seen)
	assert.True(t, reader.closed)
}
