package service

import (
	"context"
	"testing"

	"microdrama-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_RecordAndCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	show, _ := seedShowWithEpisodes(t, db, "Rated", 1)
	pub := &recordingPublisher{}
	svc := NewRatingService(repository.NewShowRepository(db), repository.NewRatingRepository(db), pub)

	for _, v := range []int{1, 1, 0, 1} {
		info, err := svc.Record(ctx, show.ID, v)
		require.NoError(t, err)
		assert.Equal(t, show.ID, info.ShowID)
		assert.Equal(t, v, info.RatingValue)
		assert.NotEmpty(t, info.ID)
	}

	counts, err := svc.Count(ctx, show.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts.Likes)
	assert.Equal(t, int64(1), counts.Dislikes)

	require.Len(t, pub.ratings, 4)
	assert.Equal(t, show.ID, pub.ratings[0].ShowID)
}

func TestRatingService_UnknownShow(t *testing.T) {
	db := newTestDB(t)
	svc := NewRatingService(repository.NewShowRepository(db), repository.NewRatingRepository(db), nil)

	_, err := svc.Record(context.Background(), "00000000-0000-0000-0000-000000000000", 1)
	assert.ErrorIs(t, err, ErrShowNotFound)

	_, err = svc.Count(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestRatingService_InvalidValue(t *testing.T) {
	db := newTestDB(t)
	show, _ := seedShowWithEpisodes(t, db, "Rated", 1)
	svc := NewRatingService(repository.NewShowRepository(db), repository.NewRatingRepository(db), nil)

	_, err := svc.Record(context.Background(), show.ID, 2)
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestRatingService_PublishFailureDoesNotFailRequest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	show, _ := seedShowWithEpisodes(t, db, "Rated", 1)
	svc := NewRatingService(repository.NewShowRepository(db), repository.NewRatingRepository(db), &recordingPublisher{err: errBroker})

	_, err := svc.Record(ctx, show.ID, 1)
	require.NoError(t, err)

	counts, err := svc.Count(ctx, show.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Likes)
}
