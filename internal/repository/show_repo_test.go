package repository

import (
	"context"
	"testing"
	"time"

	"microdrama-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestShowRepository_ListWithTotals(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	older := seedShow(t, db, "Older", base)
	newer := seedShow(t, db, "Newer", base.Add(time.Hour))

	ratings := NewRatingRepository(db)
	for _, v := range []int{1, 1, 0} {
		_, err := ratings.Create(ctx, older.ID, v)
		require.NoError(t, err)
	}

	shows, err := NewShowRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 2)

	assert.Equal(t, newer.ID, shows[0].ID)
	assert.Equal(t, model.RatingTotals{}, shows[0].RatingTotals)

	assert.Equal(t, older.ID, shows[1].ID)
	assert.Equal(t, int64(2), shows[1].Likes)
	assert.Equal(t, int64(1), shows[1].Dislikes)
}

func TestShowRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	desc := "A short drama"
	show := &model.Show{Title: "Detail", Description: &desc}
	repo := NewShowRepository(db)
	require.NoError(t, repo.Create(ctx, show))
	require.NotEmpty(t, show.ID)

	got, err := repo.GetByID(ctx, show.ID)
	require.NoError(t, err)
	assert.Equal(t, "Detail", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.Nil(t, got.CoverURL)
	assert.Zero(t, got.Total())

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShowRepository_GetByIDsKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedShow(t, db, "A", time.Now())
	b := seedShow(t, db, "B", time.Now())
	c := seedShow(t, db, "C", time.Now())

	shows, err := NewShowRepository(db).GetByIDs(ctx, []string{c.ID, "missing", a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, shows, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{shows[0].ID, shows[1].ID, shows[2].ID})

	empty, err := NewShowRepository(db).GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestShowRepository_Search(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	desc := "A story about a secret billionaire"
	repo := NewShowRepository(db)
	require.NoError(t, repo.Create(ctx, &model.Show{Title: "Hidden Heir", Description: &desc}))
	popular := seedShow(t, db, "The Billionaire Returns", time.Now())
	seedShow(t, db, "Unrelated", time.Now())

	_, err := NewRatingRepository(db).Create(ctx, popular.ID, model.RatingLike)
	require.NoError(t, err)

	shows, total, err := repo.Search(ctx, "  BILLIONAIRE ", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, shows, 2)
	assert.Equal(t, popular.ID, shows[0].ID, "more likes ranks first")

	page, total, err := repo.Search(ctx, "billionaire", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, "Hidden Heir", page[0].Title)
}

func TestShowRepository_SearchTreatsWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewShowRepository(db)
	seedShow(t, db, "100% Revenge", time.Now())
	seedShow(t, db, "1000 Days of Revenge", time.Now())
	seedShow(t, db, "my_heir", time.Now())
	seedShow(t, db, "myXheir", time.Now())

	shows, total, err := repo.Search(ctx, "100%", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, shows, 1)
	assert.Equal(t, "100% Revenge", shows[0].Title)

	shows, total, err = repo.Search(ctx, "my_heir", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, shows, 1)
	assert.Equal(t, "my_heir", shows[0].Title)

	_, total, err = repo.Search(ctx, "%", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestShowRepository_Exists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	show := seedShow(t, db, "Exists", time.Now())
	repo := NewShowRepository(db)

	ok, err := repo.Exists(ctx, show.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeRows(t *testing.T) {
	_, err := showRow{Title: "no id"}.decode()
	assert.ErrorIs(t, err, ErrDecode)

	_, err = showRow{ID: "id"}.decode()
	assert.ErrorIs(t, err, ErrDecode)

	s, err := showRow{ID: "id", Title: "t", Likes: -1}.decode()
	require.NoError(t, err)
	assert.Zero(t, s.Likes)

	_, err = episodeRow{ID: "e", ShowID: "s", Title: "t"}.decode()
	assert.ErrorIs(t, err, ErrDecode)

	_, err = episodeRow{ID: "e", ShowID: "s", MuxPlaybackID: "p"}.decode()
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "missing title")

	watched := true
	ep, err := episodeRow{ID: "e", ShowID: "s", Title: "t", MuxPlaybackID: "p", Watched: &watched}.decode()
	require.NoError(t, err)
	assert.True(t, ep.Watched)

	ep, err = episodeRow{ID: "e", ShowID: "s", Title: "t", MuxPlaybackID: "p"}.decode()
	require.NoError(t, err)
	assert.False(t, ep.Watched)
}
