package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpisodeQueryNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   EpisodeQuery
		want EpisodeQuery
	}{
		{
			name: "zero value uses defaults",
			in:   EpisodeQuery{},
			want: EpisodeQuery{Filter: FilterAll, SortBy: SortByOrder, Direction: SortAsc},
		},
		{
			name: "explicit values kept",
			in:   EpisodeQuery{Filter: FilterWatched, SortBy: SortByTitle, Direction: SortDesc},
			want: EpisodeQuery{Filter: FilterWatched, SortBy: SortByTitle, Direction: SortDesc},
		},
		{
			name: "case insensitive",
			in:   EpisodeQuery{Filter: "UNWATCHED", SortBy: "Created_At", Direction: "DESC"},
			want: EpisodeQuery{Filter: FilterUnwatched, SortBy: SortByCreatedAt, Direction: SortDesc},
		},
		{
			name: "unknown sort key falls back to order",
			in:   EpisodeQuery{SortBy: "show_title", Direction: SortDesc},
			want: EpisodeQuery{Filter: FilterAll, SortBy: SortByOrder, Direction: SortDesc},
		},
		{
			name: "unknown filter and direction fall back",
			in:   EpisodeQuery{Filter: "half-watched", Direction: "sideways"},
			want: EpisodeQuery{Filter: FilterAll, SortBy: SortByOrder, Direction: SortAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestValidRatingValue(t *testing.T) {
	assert.True(t, ValidRatingValue(0))
	assert.True(t, ValidRatingValue(1))
	assert.False(t, ValidRatingValue(2))
	assert.False(t, ValidRatingValue(-1))
}
