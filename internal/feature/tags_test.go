package feature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yatagawa/anirec/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }

func TestBuildTagsWeighting(t *testing.T) {
	rec := model.AnimeRecord{
		Title:  "Naruto",
		Genre:  "Action,Adventure",
		Type:   "TV",
		Source: "Manga",
		Studio: "Pierrot",
	}
	tags := strings.Fields(BuildTags(rec))
	require.Equal(t, 3, count(tags, "Naruto"))
	require.Equal(t, 2, count(tags, "Action"))
	require.Equal(t, 2, count(tags, "Adventure"))
	require.Equal(t, 1, count(tags, "TV"))
	require.Equal(t, 1, count(tags, "Manga"))
	require.Equal(t, 1, count(tags, "Pierrot"))
}

func TestBuildTagsScoreBuckets(t *testing.T) {
	tests := []struct {
		name  string
		score *float64
		want  string
	}{
		{"high", floatPtr(8.5), "highly_rated"},
		{"well", floatPtr(7.2), "well_rated"},
		{"decent", floatPtr(6.0), "decent_rated"},
		{"low", floatPtr(4.0), ""},
		{"missing", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, scoreTag(tt.score))
		})
	}
}

func TestBuildTagsEpisodeBuckets(t *testing.T) {
	tests := []struct {
		name     string
		episodes *int64
		want     string
	}{
		{"movie", intPtr(1), "movie_format"},
		{"short", intPtr(12), "short_series"},
		{"standard", intPtr(24), "standard_series"},
		{"long", intPtr(220), "long_series"},
		{"missing", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, episodeTag(tt.episodes))
		})
	}
}

func TestBuildTagsEraBuckets(t *testing.T) {
	tests := []struct {
		name  string
		aired string
		want  string
	}{
		{"recent", "Jan 2021 to Mar 2022", "recent_anime"},
		{"modern", "Oct 3, 2012 to ?", "modern_era"},
		{"early2000s", "2004", "early_2000s"},
		{"classic", "Apr 1998", "classic_anime"},
		{"first year wins", "1999 to 2015", "classic_anime"},
		{"no year", "unknown date", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, eraTag(tt.aired))
		})
	}
}

func TestBuildTagsSkipsEmptyFields(t *testing.T) {
	rec := model.AnimeRecord{Title: "Solo", Genre: "Action"}
	tags := strings.Fields(BuildTags(rec))
	require.Equal(t, []string{"Solo", "Solo", "Solo", "Action", "Action"}, tags)
}

func count(tags []string, want string) int {
	n := 0
	for _, tag := range tags {
		if tag == want {
			n++
		}
	}
	return n
}
