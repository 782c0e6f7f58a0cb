package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yatagawa/anirec/internal/config"
	"github.com/yatagawa/anirec/internal/dataset"
	"github.com/yatagawa/anirec/internal/pkg/errs"
)

const testCSV = `title,genre,type,score,episodes
Naruto,"Action,Adventure",TV,7.9,220
Bleach,"Action,Adventure",TV,7.8,366
One Piece,"Action,Adventure",TV,8.6,1000
Your Name,"Romance,Drama",Movie,8.8,1
Clannad,"Romance,Drama",TV,8.0,23
`

func newTestDatasetService(t *testing.T, csv string) (*DatasetService, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "anime.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	datasetCfg := config.DatasetConfig{
		Type:       "local",
		Data:       map[string]interface{}{"path": path},
		SampleSize: 10000,
		SampleSeed: 42,
	}
	source, err := dataset.NewSource(datasetCfg)
	require.NoError(t, err)
	return NewDatasetService(source, datasetCfg, config.VectorizerConfig{NgramMax: 1}), path
}

func newTestRecommendService(t *testing.T) (*RecommendService, *DatasetService, string) {
	t.Helper()
	datasets, path := newTestDatasetService(t, testCSV)
	require.NoError(t, datasets.Reload(context.Background()))
	recs := NewRecommendService(datasets, config.RecommendConfig{
		DefaultTopN:     5,
		MaxTopN:         50,
		CacheSize:       100,
		CacheTTLMinutes: 5,
	})
	return recs, datasets, path
}

func TestRecommendServiceNotReady(t *testing.T) {
	datasets, _ := newTestDatasetService(t, testCSV)
	recs := NewRecommendService(datasets, config.RecommendConfig{DefaultTopN: 5, MaxTopN: 50, CacheSize: 10, CacheTTLMinutes: 1})
	_, _, err := recs.Recommend(context.Background(), "Naruto", 5)
	require.ErrorIs(t, err, errs.ErrNotReady)
}

func TestRecommendServiceBasics(t *testing.T) {
	recs, _, _ := newTestRecommendService(t)

	list, suggestions, err := recs.Recommend(context.Background(), "Naruto", 3)
	require.NoError(t, err)
	require.Nil(t, suggestions)
	require.Len(t, list, 3)
	for _, rec := range list {
		require.NotEqual(t, "Naruto", rec.Title)
	}

	// Cached second call returns the same payload.
	again, _, err := recs.Recommend(context.Background(), "Naruto", 3)
	require.NoError(t, err)
	require.Equal(t, list, again)
}

func TestRecommendServiceUnknownTitleSuggestions(t *testing.T) {
	recs, _, _ := newTestRecommendService(t)
	_, suggestions, err := recs.Recommend(context.Background(), "narut", 5)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.Equal(t, []string{"Naruto"}, suggestions)
}

func TestRecommendServiceTopNClamped(t *testing.T) {
	recs, _, _ := newTestRecommendService(t)
	list, _, err := recs.Recommend(context.Background(), "Naruto", 500)
	require.NoError(t, err)
	// Clamped to max, then bounded by corpus size.
	require.Len(t, list, 4)
}

func TestRecommendServiceReloadInvalidatesCache(t *testing.T) {
	recs, datasets, path := newTestRecommendService(t)

	_, _, err := recs.Recommend(context.Background(), "Clannad", 2)
	require.NoError(t, err)

	trimmed := `title,genre,type,score,episodes
Naruto,"Action,Adventure",TV,7.9,220
Bleach,"Action,Adventure",TV,7.8,366
`
	require.NoError(t, os.WriteFile(path, []byte(trimmed), 0o644))
	require.NoError(t, datasets.Reload(context.Background()))

	_, _, err = recs.Recommend(context.Background(), "Clannad", 2)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDatasetServiceSkipsUnchangedReload(t *testing.T) {
	_, datasets, _ := newTestRecommendService(t)
	_, gen1, err := datasets.Current()
	require.NoError(t, err)
	require.NoError(t, datasets.Reload(context.Background()))
	_, gen2, err := datasets.Current()
	require.NoError(t, err)
	require.Equal(t, gen1, gen2)
}

func TestRecommendServiceInfoAndSearch(t *testing.T) {
	recs, _, _ := newTestRecommendService(t)

	rec, err := recs.Info(context.Background(), "your name")
	require.NoError(t, err)
	require.Equal(t, "Your Name", rec.Title)

	_, err = recs.Info(context.Background(), "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)

	matches, err := recs.Search(context.Background(), "an", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"Clannad"}, matches)
}

func TestRecommendServiceClassify(t *testing.T) {
	recs, _, _ := newTestRecommendService(t)
	pred, err := recs.Classify(context.Background(), "Naruto", 2)
	require.NoError(t, err)
	require.Equal(t, "TV", pred.Label)
}

func TestRecommendServiceRandomClamped(t *testing.T) {
	recs, _, _ := newTestRecommendService(t)
	titles, err := recs.Random(context.Background(), 100)
	require.NoError(t, err)
	// Clamped to 20, bounded by corpus size.
	require.Len(t, titles, 5)
}
