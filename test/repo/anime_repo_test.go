package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yatagawa/anirec/internal/model"
	"github.com/yatagawa/anirec/internal/pkg/errs"
	"github.com/yatagawa/anirec/internal/repo"
	"github.com/yatagawa/anirec/test/testutil"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }

func TestAnimeRepoReplaceAndLookup(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	anime := repo.NewAnimeRepo(db)
	records := []model.AnimeRecord{
		{ID: 1, Title: "Naruto", Genre: "Action,Adventure", Type: "TV", Score: floatPtr(7.9), Episodes: intPtr(220)},
		{ID: 2, Title: "Your Name", Genre: "Romance,Drama", Type: "Movie", Score: floatPtr(8.8), Episodes: intPtr(1)},
		{ID: 3, Title: "Unscored", Genre: "Comedy"},
	}
	require.NoError(t, anime.ReplaceAll(context.Background(), records))

	count, err := anime.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	fetched, err := anime.GetByTitle(context.Background(), "Naruto")
	require.NoError(t, err)
	require.EqualValues(t, 1, fetched.ID)
	require.Equal(t, "Action,Adventure", fetched.Genre)
	require.NotNil(t, fetched.Score)
	require.InDelta(t, 7.9, *fetched.Score, 1e-9)

	fetched, err = anime.GetByTitle(context.Background(), "Unscored")
	require.NoError(t, err)
	require.Nil(t, fetched.Score)
	require.Nil(t, fetched.Episodes)

	_, err = anime.GetByTitle(context.Background(), "Missing")
	require.ErrorIs(t, err, errs.ErrNotFound)

	all, err := anime.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	// ReplaceAll truncates before inserting.
	require.NoError(t, anime.ReplaceAll(context.Background(), records[:1]))
	count, err = anime.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestVectorAndNeighborRepoUpsert(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	anime := repo.NewAnimeRepo(db)
	require.NoError(t, anime.ReplaceAll(context.Background(), []model.AnimeRecord{
		{ID: 1, Title: "Naruto", Genre: "Action"},
		{ID: 2, Title: "Bleach", Genre: "Action"},
	}))

	vectors := repo.NewVectorRepo(db)
	now := time.Now().Unix()
	require.NoError(t, vectors.Save(context.Background(), &model.AnimeVector{
		AnimeID:     1,
		Embedding:   []float32{0.1, 0.2, 0.3},
		VocabSize:   3,
		ContentHash: "hash-a",
		Mtime:       now,
	}))
	// second save with same id updates in place
	require.NoError(t, vectors.Save(context.Background(), &model.AnimeVector{
		AnimeID:     1,
		Embedding:   []float32{0.4, 0.5, 0.6},
		VocabSize:   3,
		ContentHash: "hash-b",
		Mtime:       now + 1,
	}))

	vec, err := vectors.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "hash-b", vec.ContentHash)
	require.Len(t, vec.Embedding, 3)
	require.InDelta(t, 0.4, vec.Embedding[0], 1e-6)

	neighbors := repo.NewNeighborRepo(db)
	require.NoError(t, neighbors.Save(context.Background(), &model.AnimeNeighbors{
		AnimeID: 1,
		Metric:  "cosine",
		K:       1,
		Neighbors: []model.Neighbor{
			{AnimeID: 2, Sim: 0.9321},
		},
		Mtime: now,
	}))

	got, err := neighbors.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "cosine", got.Metric)
	require.Len(t, got.Neighbors, 1)
	require.EqualValues(t, 2, got.Neighbors[0].AnimeID)

	_, err = neighbors.Get(context.Background(), 99)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, neighbors.DeleteAll(context.Background()))
	_, err = neighbors.Get(context.Background(), 1)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
