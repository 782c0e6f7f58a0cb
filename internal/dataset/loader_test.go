package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yatagawa/anirec/internal/model"
)

const sampleCSV = `title,genre,type,source,score,episodes,aired,studio
Naruto,"Action,Adventure",TV,Manga,7.9,220,"Oct 3, 2002 to Feb 8, 2007",Pierrot
Bleach,"Action,Adventure",TV,Manga,7.8,366,"Oct 5, 2004 to Mar 27, 2012",Pierrot
No Genre Entry,,TV,Manga,6.0,12,2010,
,Action,TV,Manga,6.0,12,2010,
Weird Numbers,Comedy,TV,Manga,notanumber,unknown,2015,
`

func TestLoadCleansRows(t *testing.T) {
	records, columns, err := Load(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	// Rows without title or genre are dropped.
	require.Len(t, records, 3)
	require.Equal(t, []string{"title", "genre", "type", "source", "score", "episodes", "aired", "studio"}, columns)

	require.Equal(t, "Naruto", records[0].Title)
	require.Equal(t, int64(1), records[0].ID)
	require.NotNil(t, records[0].Score)
	require.InDelta(t, 7.9, *records[0].Score, 1e-9)
	require.NotNil(t, records[0].Episodes)
	require.Equal(t, int64(220), *records[0].Episodes)

	// Unparseable numerics become nulls, not errors.
	weird := records[2]
	require.Equal(t, "Weird Numbers", weird.Title)
	require.Nil(t, weird.Score)
	require.Nil(t, weird.Episodes)
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	csv := "title,type\nNaruto,TV\n"
	_, _, err := Load(context.Background(), strings.NewReader(csv))
	require.Error(t, err)
	require.Contains(t, err.Error(), "genre")
}

func TestLoadOptionalColumnsMayBeAbsent(t *testing.T) {
	csv := "title,genre\nNaruto,Action\n"
	records, columns, err := Load(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, []string{"title", "genre"}, columns)
	require.Nil(t, records[0].Score)
}

func TestSampleDeterministic(t *testing.T) {
	records := make([]model.AnimeRecord, 100)
	for i := range records {
		records[i] = model.AnimeRecord{ID: int64(i + 1), Title: "t", Genre: "g"}
	}
	a := Sample(records, 10, 42)
	b := Sample(records, 10, 42)
	require.Equal(t, a, b)
	require.Len(t, a, 10)

	other := Sample(records, 10, 7)
	require.NotEqual(t, a, other)
}

func TestSampleKeepsRowOrder(t *testing.T) {
	records := make([]model.AnimeRecord, 50)
	for i := range records {
		records[i] = model.AnimeRecord{ID: int64(i + 1), Title: "t", Genre: "g"}
	}
	sampled := Sample(records, 20, 42)
	for i := 1; i < len(sampled); i++ {
		require.Greater(t, sampled[i].ID, sampled[i-1].ID)
	}
}

func TestSampleNoopWhenSmall(t *testing.T) {
	records := []model.AnimeRecord{{ID: 1}, {ID: 2}}
	require.Len(t, Sample(records, 10, 42), 2)
}
