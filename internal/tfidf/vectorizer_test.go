package tfidf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFitVectorDimensionality(t *testing.T) {
	corpus := []string{
		"action adventure shounen",
		"action comedy",
		"drama romance comedy",
	}
	m := Fit(corpus, Options{})
	require.Len(t, m.Vectors, 3)
	for i := range m.Vectors {
		require.Len(t, m.Dense(i), m.VocabSize())
	}
}

func TestCosineSelfSimilarity(t *testing.T) {
	corpus := []string{
		"action adventure fantasy",
		"slice of life drama",
	}
	m := Fit(corpus, Options{})
	for _, v := range m.Vectors {
		require.InDelta(t, 1.0, Cosine(v, v), 1e-9)
	}
}

func TestCosineSymmetry(t *testing.T) {
	corpus := []string{
		"action adventure",
		"action drama",
		"romance comedy",
	}
	m := Fit(corpus, Options{})
	for i := range m.Vectors {
		for j := range m.Vectors {
			require.InDelta(t, Cosine(m.Vectors[i], m.Vectors[j]), Cosine(m.Vectors[j], m.Vectors[i]), 1e-12)
		}
	}
}

func TestIdenticalDocumentsFullySimilar(t *testing.T) {
	corpus := []string{
		"action adventure",
		"action adventure",
		"action adventure",
	}
	m := Fit(corpus, Options{})
	for i := range m.Vectors {
		for j := range m.Vectors {
			require.InDelta(t, 1.0, Cosine(m.Vectors[i], m.Vectors[j]), 1e-9)
		}
	}
}

func TestCosineZeroVector(t *testing.T) {
	corpus := []string{"action adventure", ""}
	m := Fit(corpus, Options{})
	require.Equal(t, 0.0, Cosine(m.Vectors[0], m.Vectors[1]))
}

func TestFitDeterministic(t *testing.T) {
	corpus := []string{
		"action adventure shounen tv",
		"comedy romance school movie",
		"action mecha sci fi tv",
		"drama historical movie",
	}
	opts := Options{NgramMax: 2, StopWords: true}
	a := Fit(corpus, opts)
	b := Fit(corpus, opts)
	require.Equal(t, a.Terms(), b.Terms())
	for i := range a.Vectors {
		require.Equal(t, a.Vectors[i].Terms, b.Vectors[i].Terms)
		require.Equal(t, a.Vectors[i].Weights, b.Vectors[i].Weights)
	}
}

func TestMinDocFreqPrunesRareTerms(t *testing.T) {
	corpus := []string{
		"action rareterm",
		"action comedy",
		"action drama",
	}
	m := Fit(corpus, Options{MinDocFreq: 2})
	require.NotContains(t, m.Terms(), "rareterm")
	require.Contains(t, m.Terms(), "action")
}

func TestMaxDocFracPrunesUbiquitousTerms(t *testing.T) {
	corpus := []string{
		"action unique1",
		"action unique2",
		"action unique3",
		"action unique4",
	}
	m := Fit(corpus, Options{MaxDocFrac: 0.8})
	require.NotContains(t, m.Terms(), "action")
	require.Contains(t, m.Terms(), "unique1")
}

func TestMaxFeaturesCapsVocabulary(t *testing.T) {
	corpus := []string{
		"a1 common",
		"a2 common",
		"a3 b3",
	}
	m := Fit(corpus, Options{MaxFeatures: 2})
	require.Equal(t, 2, m.VocabSize())
	// Highest document frequency wins the cap.
	require.Contains(t, m.Terms(), "common")
}

func TestTokenizeStopWordsAndNgrams(t *testing.T) {
	tokens := Tokenize("The Action of Adventure", Options{StopWords: true, NgramMax: 2})
	require.Equal(t, []string{"action", "adventure", "action adventure"}, tokens)
}

func TestTokenizeKeepsUnderscoreTags(t *testing.T) {
	tokens := Tokenize("highly_rated movie_format", Options{})
	require.Equal(t, []string{"highly_rated", "movie_format"}, tokens)
}
