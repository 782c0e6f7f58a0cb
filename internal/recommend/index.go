package recommend

import (
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/yatagawa/anirec/internal/model"
	"github.com/yatagawa/anirec/internal/tfidf"
)

// Index is the in-memory similarity index over one fitted corpus. It is
// immutable after construction; reloads build a fresh Index and swap it in.
type Index struct {
	records    []model.AnimeRecord
	matrix     *tfidf.Matrix
	columns    []string
	titleToIdx map[string]int
	lowerToIdx map[string]int
}

func New(records []model.AnimeRecord, matrix *tfidf.Matrix, columns []string) *Index {
	idx := &Index{
		records:    records,
		matrix:     matrix,
		columns:    columns,
		titleToIdx: make(map[string]int, len(records)),
		lowerToIdx: make(map[string]int, len(records)),
	}
	// First occurrence wins on duplicate titles.
	for i, rec := range records {
		if _, ok := idx.titleToIdx[rec.Title]; !ok {
			idx.titleToIdx[rec.Title] = i
		}
		lower := strings.ToLower(rec.Title)
		if _, ok := idx.lowerToIdx[lower]; !ok {
			idx.lowerToIdx[lower] = i
		}
	}
	return idx
}

func (idx *Index) Len() int {
	return len(idx.records)
}

func (idx *Index) Record(i int) model.AnimeRecord {
	return idx.records[i]
}

func (idx *Index) Matrix() *tfidf.Matrix {
	return idx.matrix
}

// Lookup resolves a title to its row, exact match first, then
// case-insensitive.
func (idx *Index) Lookup(title string) (int, bool) {
	if i, ok := idx.titleToIdx[title]; ok {
		return i, true
	}
	if i, ok := idx.lowerToIdx[strings.ToLower(title)]; ok {
		return i, true
	}
	return 0, false
}

// Recommend ranks every other row by cosine similarity to the query title.
// Ties keep original row order, the query row is excluded and duplicate
// titles are deduped. Scores are rounded to 4 decimals.
func (idx *Index) Recommend(title string, topN int) ([]model.Recommendation, bool) {
	queryIdx, ok := idx.Lookup(title)
	if !ok {
		return nil, false
	}
	ranked := idx.rank(queryIdx)

	seen := make(map[string]bool, topN)
	recs := make([]model.Recommendation, 0, topN)
	for _, entry := range ranked {
		rec := idx.records[entry.row]
		if seen[rec.Title] {
			continue
		}
		seen[rec.Title] = true
		recs = append(recs, model.Recommendation{
			Title:      rec.Title,
			Genre:      rec.Genre,
			Type:       rec.Type,
			Source:     rec.Source,
			Score:      rec.Score,
			Episodes:   rec.Episodes,
			Aired:      rec.Aired,
			Studio:     rec.Studio,
			Similarity: round4(entry.sim),
		})
		if len(recs) == topN {
			break
		}
	}
	return recs, true
}

// Neighbors returns the raw top-K rows for one row, used by the import
// path to persist neighbor lists.
func (idx *Index) Neighbors(row, k int) []model.Neighbor {
	ranked := idx.rank(row)
	if k > len(ranked) {
		k = len(ranked)
	}
	neighbors := make([]model.Neighbor, 0, k)
	for _, entry := range ranked[:k] {
		neighbors = append(neighbors, model.Neighbor{
			AnimeID: idx.records[entry.row].ID,
			Sim:     entry.sim,
		})
	}
	return neighbors
}

type scored struct {
	row int
	sim float64
}

func (idx *Index) rank(queryIdx int) []scored {
	query := idx.matrix.Vectors[queryIdx]
	ranked := make([]scored, 0, len(idx.records)-1)
	for i := range idx.records {
		if i == queryIdx {
			continue
		}
		ranked = append(ranked, scored{row: i, sim: tfidf.Cosine(query, idx.matrix.Vectors[i])})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sim > ranked[j].sim
	})
	return ranked
}

// SearchTitles finds titles containing the query, case-insensitive, in row
// order.
func (idx *Index) SearchTitles(query string, limit int) []string {
	lower := strings.ToLower(query)
	matches := make([]string, 0, limit)
	for _, rec := range idx.records {
		if strings.Contains(strings.ToLower(rec.Title), lower) {
			matches = append(matches, rec.Title)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

func (idx *Index) Info(title string) (*model.AnimeRecord, bool) {
	i, ok := idx.Lookup(title)
	if !ok {
		return nil, false
	}
	rec := idx.records[i]
	return &rec, true
}

// Titles returns all distinct titles, sorted.
func (idx *Index) Titles() []string {
	titles := make([]string, 0, len(idx.titleToIdx))
	for title := range idx.titleToIdx {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

func (idx *Index) Random(rng *rand.Rand, count int) []string {
	if count > len(idx.records) {
		count = len(idx.records)
	}
	titles := make([]string, 0, count)
	for _, i := range rng.Perm(len(idx.records))[:count] {
		titles = append(titles, idx.records[i].Title)
	}
	return titles
}

func (idx *Index) Stats() model.DatasetStats {
	stats := model.DatasetStats{
		TotalAnime: len(idx.records),
		Columns:    idx.columns,
		Types:      make(map[string]int),
	}
	genres := make(map[string]bool)
	for i, rec := range idx.records {
		if i < 5 {
			stats.SampleTitles = append(stats.SampleTitles, rec.Title)
		}
		if rec.Type != "" {
			stats.Types[rec.Type]++
		}
		genres[rec.Genre] = true
	}
	stats.TotalGenres = len(genres)
	return stats
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
