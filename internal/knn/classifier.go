package knn

import (
	"sort"

	"github.com/yatagawa/anirec/internal/tfidf"
)

// Classifier is a K-nearest-neighbor majority-vote classifier over TF-IDF
// vectors. Exploratory only; it shares the matrix with the recommender but
// plays no part in similarity ranking.
type Classifier struct {
	matrix *tfidf.Matrix
	labels []string
	k      int
}

func New(matrix *tfidf.Matrix, labels []string, k int) *Classifier {
	if k <= 0 {
		k = 5
	}
	return &Classifier{matrix: matrix, labels: labels, k: k}
}

type Prediction struct {
	Label  string  `json:"label"`
	Votes  int     `json:"votes"`
	K      int     `json:"k"`
	TopSim float64 `json:"top_sim"`
}

// PredictRow votes among the k most similar rows with a non-empty label.
// Ties go to the class of the nearer neighbor.
func (c *Classifier) PredictRow(row int) (Prediction, bool) {
	type scored struct {
		idx int
		sim float64
	}
	query := c.matrix.Vectors[row]
	ranked := make([]scored, 0, len(c.labels))
	for i := range c.labels {
		if i == row || c.labels[i] == "" {
			continue
		}
		ranked = append(ranked, scored{idx: i, sim: tfidf.Cosine(query, c.matrix.Vectors[i])})
	}
	if len(ranked) == 0 {
		return Prediction{}, false
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sim > ranked[j].sim
	})
	k := c.k
	if k > len(ranked) {
		k = len(ranked)
	}

	votes := make(map[string]int, k)
	first := make(map[string]int, k)
	for rank, entry := range ranked[:k] {
		label := c.labels[entry.idx]
		votes[label]++
		if _, ok := first[label]; !ok {
			first[label] = rank
		}
	}
	best := ""
	for label, n := range votes {
		if best == "" || n > votes[best] || (n == votes[best] && first[label] < first[best]) {
			best = label
		}
	}
	return Prediction{Label: best, Votes: votes[best], K: k, TopSim: ranked[0].sim}, true
}
