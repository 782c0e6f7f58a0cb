package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/yatagawa/anirec/internal/config"
	"github.com/yatagawa/anirec/internal/knn"
	"github.com/yatagawa/anirec/internal/model"
	"github.com/yatagawa/anirec/internal/pkg/errs"
)

const suggestionLimit = 5

// RecommendService is the query facade over the current index. Ranked
// lists are cached in an expirable LRU; keys carry the index generation so
// a reload naturally invalidates them.
type RecommendService struct {
	datasets *DatasetService
	cfg      config.RecommendConfig
	cache    *expirable.LRU[string, []model.Recommendation]

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewRecommendService(datasets *DatasetService, cfg config.RecommendConfig) *RecommendService {
	cache := expirable.NewLRU[string, []model.Recommendation](cfg.CacheSize, nil, time.Duration(cfg.CacheTTLMinutes)*time.Minute)
	return &RecommendService{
		datasets: datasets,
		cfg:      cfg,
		cache:    cache,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Recommend returns the top-N list for a title. On an unknown title it
// returns ErrNotFound along with up to 5 substring suggestions.
func (s *RecommendService) Recommend(ctx context.Context, title string, topN int) ([]model.Recommendation, []string, error) {
	if title == "" {
		return nil, nil, errs.ErrInvalid
	}
	index, generation, err := s.datasets.Current()
	if err != nil {
		return nil, nil, err
	}
	topN = clamp(topN, 1, s.cfg.MaxTopN, s.cfg.DefaultTopN)

	cacheKey := fmt.Sprintf("%d|%d|%s", generation, topN, title)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil, nil
	}

	recs, ok := index.Recommend(title, topN)
	if !ok {
		return nil, index.SearchTitles(title, suggestionLimit), errs.ErrNotFound
	}
	s.cache.Add(cacheKey, recs)
	logutil.GetLogger(ctx).Debug("recommendations served",
		zap.String("title", title),
		zap.Int("top_n", topN),
		zap.Int("count", len(recs)),
	)
	return recs, nil, nil
}

func (s *RecommendService) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if query == "" {
		return nil, errs.ErrInvalid
	}
	index, _, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	limit = clamp(limit, 1, 100, 20)
	return index.SearchTitles(query, limit), nil
}

func (s *RecommendService) Info(ctx context.Context, title string) (*model.AnimeRecord, error) {
	if title == "" {
		return nil, errs.ErrInvalid
	}
	index, _, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	rec, ok := index.Info(title)
	if !ok {
		return nil, errs.ErrNotFound
	}
	return rec, nil
}

func (s *RecommendService) Random(ctx context.Context, count int) ([]string, error) {
	index, _, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	count = clamp(count, 1, 20, 1)
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return index.Random(s.rng, count), nil
}

func (s *RecommendService) Titles(ctx context.Context) ([]string, error) {
	index, _, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	return index.Titles(), nil
}

func (s *RecommendService) Stats(ctx context.Context) (*model.DatasetStats, error) {
	index, _, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	stats := index.Stats()
	return &stats, nil
}

// Classify predicts the media type of a title from its nearest neighbors.
// Independent of the recommendation ranking.
func (s *RecommendService) Classify(ctx context.Context, title string, k int) (*knn.Prediction, error) {
	if title == "" {
		return nil, errs.ErrInvalid
	}
	index, _, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	row, ok := index.Lookup(title)
	if !ok {
		return nil, errs.ErrNotFound
	}
	k = clamp(k, 1, 50, 5)
	labels := make([]string, index.Len())
	for i := 0; i < index.Len(); i++ {
		labels[i] = index.Record(i).Type
	}
	classifier := knn.New(index.Matrix(), labels, k)
	pred, ok := classifier.PredictRow(row)
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &pred, nil
}

func clamp(v, min, max, def int) int {
	if v == 0 {
		v = def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
