package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/yatagawa/anirec/internal/model"
	"github.com/yatagawa/anirec/internal/repo"
)

// ImportService persists the cleaned corpus, TF-IDF vectors and
// precomputed neighbor lists for downstream SQL consumers. The serving
// path never reads these tables.
type ImportService struct {
	datasets  *DatasetService
	anime     *repo.AnimeRepo
	vectors   *repo.VectorRepo
	neighbors *repo.NeighborRepo
	neighborK int
}

func NewImportService(datasets *DatasetService, anime *repo.AnimeRepo, vectors *repo.VectorRepo, neighbors *repo.NeighborRepo, neighborK int) *ImportService {
	if neighborK <= 0 {
		neighborK = 20
	}
	return &ImportService{
		datasets:  datasets,
		anime:     anime,
		vectors:   vectors,
		neighbors: neighbors,
		neighborK: neighborK,
	}
}

func (s *ImportService) Run(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	start := time.Now()

	index, generation, err := s.datasets.Current()
	if err != nil {
		if err = s.datasets.Reload(ctx); err != nil {
			return err
		}
		index, generation, err = s.datasets.Current()
		if err != nil {
			return err
		}
	}
	tags := s.datasets.Tags()

	records := make([]model.AnimeRecord, 0, index.Len())
	for i := 0; i < index.Len(); i++ {
		records = append(records, index.Record(i))
	}
	if err := s.anime.ReplaceAll(ctx, records); err != nil {
		return err
	}
	logger.Info("anime records imported", zap.Int("count", len(records)))

	now := time.Now().UnixMilli()
	matrix := index.Matrix()
	for i := 0; i < index.Len(); i++ {
		sum := sha256.Sum256([]byte(tags[i]))
		if err := s.vectors.Save(ctx, &model.AnimeVector{
			AnimeID:     records[i].ID,
			Embedding:   matrix.Dense(i),
			VocabSize:   matrix.VocabSize(),
			ContentHash: hex.EncodeToString(sum[:]),
			Mtime:       now,
		}); err != nil {
			return err
		}
		if err := s.neighbors.Save(ctx, &model.AnimeNeighbors{
			AnimeID:   records[i].ID,
			Metric:    "cosine",
			K:         s.neighborK,
			Neighbors: index.Neighbors(i, s.neighborK),
			Mtime:     now,
		}); err != nil {
			return err
		}
	}
	logger.Info("import finished",
		zap.Int("anime", len(records)),
		zap.Int64("generation", generation),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
