package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/yatagawa/anirec/internal/config"
	"github.com/yatagawa/anirec/internal/dataset"
	"github.com/yatagawa/anirec/internal/feature"
	"github.com/yatagawa/anirec/internal/pkg/errs"
	"github.com/yatagawa/anirec/internal/recommend"
	"github.com/yatagawa/anirec/internal/tfidf"
)

// DatasetService owns the load -> clean -> tag -> vectorize -> index
// pipeline and the currently served index. Reload swaps the index
// atomically and skips the rebuild when the dataset bytes are unchanged.
type DatasetService struct {
	source     dataset.Source
	datasetCfg config.DatasetConfig
	vecCfg     config.VectorizerConfig

	mu          sync.RWMutex
	index       *recommend.Index
	tags        []string
	contentHash string
	generation  int64
}

func NewDatasetService(source dataset.Source, datasetCfg config.DatasetConfig, vecCfg config.VectorizerConfig) *DatasetService {
	return &DatasetService{
		source:     source,
		datasetCfg: datasetCfg,
		vecCfg:     vecCfg,
	}
}

// Current returns the serving index and its generation, or ErrNotReady
// before the first successful load.
func (s *DatasetService) Current() (*recommend.Index, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, 0, errs.ErrNotReady
	}
	return s.index, s.generation, nil
}

// Tags returns the tag text per indexed row, aligned with the index rows.
func (s *DatasetService) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tags
}

func (s *DatasetService) Reload(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	start := time.Now()

	r, err := s.source.Open(ctx)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	raw, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	sum := sha256.Sum256(raw)
	contentHash := hex.EncodeToString(sum[:])

	s.mu.RLock()
	unchanged := s.index != nil && s.contentHash == contentHash
	s.mu.RUnlock()
	if unchanged {
		logger.Info("dataset unchanged, keeping current index")
		return nil
	}

	records, columns, err := dataset.Load(ctx, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("dataset has no usable rows")
	}
	total := len(records)
	records = dataset.Sample(records, s.datasetCfg.SampleSize, s.datasetCfg.SampleSeed)
	if len(records) < total {
		logger.Info("sampled dataset", zap.Int("total", total), zap.Int("sampled", len(records)))
	}

	tags := make([]string, len(records))
	for i, rec := range records {
		tags[i] = feature.BuildTags(rec)
	}
	matrix := tfidf.Fit(tags, tfidf.Options{
		MaxFeatures: s.vecCfg.MaxFeatures,
		MinDocFreq:  s.vecCfg.MinDocFreq,
		MaxDocFrac:  s.vecCfg.MaxDocFrac,
		NgramMax:    s.vecCfg.NgramMax,
		StopWords:   !s.vecCfg.NoStopWords,
	})
	index := recommend.New(records, matrix, columns)

	s.mu.Lock()
	s.index = index
	s.tags = tags
	s.contentHash = contentHash
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	logger.Info("index built",
		zap.Int("anime", len(records)),
		zap.Int("features", matrix.VocabSize()),
		zap.Int64("generation", generation),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
