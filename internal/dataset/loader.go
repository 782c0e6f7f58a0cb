package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/yatagawa/anirec/internal/model"
)

var requiredColumns = []string{"title", "genre"}

var optionalColumns = []string{"type", "source", "score", "episodes", "aired", "studio"}

// Load reads and cleans the anime CSV. Rows without a title or genre are
// dropped; unparseable numeric fields become nulls rather than errors.
// A missing file or missing required column surfaces directly.
func Load(ctx context.Context, r io.Reader) ([]model.AnimeRecord, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	columns := make([]string, 0, len(requiredColumns)+len(optionalColumns))
	columns = append(columns, requiredColumns...)
	for _, col := range optionalColumns {
		if _, ok := colIdx[col]; ok {
			columns = append(columns, col)
		}
	}

	var records []model.AnimeRecord
	var dropped int
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		rec := parseRow(row, colIdx)
		if rec.Title == "" || rec.Genre == "" {
			dropped++
			continue
		}
		rec.ID = int64(len(records) + 1)
		records = append(records, rec)
	}
	if dropped > 0 {
		logutil.GetLogger(ctx).Info("dropped incomplete rows", zap.Int("count", dropped))
	}
	return records, columns, nil
}

func parseRow(row []string, colIdx map[string]int) model.AnimeRecord {
	field := func(name string) string {
		idx, ok := colIdx[name]
		if !ok || idx >= len(row) {
			return ""
		}
		value := strings.TrimSpace(row[idx])
		if strings.EqualFold(value, "unknown") || strings.EqualFold(value, "nan") {
			return ""
		}
		return value
	}
	rec := model.AnimeRecord{
		Title:  field("title"),
		Genre:  field("genre"),
		Type:   field("type"),
		Source: field("source"),
		Aired:  field("aired"),
		Studio: field("studio"),
	}
	if raw := field("score"); raw != "" {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			rec.Score = &score
		}
	}
	if raw := field("episodes"); raw != "" {
		if eps, err := strconv.ParseInt(raw, 10, 64); err == nil {
			rec.Episodes = &eps
		}
	}
	return rec
}

// Sample keeps n records chosen with a seeded generator, preserving the
// original row order so downstream tie-breaking stays stable.
func Sample(records []model.AnimeRecord, n int, seed int64) []model.AnimeRecord {
	if n <= 0 || len(records) <= n {
		return records
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(records))
	picked := perm[:n]
	sort.Ints(picked)
	sampled := make([]model.AnimeRecord, 0, n)
	for _, idx := range picked {
		sampled = append(sampled, records[idx])
	}
	return sampled
}
