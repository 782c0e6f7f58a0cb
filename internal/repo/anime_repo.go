package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/yatagawa/anirec/internal/model"
	"github.com/yatagawa/anirec/internal/pkg/dbutil"
	"github.com/yatagawa/anirec/internal/pkg/errs"
)

type AnimeRepo struct {
	db *sql.DB
}

func NewAnimeRepo(db *sql.DB) *AnimeRepo {
	return &AnimeRepo{db: db}
}

const animeBatchSize = 500

var animeColumns = []string{"id", "title", "genre", "type", "source", "score", "episodes", "aired", "studio"}

func (r *AnimeRepo) ReplaceAll(ctx context.Context, records []model.AnimeRecord) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE anime"); err != nil {
		return err
	}
	for start := 0; start < len(records); start += animeBatchSize {
		end := start + animeBatchSize
		if end > len(records) {
			end = len(records)
		}
		rows := make([]map[string]interface{}, 0, end-start)
		for _, rec := range records[start:end] {
			rows = append(rows, map[string]interface{}{
				"id":       rec.ID,
				"title":    rec.Title,
				"genre":    rec.Genre,
				"type":     rec.Type,
				"source":   rec.Source,
				"score":    rec.Score,
				"episodes": rec.Episodes,
				"aired":    rec.Aired,
				"studio":   rec.Studio,
			})
		}
		sqlStr, args, err := builder.BuildInsert("anime", rows)
		if err != nil {
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}
	return nil
}

func (r *AnimeRepo) GetByTitle(ctx context.Context, title string) (*model.AnimeRecord, error) {
	where := map[string]interface{}{"title": title, "_limit": []uint{1}}
	sqlStr, args, err := builder.BuildSelect("anime", where, animeColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	rec, err := scanAnime(row)
	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *AnimeRepo) ListAll(ctx context.Context) ([]model.AnimeRecord, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("anime", where, animeColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []model.AnimeRecord
	for rows.Next() {
		rec, err := scanAnime(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *AnimeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM anime").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnime(row rowScanner) (*model.AnimeRecord, error) {
	var rec model.AnimeRecord
	var score sql.NullFloat64
	var episodes sql.NullInt64
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Genre, &rec.Type, &rec.Source, &score, &episodes, &rec.Aired, &rec.Studio); err != nil {
		return nil, err
	}
	if score.Valid {
		rec.Score = &score.Float64
	}
	if episodes.Valid {
		rec.Episodes = &episodes.Int64
	}
	return &rec, nil
}
