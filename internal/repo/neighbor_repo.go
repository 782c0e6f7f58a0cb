package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/yatagawa/anirec/internal/model"
	"github.com/yatagawa/anirec/internal/pkg/errs"
)

type NeighborRepo struct {
	db *sql.DB
}

func NewNeighborRepo(db *sql.DB) *NeighborRepo {
	return &NeighborRepo{db: db}
}

func (r *NeighborRepo) Save(ctx context.Context, item *model.AnimeNeighbors) error {
	blob, err := json.Marshal(item.Neighbors)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO anime_neighbors (anime_id, metric, k, neighbors, mtime)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (anime_id) DO UPDATE SET
			metric = EXCLUDED.metric,
			k = EXCLUDED.k,
			neighbors = EXCLUDED.neighbors,
			mtime = EXCLUDED.mtime
	`
	_, err = r.db.ExecContext(ctx, query, item.AnimeID, item.Metric, item.K, blob, item.Mtime)
	return err
}

func (r *NeighborRepo) Get(ctx context.Context, animeID int64) (*model.AnimeNeighbors, error) {
	const query = `
		SELECT anime_id, metric, k, neighbors, mtime
		FROM anime_neighbors
		WHERE anime_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, animeID)
	var item model.AnimeNeighbors
	var blob []byte
	if err := row.Scan(&item.AnimeID, &item.Metric, &item.K, &blob, &item.Mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(blob, &item.Neighbors); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *NeighborRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "TRUNCATE anime_neighbors")
	return err
}
