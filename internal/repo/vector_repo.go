package repo

import (
	"context"
	"database/sql"

	"github.com/pgvector/pgvector-go"

	"github.com/yatagawa/anirec/internal/model"
)

type VectorRepo struct {
	db *sql.DB
}

func NewVectorRepo(db *sql.DB) *VectorRepo {
	return &VectorRepo{db: db}
}

func (r *VectorRepo) Save(ctx context.Context, item *model.AnimeVector) error {
	const query = `
		INSERT INTO anime_vectors (anime_id, embedding, vocab_size, content_hash, mtime)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (anime_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			vocab_size = EXCLUDED.vocab_size,
			content_hash = EXCLUDED.content_hash,
			mtime = EXCLUDED.mtime
	`
	_, err := r.db.ExecContext(ctx, query,
		item.AnimeID,
		pgvector.NewVector(item.Embedding),
		item.VocabSize,
		item.ContentHash,
		item.Mtime,
	)
	return err
}

func (r *VectorRepo) Get(ctx context.Context, animeID int64) (*model.AnimeVector, error) {
	const query = `
		SELECT anime_id, embedding, vocab_size, content_hash, mtime
		FROM anime_vectors
		WHERE anime_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, animeID)
	var item model.AnimeVector
	var embedding pgvector.Vector
	if err := row.Scan(&item.AnimeID, &embedding, &item.VocabSize, &item.ContentHash, &item.Mtime); err != nil {
		return nil, err
	}
	item.Embedding = embedding.Slice()
	return &item, nil
}

func (r *VectorRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "TRUNCATE anime_vectors")
	return err
}
