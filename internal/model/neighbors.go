package model

type Neighbor struct {
	AnimeID int64   `json:"anime_id"`
	Sim     float64 `json:"sim"`
}

// AnimeNeighbors is the persisted precomputed top-K neighbor list for one
// anime, written by the import path for downstream SQL consumers.
type AnimeNeighbors struct {
	AnimeID   int64      `json:"anime_id"`
	Metric    string     `json:"metric"`
	K         int        `json:"k"`
	Neighbors []Neighbor `json:"neighbors"`
	Mtime     int64      `json:"mtime"`
}

type AnimeVector struct {
	AnimeID     int64     `json:"anime_id"`
	Embedding   []float32 `json:"embedding"`
	VocabSize   int       `json:"vocab_size"`
	ContentHash string    `json:"content_hash"`
	Mtime       int64     `json:"mtime"`
}
