package model

// AnimeRecord is one cleaned row of the dataset. Optional fields stay nil
// when the source column is absent or unparseable; they are never guessed.
type AnimeRecord struct {
	ID       int64    `json:"id" db:"id"`
	Title    string   `json:"title" db:"title"`
	Genre    string   `json:"genre" db:"genre"`
	Type     string   `json:"type,omitempty" db:"type"`
	Source   string   `json:"source,omitempty" db:"source"`
	Score    *float64 `json:"score,omitempty" db:"score"`
	Episodes *int64   `json:"episodes,omitempty" db:"episodes"`
	Aired    string   `json:"aired,omitempty" db:"aired"`
	Studio   string   `json:"studio,omitempty" db:"studio"`
}

type Recommendation struct {
	Title      string   `json:"title"`
	Genre      string   `json:"genre"`
	Type       string   `json:"type,omitempty"`
	Source     string   `json:"source,omitempty"`
	Score      *float64 `json:"score,omitempty"`
	Episodes   *int64   `json:"episodes,omitempty"`
	Aired      string   `json:"aired,omitempty"`
	Studio     string   `json:"studio,omitempty"`
	Similarity float64  `json:"similarity"`
}
