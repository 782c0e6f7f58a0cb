package model

type DatasetStats struct {
	TotalAnime   int            `json:"total_anime"`
	Columns      []string       `json:"columns"`
	SampleTitles []string       `json:"sample_titles"`
	Types        map[string]int `json:"types,omitempty"`
	TotalGenres  int            `json:"total_genres"`
}
