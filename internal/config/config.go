package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port         int              `json:"port"`
	JWTSecret    string           `json:"jwt_secret"`
	JWTTTLHours  int              `json:"jwt_ttl_hours"`
	AdminKeyHash string           `json:"admin_key_hash"`
	LogConfig    logger.LogConfig `json:"log_config"`
	Dataset      DatasetConfig    `json:"dataset"`
	Vectorizer   VectorizerConfig `json:"vectorizer"`
	Recommend    RecommendConfig  `json:"recommend"`
	ReindexCron  string           `json:"reindex_cron"`
	DB           DatabaseConfig   `json:"db"`
}

type DatasetConfig struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	SampleSize int                    `json:"sample_size"`
	SampleSeed int64                  `json:"sample_seed"`
}

type VectorizerConfig struct {
	MaxFeatures int     `json:"max_features"`
	MinDocFreq  int     `json:"min_doc_freq"`
	MaxDocFrac  float64 `json:"max_doc_frac"`
	NgramMax    int     `json:"ngram_max"`
	NoStopWords bool    `json:"no_stop_words"`
}

type RecommendConfig struct {
	DefaultTopN     int `json:"default_top_n"`
	MaxTopN         int `json:"max_top_n"`
	CacheSize       int `json:"cache_size"`
	CacheTTLMinutes int `json:"cache_ttl_minutes"`
	NeighborK       int `json:"neighbor_k"`
	RateLimitMillis int `json:"rate_limit_ms"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

func (c DatabaseConfig) Enabled() bool {
	return c.DSN != "" || c.Host != ""
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 5000
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Dataset.Type == "" {
		cfg.Dataset.Type = "local"
	}
	if cfg.Dataset.SampleSize == 0 {
		cfg.Dataset.SampleSize = 10000
	}
	if cfg.Dataset.SampleSeed == 0 {
		cfg.Dataset.SampleSeed = 42
	}
	if cfg.Vectorizer.MaxFeatures == 0 {
		cfg.Vectorizer.MaxFeatures = 5000
	}
	if cfg.Vectorizer.MinDocFreq == 0 {
		cfg.Vectorizer.MinDocFreq = 2
	}
	if cfg.Vectorizer.MaxDocFrac == 0 {
		cfg.Vectorizer.MaxDocFrac = 0.8
	}
	if cfg.Vectorizer.NgramMax == 0 {
		cfg.Vectorizer.NgramMax = 2
	}
	if cfg.Recommend.DefaultTopN == 0 {
		cfg.Recommend.DefaultTopN = 5
	}
	if cfg.Recommend.MaxTopN == 0 {
		cfg.Recommend.MaxTopN = 50
	}
	if cfg.Recommend.CacheSize == 0 {
		cfg.Recommend.CacheSize = 10000
	}
	if cfg.Recommend.CacheTTLMinutes == 0 {
		cfg.Recommend.CacheTTLMinutes = 120
	}
	if cfg.Recommend.NeighborK == 0 {
		cfg.Recommend.NeighborK = 20
	}
	return &cfg, nil
}
