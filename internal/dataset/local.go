package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
)

type localConfig struct {
	Path string `json:"path"`
}

type localSource struct {
	path string
}

func init() {
	Register("local", createLocalSource)
}

func createLocalSource(args interface{}) (Source, error) {
	config := &localConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Path == "" {
		return nil, fmt.Errorf("local source path is required")
	}
	return &localSource{path: config.Path}, nil
}

func (s *localSource) Open(ctx context.Context) (io.ReadCloser, error) {
	_ = ctx
	return os.Open(s.path)
}
