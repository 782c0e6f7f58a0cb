package job

import (
	"context"

	"github.com/yatagawa/anirec/internal/service"
)

// ReindexJob rebuilds the similarity index from the dataset source. The
// rebuild is a no-op when the dataset bytes have not changed.
type ReindexJob struct {
	datasets *service.DatasetService
}

func NewReindexJob(datasets *service.DatasetService) *ReindexJob {
	return &ReindexJob{datasets: datasets}
}

func (j *ReindexJob) Name() string {
	return "reindex"
}

func (j *ReindexJob) Run(ctx context.Context) error {
	if j.datasets == nil {
		return nil
	}
	return j.datasets.Reload(ctx)
}
