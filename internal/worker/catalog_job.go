package worker

import (
	"context"
	"fmt"

	"github.com/avaldez-dev/storefront-pricing/pkg/metrics"
	"github.com/google/uuid"
)

const catalogJobName = "catalog_generate"

// CatalogGenerator is implemented by the catalog snapshot generator.
type CatalogGenerator interface {
	Generate(ctx context.Context, storeID *uuid.UUID) (int, error)
}

// CatalogJob rebuilds every store's catalog price snapshot.
type CatalogJob struct {
	generator CatalogGenerator
	metrics   *metrics.JobMetrics
}

// NewCatalogJob builds the catalog generation job.
func NewCatalogJob(generator CatalogGenerator, m *metrics.JobMetrics) (*CatalogJob, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator required")
	}
	return &CatalogJob{generator: generator, metrics: m}, nil
}

func (j *CatalogJob) Name() string { return catalogJobName }

func (j *CatalogJob) Run(ctx context.Context) error {
	written, err := j.generator.Generate(ctx, nil)
	if err != nil {
		return err
	}
	j.metrics.SetEntriesWritten(catalogJobName, written)
	return nil
}
