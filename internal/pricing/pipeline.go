// Package pricing orchestrates the adjustment pipeline: a fixed sequence of
// adjusters that each read the order's line items and emit adjustments. The
// pipeline replaces the order's adjustment set wholesale, so recalculation is
// idempotent no matter how often it runs.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/avaldez-dev/storefront-pricing/internal/order"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/avaldez-dev/storefront-pricing/pkg/metrics"
	"go.uber.org/multierr"
)

// Adjuster is one stage of the pipeline.
type Adjuster interface {
	Name() string
	Adjust(ctx context.Context, o *order.Order) ([]order.Adjustment, error)
}

// Pipeline runs adjusters in registration order.
type Pipeline struct {
	adjusters []Adjuster
	logg      *logger.Logger
	metrics   *metrics.PipelineMetrics
}

func NewPipeline(logg *logger.Logger, m *metrics.PipelineMetrics, adjusters ...Adjuster) (*Pipeline, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if len(adjusters) == 0 {
		return nil, fmt.Errorf("at least one adjuster required")
	}
	return &Pipeline{adjusters: adjusters, logg: logg, metrics: m}, nil
}

// Recalculate reprices the order and replaces its adjustment set.
//
// Adjuster errors split two ways. Configuration errors (CodeDependency, a
// broken zone formula for instance) must not stop an order from being priced:
// they are logged, counted, and aggregated into the returned error while the
// adjustments that did compute are kept. Any other error aborts the run and
// leaves the order's adjustments untouched.
func (p *Pipeline) Recalculate(ctx context.Context, o *order.Order) error {
	var (
		all       []order.Adjustment
		configErr error
	)

	for _, adjuster := range p.adjusters {
		start := time.Now()
		adjs, err := adjuster.Adjust(ctx, o)
		p.metrics.ObserveDuration(adjuster.Name(), time.Since(start))

		if err != nil {
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeDependency {
				return err
			}
			p.metrics.IncConfigError(adjuster.Name())
			logCtx := p.logg.WithField(ctx, "adjuster", adjuster.Name())
			p.logg.Error(logCtx, "adjuster reported configuration errors", err)
			configErr = multierr.Append(configErr, err)
		}
		all = append(all, adjs...)
	}

	o.ReplaceAdjustments(all)
	return configErr
}

// IsConfigError reports whether err only carries non-fatal configuration
// problems, meaning the order was still fully priced.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	for _, e := range multierr.Errors(err) {
		typed := pkgerrors.As(e)
		if typed == nil || typed.Code() != pkgerrors.CodeDependency {
			return false
		}
	}
	return true
}
