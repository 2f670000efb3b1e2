// Package integration holds the marketplace workflows: order pull, tracking push and invoice push.
package integration

import (
	"context"

	"go.uber.org/zap"

	"github.com/BonMercato/wunder/internal/infrastructure/logger"
	"github.com/BonMercato/wunder/internal/infrastructure/telemetry"
)

// Option configures a workflow service
type Option func(*serviceOptions)

type serviceOptions struct {
	logger  *zap.Logger
	metrics *telemetry.SyncMetrics
}

func newServiceOptions(opts []Option) serviceOptions {
	o := serviceOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// log returns the service logger tagged with the trace and span ids of ctx
func (o *serviceOptions) log(ctx context.Context) *zap.Logger {
	return logger.WithTraceContext(ctx, o.logger)
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the sync metrics recorder. A nil recorder disables metrics.
func WithMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(o *serviceOptions) {
		o.metrics = metrics
	}
}
