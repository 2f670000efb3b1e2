package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	appintegration "github.com/BonMercato/wunder/internal/application/integration"
	"github.com/BonMercato/wunder/internal/domain/integration"
	"github.com/BonMercato/wunder/internal/infrastructure/config"
	"github.com/BonMercato/wunder/internal/infrastructure/logger"
	"github.com/BonMercato/wunder/internal/infrastructure/marketplace"
	"github.com/BonMercato/wunder/internal/infrastructure/storage"
	"github.com/BonMercato/wunder/internal/infrastructure/telemetry"
)

// app is everything one command invocation needs, built from the loaded configuration
type app struct {
	config  *config.Config
	logger  *zap.Logger
	api     *marketplace.Client
	metrics *telemetry.SyncMetrics

	tracerProvider *telemetry.TracerProvider
	meterProvider  *telemetry.MeterProvider
}

// newApp loads configuration and wires logging, telemetry and the marketplace client.
// The returned context carries the run-scoped logger.
func newApp(ctx context.Context, configPath, version string) (context.Context, *app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	logCfg.File = cfg.Log.File
	baseLogger, err := logger.New(logCfg)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	ctx, log := logger.WithRunID(ctx, baseLogger)

	a := &app{config: cfg, logger: log}

	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
	}
	if a.tracerProvider, err = telemetry.NewTracerProvider(ctx, telemetryCfg, log); err != nil {
		a.close(ctx)
		return ctx, nil, err
	}
	if a.meterProvider, err = telemetry.NewMeterProvider(ctx, telemetryCfg, log); err != nil {
		a.close(ctx)
		return ctx, nil, err
	}
	if a.meterProvider.IsEnabled() {
		if a.metrics, err = telemetry.NewSyncMetrics(a.meterProvider.Meter(telemetry.TracerName)); err != nil {
			a.close(ctx)
			return ctx, nil, err
		}
	}

	a.api, err = marketplace.NewClient(&marketplace.Config{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		UserAgent: marketplace.UserAgent(version),
		Timeout:   cfg.HTTP.Timeout,
	}, marketplace.WithLogger(log))
	if err != nil {
		a.close(ctx)
		return ctx, nil, err
	}

	log.Debug("Configuration loaded",
		zap.String("base_url", cfg.BaseURL),
		zap.Strings("order_state_codes", cfg.PullOrderSettings.OrderStateCodes),
		zap.String("order_path", cfg.PullOrderSettings.OrderPath),
		zap.Bool("archive_enabled", cfg.Archive.Enabled),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
	)
	return ctx, a, nil
}

func (a *app) serviceOptions() []appintegration.Option {
	return []appintegration.Option{
		appintegration.WithLogger(a.logger),
		appintegration.WithMetrics(a.metrics),
	}
}

// orderSink returns the local order directory, mirrored to S3 when archiving is enabled
func (a *app) orderSink(ctx context.Context) (integration.OrderSink, error) {
	fileSink, err := storage.NewFileOrderSink(a.config.PullOrderSettings.OrderPath, storage.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if !a.config.Archive.Enabled {
		return fileSink, nil
	}

	archive, err := storage.NewS3OrderSink(ctx, &a.config.Archive, storage.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	return storage.NewMultiOrderSink(fileSink, archive)
}

// close flushes telemetry and the logger. Safe on a partially built app.
func (a *app) close(ctx context.Context) {
	if a.tracerProvider != nil {
		_ = a.tracerProvider.Shutdown(context.WithoutCancel(ctx))
	}
	if a.meterProvider != nil {
		_ = a.meterProvider.Shutdown(context.WithoutCancel(ctx))
	}
	_ = logger.Sync(a.logger)
}

// report logs a failed command. Upload rejections are expanded into one line per document error.
func (a *app) report(operation string, err error) error {
	var uploadErr *integration.DocumentUploadError
	if errors.As(err, &uploadErr) && uploadErr.Result != nil {
		for _, docErr := range uploadErr.Result.AllErrors() {
			a.logger.Error("Document error",
				zap.String("order_id", uploadErr.OrderID),
				zap.String("code", docErr.Code),
				zap.String("field", docErr.Field),
				zap.String("message", docErr.Message),
			)
		}
	}

	fields := []zap.Field{zap.String("operation", operation), zap.Error(err)}
	var statusErr *integration.HTTPStatusError
	if errors.As(err, &statusErr) {
		fields = append(fields, zap.Int("status", statusErr.StatusCode), zap.String("response", statusErr.Body))
	}
	a.logger.Error("Command failed", fields...)
	return reportedError{err: err}
}

// reportedError marks an error that has already been logged
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }
