package integration

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/BonMercato/wunder/internal/domain/integration"
	"github.com/BonMercato/wunder/internal/infrastructure/logger"
	"github.com/BonMercato/wunder/internal/infrastructure/telemetry"
)

// OperationPushTracking names the tracking workflow in spans and metrics
const OperationPushTracking = "push_tracking"

// TrackingService submits carrier tracking for one order from a local XML file
type TrackingService struct {
	api integration.MarketplaceAPI
	serviceOptions
}

// NewTrackingService creates a new TrackingService
func NewTrackingService(api integration.MarketplaceAPI, opts ...Option) *TrackingService {
	return &TrackingService{
		api:            api,
		serviceOptions: newServiceOptions(opts),
	}
}

// PushTracking reads the tracking file at path, posts its carrier fields to the order's
// tracking endpoint and then calls the ship endpoint to confirm the shipment.
// The order id in the file selects the endpoint and is never sent in the body.
func (s *TrackingService) PushTracking(ctx context.Context, path string) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tracking", OperationPushTracking,
		telemetry.SpanAttrRunID, logger.GetRunID(ctx),
		telemetry.SpanAttrFile, path,
	)
	defer span.End()
	started := time.Now()
	defer func() {
		s.metrics.RecordOperation(ctx, OperationPushTracking, started, err)
		if err != nil {
			telemetry.RecordError(span, err)
			return
		}
		telemetry.SetOK(span)
	}()

	file, err := readTrackingFile(path)
	if err != nil {
		return err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, file.OrderID)

	resp, err := s.api.Post(ctx, integration.TrackingPath(file.OrderID), file.Submission())
	if err != nil {
		return fmt.Errorf("push tracking for order %s: %w", file.OrderID, err)
	}
	s.log(ctx).Debug("Tracking response",
		zap.String("order_id", file.OrderID),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", resp.Body),
	)
	s.metrics.RecordTrackingPushed(ctx)

	if _, err := s.api.Get(ctx, integration.ShipPath(file.OrderID), nil); err != nil {
		return fmt.Errorf("confirm shipment for order %s: %w", file.OrderID, err)
	}

	s.log(ctx).Info("Tracking submitted", zap.String("order_id", file.OrderID))
	return nil
}

func readTrackingFile(path string) (*integration.TrackingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", integration.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read tracking file %s: %w", path, err)
	}

	var file integration.TrackingFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: tracking file %s: %w", integration.ErrDecode, path, err)
	}
	file.TrimSpace()
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &file, nil
}
