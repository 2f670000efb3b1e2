package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrOperation = attribute.Key("operation")
	AttrStatus    = attribute.Key("status")
)

// SyncMetrics counts what one CLI run did against the marketplace.
// A nil *SyncMetrics records nothing.
type SyncMetrics struct {
	ordersFetched     *Counter
	ordersAccepted    *Counter
	ordersPersisted   *Counter
	trackingPushed    *Counter
	documentsUploaded *Counter
	operationDuration *Histogram
}

// NewSyncMetrics registers the wunder_* instruments on meter.
func NewSyncMetrics(meter metric.Meter) (*SyncMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &SyncMetrics{}
	var err error

	if m.ordersFetched, err = NewCounter(meter, "wunder_orders_fetched_total", "Orders read from the listing", "{orders}"); err != nil {
		return nil, err
	}
	if m.ordersAccepted, err = NewCounter(meter, "wunder_orders_accepted_total", "Orders accepted automatically", "{orders}"); err != nil {
		return nil, err
	}
	if m.ordersPersisted, err = NewCounter(meter, "wunder_orders_persisted_total", "Order documents written", "{orders}"); err != nil {
		return nil, err
	}
	if m.trackingPushed, err = NewCounter(meter, "wunder_tracking_pushed_total", "Tracking updates submitted", "{updates}"); err != nil {
		return nil, err
	}
	if m.documentsUploaded, err = NewCounter(meter, "wunder_documents_uploaded_total", "Document uploads by outcome", "{documents}"); err != nil {
		return nil, err
	}
	if m.operationDuration, err = NewHistogram(meter, "wunder_operation_duration_seconds", "Duration of a CLI operation", "s",
		0.1, 0.5, 1, 5, 15, 60, 300); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordOrderFetched counts one order read from a page
func (m *SyncMetrics) RecordOrderFetched(ctx context.Context) {
	if m == nil {
		return
	}
	m.ordersFetched.Inc(ctx)
}

// RecordOrderAccepted counts one accept call that succeeded
func (m *SyncMetrics) RecordOrderAccepted(ctx context.Context) {
	if m == nil {
		return
	}
	m.ordersAccepted.Inc(ctx)
}

// RecordOrderPersisted counts one order document written
func (m *SyncMetrics) RecordOrderPersisted(ctx context.Context) {
	if m == nil {
		return
	}
	m.ordersPersisted.Inc(ctx)
}

// RecordTrackingPushed counts one tracking submission
func (m *SyncMetrics) RecordTrackingPushed(ctx context.Context) {
	if m == nil {
		return
	}
	m.trackingPushed.Inc(ctx)
}

// RecordDocumentUploaded counts one upload, labelled with its outcome status
func (m *SyncMetrics) RecordDocumentUploaded(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.documentsUploaded.Inc(ctx, AttrStatus.String(status))
}

// RecordOperation records how long an operation took and whether it failed
func (m *SyncMetrics) RecordOperation(ctx context.Context, operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operationDuration.Record(ctx, time.Since(started).Seconds(),
		AttrOperation.String(operation),
		AttrStatus.String(status),
	)
}
