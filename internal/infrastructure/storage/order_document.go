package storage

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BonMercato/wunder/internal/domain/integration"
)

const (
	// orderFileTimeLayout is the local timestamp prefix of every order document
	orderFileTimeLayout = "20060102-150405"
	orderFileSuffix     = "-GetOrders_Response.xml"
)

// OrderFileName returns <YYYYMMDD-HHMMSS>-<order_id>-GetOrders_Response.xml for ts in local time
func OrderFileName(ts time.Time, orderID string) string {
	return ts.Local().Format(orderFileTimeLayout) + "-" + orderID + orderFileSuffix
}

// EncodeOrder serializes an order as an XML document with a header
func EncodeOrder(order *integration.Order) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(order); err != nil {
		return nil, fmt.Errorf("encode order %s: %w", order.OrderID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode order %s: %w", order.OrderID, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// validateOrderID rejects ids that cannot be embedded in a file name or object key
func validateOrderID(orderID string) error {
	if orderID == "" || orderID == "." || orderID == ".." || strings.ContainsAny(orderID, `/\`+"\x00") {
		return fmt.Errorf("%w: %q", integration.ErrInvalidOrderID, orderID)
	}
	return nil
}

// validateFileName rejects names that would escape the target directory or key prefix
func validateFileName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`+"\x00") {
		return fmt.Errorf("storage: invalid order file name %q", name)
	}
	return nil
}

// Option configures an order sink
type Option func(*sinkOptions)

type sinkOptions struct {
	logger *zap.Logger
	now    func() time.Time
}

func newSinkOptions(opts []Option) sinkOptions {
	o := sinkOptions{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets a custom logger for the sink
func WithLogger(logger *zap.Logger) Option {
	return func(o *sinkOptions) {
		o.logger = logger
	}
}

// WithClock replaces time.Now for file name timestamps
func WithClock(now func() time.Time) Option {
	return func(o *sinkOptions) {
		o.now = now
	}
}
