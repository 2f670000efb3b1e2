package storage

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/BonMercato/wunder/internal/domain/integration"
)

var (
	_ integration.OrderSink = (*MultiOrderSink)(nil)
	_ namedOrderSink        = (*S3OrderSink)(nil)
)

// namedOrderSink is a mirror that can store an order under a name picked by the primary sink
type namedOrderSink interface {
	SaveAs(ctx context.Context, order *integration.Order, name string) (string, error)
}

// MultiOrderSink saves to a primary sink and then to each mirror, in order.
// Mirrors that support SaveAs reuse the base name of the primary location, so a
// collision suffix chosen by the primary carries over. The first failure aborts;
// Save returns the primary location.
type MultiOrderSink struct {
	primary integration.OrderSink
	mirrors []integration.OrderSink
}

// NewMultiOrderSink combines a primary sink with optional mirrors
func NewMultiOrderSink(primary integration.OrderSink, mirrors ...integration.OrderSink) (*MultiOrderSink, error) {
	if primary == nil {
		return nil, errors.New("storage: primary order sink is required")
	}
	return &MultiOrderSink{primary: primary, mirrors: mirrors}, nil
}

// Save implements integration.OrderSink
func (s *MultiOrderSink) Save(ctx context.Context, order *integration.Order) (string, error) {
	location, err := s.primary.Save(ctx, order)
	if err != nil {
		return "", err
	}
	name := filepath.Base(location)
	for _, mirror := range s.mirrors {
		if named, ok := mirror.(namedOrderSink); ok {
			_, err = named.SaveAs(ctx, order, name)
		} else {
			_, err = mirror.Save(ctx, order)
		}
		if err != nil {
			return location, err
		}
	}
	return location, nil
}
