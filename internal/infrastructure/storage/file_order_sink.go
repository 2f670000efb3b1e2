package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/BonMercato/wunder/internal/domain/integration"
)

// maxNameCollisions bounds the _<n> suffixes tried within one second
const maxNameCollisions = 1000

var _ integration.OrderSink = (*FileOrderSink)(nil)

// FileOrderSink writes each order to its own XML file in a directory.
// Existing files are never overwritten: a name already taken within the same
// second gets a _<n> suffix after the order id.
type FileOrderSink struct {
	dir string
	sinkOptions
}

// NewFileOrderSink creates dir (and parents) if needed.
func NewFileOrderSink(dir string, opts ...Option) (*FileOrderSink, error) {
	if dir == "" {
		return nil, errors.New("storage: order directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create order directory %s: %w", dir, err)
	}
	return &FileOrderSink{
		dir:         dir,
		sinkOptions: newSinkOptions(opts),
	}, nil
}

// Save writes the order document and returns its path
func (s *FileOrderSink) Save(ctx context.Context, order *integration.Order) (string, error) {
	if err := validateOrderID(order.OrderID); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := EncodeOrder(order)
	if err != nil {
		return "", err
	}

	ts := s.now()
	for n := 0; n < maxNameCollisions; n++ {
		id := order.OrderID
		if n > 0 {
			id += "_" + strconv.Itoa(n)
		}
		path := filepath.Join(s.dir, OrderFileName(ts, id))

		err := writeNewFile(path, content)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("storage: failed to write order %s: %w", order.OrderID, err)
		}

		s.logger.Debug("Order written",
			zap.String("order_id", order.OrderID),
			zap.String("path", path),
			zap.Int("bytes", len(content)),
		)
		return path, nil
	}
	return "", fmt.Errorf("storage: failed to write order %s: too many files with the same name", order.OrderID)
}

// writeNewFile creates path exclusively and removes it again if the write fails
func writeNewFile(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
