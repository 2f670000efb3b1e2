package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BonMercato/wunder/internal/domain/integration"
	"github.com/BonMercato/wunder/internal/infrastructure/logger"
	"github.com/BonMercato/wunder/internal/infrastructure/telemetry"
)

// OperationPullOrders names the pull workflow in spans and metrics
const OperationPullOrders = "pull_orders"

// PullSummary reports what one pull run did
type PullSummary struct {
	Pages    int      `json:"pages"`
	Orders   int      `json:"orders"`
	Accepted int      `json:"accepted"`
	Files    []string `json:"files"`
}

// OrderSyncService walks the orders listing, accepts pending orders and persists every order
type OrderSyncService struct {
	api        integration.MarketplaceAPI
	sink       integration.OrderSink
	stateCodes []string
	serviceOptions
}

// NewOrderSyncService creates a new OrderSyncService.
// stateCodes are sent comma-joined in configuration order.
func NewOrderSyncService(
	api integration.MarketplaceAPI,
	sink integration.OrderSink,
	stateCodes []string,
	opts ...Option,
) *OrderSyncService {
	return &OrderSyncService{
		api:            api,
		sink:           sink,
		stateCodes:     stateCodes,
		serviceOptions: newServiceOptions(opts),
	}
}

// PullOrders fetches every page of orders matching the configured state codes.
// Orders in state WAITING_ACCEPTANCE are accepted before being saved.
// The first failure aborts the run; orders already accepted or saved stay that way.
func (s *OrderSyncService) PullOrders(ctx context.Context) (summary *PullSummary, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_sync", OperationPullOrders,
		telemetry.SpanAttrRunID, logger.GetRunID(ctx),
	)
	defer span.End()
	started := time.Now()
	defer func() {
		s.metrics.RecordOperation(ctx, OperationPullOrders, started, err)
		if err != nil {
			telemetry.RecordError(span, err)
			return
		}
		telemetry.SetAttributes(span,
			telemetry.SpanAttrPage, summary.Pages,
			telemetry.SpanAttrOrders, summary.Orders,
		)
		telemetry.SetOK(span)
	}()

	summary = &PullSummary{}
	target := integration.OrdersPath
	query := url.Values{integration.OrderStateCodesParam: {strings.Join(s.stateCodes, ",")}}

	for target != "" {
		page, err := s.fetchPage(ctx, target, query, summary.Pages+1)
		if err != nil {
			return nil, err
		}
		summary.Pages++
		query = nil

		for i := range page.Orders {
			if err := s.syncOrder(ctx, &page.Orders[i], summary); err != nil {
				return nil, err
			}
		}
		target = page.NextTarget
	}

	s.log(ctx).Info("Orders pulled",
		zap.Int("pages", summary.Pages),
		zap.Int("orders", summary.Orders),
		zap.Int("accepted", summary.Accepted),
	)
	return summary, nil
}

// fetchPage issues one listing GET and decodes it. The continuation target comes
// from the Link header and is read before the body is decoded.
func (s *OrderSyncService) fetchPage(ctx context.Context, target string, query url.Values, pageNum int) (*integration.OrderPage, error) {
	resp, err := s.api.Get(ctx, target, query)
	if err != nil {
		return nil, fmt.Errorf("fetch orders page %d: %w", pageNum, err)
	}
	next := resp.NextLink()

	var page integration.OrderPage
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, fmt.Errorf("%w: orders page %d: %w", integration.ErrDecode, pageNum, err)
	}
	page.NextTarget = next

	s.log(ctx).Debug("Orders page fetched",
		zap.Int("page", pageNum),
		zap.Int("orders", len(page.Orders)),
		zap.Int("total_count", page.TotalCount),
		zap.Bool("has_more", page.HasMore()),
	)
	return &page, nil
}

func (s *OrderSyncService) syncOrder(ctx context.Context, order *integration.Order, summary *PullSummary) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_sync", "sync_order",
		telemetry.SpanAttrOrderID, order.OrderID,
		telemetry.SpanAttrOrderState, order.OrderState,
	)
	defer span.End()

	summary.Orders++
	s.metrics.RecordOrderFetched(ctx)

	if order.RequiresAcceptance() {
		if _, err := s.api.Put(ctx, integration.AcceptOrderPath(order.OrderID)); err != nil {
			telemetry.RecordError(span, err)
			return fmt.Errorf("accept order %s: %w", order.OrderID, err)
		}
		summary.Accepted++
		s.metrics.RecordOrderAccepted(ctx)
		telemetry.AddEvent(span, "order_accepted")
		s.log(ctx).Info("Order accepted", zap.String("order_id", order.OrderID))
	}

	location, err := s.sink.Save(ctx, order)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("save order %s: %w", order.OrderID, err)
	}
	summary.Files = append(summary.Files, location)
	s.metrics.RecordOrderPersisted(ctx)
	telemetry.SetOK(span)

	s.log(ctx).Info("Order saved",
		zap.String("order_id", order.OrderID),
		zap.String("order_state", order.OrderState),
		zap.String("file", location),
	)
	return nil
}
