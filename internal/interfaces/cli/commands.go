package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appintegration "github.com/BonMercato/wunder/internal/application/integration"
)

func newPullOrdersCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "pull-orders",
		Short: "Download orders in the configured states, accepting those waiting for acceptance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, appintegration.OperationPullOrders, func(ctx context.Context, a *app) error {
				sink, err := a.orderSink(ctx)
				if err != nil {
					return err
				}

				a.logger.Info("Pulling orders",
					zap.Strings("order_state_codes", a.config.PullOrderSettings.OrderStateCodes),
					zap.String("order_path", a.config.PullOrderSettings.OrderPath),
				)
				service := appintegration.NewOrderSyncService(a.api, sink, a.config.PullOrderSettings.OrderStateCodes, a.serviceOptions()...)
				_, err = service.PullOrders(ctx)
				return err
			})
		},
	}
}

func newPushTrackingCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "push-tracking-info <tracking_file>",
		Short: "Submit carrier tracking for an order from an XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, appintegration.OperationPushTracking, func(ctx context.Context, a *app) error {
				service := appintegration.NewTrackingService(a.api, a.serviceOptions()...)
				return service.PushTracking(ctx, args[0])
			})
		},
	}
}

func newPushInvoiceCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "push-invoice <invoice_file>",
		Short: "Upload <order_id>_<name>.<ext> as the customer invoice of that order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, appintegration.OperationPushInvoice, func(ctx context.Context, a *app) error {
				service := appintegration.NewDocumentService(a.api, a.serviceOptions()...)
				_, err := service.PushInvoice(ctx, args[0])
				return err
			})
		},
	}
}
