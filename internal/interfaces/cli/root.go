// Package cli is the wunder command line: pull-orders, push-tracking-info and push-invoice.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// runner holds the flags shared by every command
type runner struct {
	configPath string
	version    string
}

// NewRootCommand builds the wunder command tree
func NewRootCommand(version string) *cobra.Command {
	r := &runner{version: version}

	root := &cobra.Command{
		Use:   "wunder",
		Short: "Marketplace order and document integration client",
		Long: `wunder pulls pending orders from the marketplace into a local directory,
accepting those waiting for acceptance, and pushes shipment tracking and
invoices back to the marketplace.`,
		Version:       displayVersion(version),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&r.configPath, "config", "", "config file path (default: ./config.toml)")

	root.AddCommand(
		newPullOrdersCommand(r),
		newPushTrackingCommand(r),
		newPushInvoiceCommand(r),
	)
	return root
}

// Execute runs the command line with args and returns the process exit code.
// Errors already logged by a command are not printed again.
func Execute(ctx context.Context, version string, args []string, stderr io.Writer) int {
	root := NewRootCommand(version)
	root.SetArgs(args)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// withApp builds the app for one command, runs fn and reports its error
func (r *runner) withApp(cmd *cobra.Command, operation string, fn func(ctx context.Context, a *app) error) error {
	ctx, a, err := newApp(cmd.Context(), r.configPath, r.version)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := fn(ctx, a); err != nil {
		return a.report(operation, err)
	}
	return nil
}

func displayVersion(version string) string {
	if version == "" {
		return "dev"
	}
	return version
}
