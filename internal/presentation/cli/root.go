package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type app struct {
	ephemeral bool
	rt        *runtime
}

// Execute runs the stockledger command tree against os.Args.
func Execute(ctx context.Context) error {
	a := &app{}
	err := newRootCommand(a).ExecuteContext(ctx)
	if cerr := a.close(err); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "stockledger",
		Short: "Keep a small item inventory in a JSON file",
		Long: `stockledger tracks item quantities in a local JSON file.
Run without a subcommand to play the built-in demonstration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.String("file", "", "inventory file (default inventory.json, env INVENTORY_FILE)")
	flags.Int("threshold", 0, "low-stock threshold (default 5, env LOW_STOCK_THRESHOLD)")
	flags.String("log-level", "", "log level: debug, info, warn or error (env LOG_LEVEL)")
	flags.String("metrics-file", "", "write Prometheus metrics to this file on exit (env METRICS_FILE)")
	flags.BoolVar(&a.ephemeral, "ephemeral", false, "keep the inventory in memory and never touch the file")

	root.AddCommand(
		newDemoCommand(a),
		newAddCommand(a),
		newRemoveCommand(a),
		newQtyCommand(a),
		newLowCommand(a),
		newReportCommand(a),
		newApplyCommand(a),
	)
	return root
}
