package cli

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	appinv "github.com/Zhima-Mochi/stockledger/internal/application/inventory"
	"github.com/Zhima-Mochi/stockledger/internal/config"
	dominv "github.com/Zhima-Mochi/stockledger/internal/domain/inventory"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/id"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/jsonfile"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/stockledger/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/stockledger/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/stockledger/internal/observability"
	"github.com/Zhima-Mochi/stockledger/internal/pkg/logging"
)

// runtime is everything one command invocation needs, built once in
// PersistentPreRunE and torn down by app.close.
type runtime struct {
	cfg      *config.Config
	logger   *zaplogger.Logger
	run      *commandRun
	registry *prometheus.Registry
	store    *appinv.Store
	out      io.Writer
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	zl, err := logging.NewLogger(logging.Options{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.Logger.Level,
		Output:  cfg.Logger.Output,
		File:    cfg.Logger.File,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ids := id.NewUUIDGenerator()
	registry := prometheus.NewRegistry()
	logger := zaplogger.New(zl)
	tel := infraobs.New(oteltrace.New(cfg.App.Name), logger, instruments(prometrics.New(registry, "", "")))
	ctx, run := startCommand(cmd.Context(), tel, ids.NewID(), cmd.Name())

	var repo dominv.Repository = jsonfile.NewInventoryRepository(cfg.Inventory.File)
	if a.ephemeral {
		repo = memory.NewInventoryRepository()
	}

	out := cmd.OutOrStdout()
	store := appinv.NewStore(repo, ids, tel, appinv.WithOutput(out))

	cmd.SetContext(ctx)
	a.rt = &runtime{
		cfg:      cfg,
		logger:   logger,
		run:      run,
		registry: registry,
		store:    store,
		out:      out,
	}

	run.logger.Debug("command_start",
		observability.F("inventory_file", cfg.Inventory.File),
		observability.F("ephemeral", a.ephemeral),
	)
	return nil
}

func instruments(reg prometrics.Registry) infraobs.Instruments {
	return infraobs.Instruments{
		Counters: map[observability.MetricKey]observability.Counter{
			observability.MUsecaseRequests: reg.Counter(string(observability.MUsecaseRequests),
				"Total number of use case invocations.", "use_case", "outcome"),
			observability.MCommandRuns: reg.Counter(string(observability.MCommandRuns),
				"Total number of CLI command runs.", "command", "outcome"),
		},
		Histograms: map[observability.MetricKey]observability.Histogram{
			observability.MUsecaseDuration: reg.Histogram(string(observability.MUsecaseDuration),
				"Duration of use case execution in seconds.", prometheus.DefBuckets, "use_case"),
			observability.MCommandDuration: reg.Histogram(string(observability.MCommandDuration),
				"Duration of CLI command runs in seconds.", prometheus.DefBuckets, "command"),
		},
		Gauges: map[observability.MetricKey]observability.Gauge{
			observability.MInventoryItems: reg.Gauge(string(observability.MInventoryItems),
				"Number of distinct items in the inventory."),
			observability.MInventoryUnits: reg.Gauge(string(observability.MInventoryUnits),
				"Sum of all item quantities in the inventory."),
		},
	}
}

// close records the outcome of the command, writes the metrics textfile when
// configured and flushes the logger.
func (a *app) close(runErr error) error {
	rt := a.rt
	if rt == nil {
		return nil
	}
	a.rt = nil

	rt.run.finish(runErr)

	var err error
	if rt.cfg.Metrics.File != "" {
		err = prometrics.WriteTextfile(rt.cfg.Metrics.File, rt.registry)
	}
	_ = rt.logger.Sync()
	return err
}
