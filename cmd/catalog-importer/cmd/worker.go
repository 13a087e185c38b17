package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var workerWithScheduler bool

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the import worker pool",
	Long: "Consume import jobs from the work queue until interrupted. Deliveries " +
		"in flight at shutdown are left unacknowledged and redelivered after " +
		"their visibility timeout.",
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().BoolVar(&workerWithScheduler, "with-scheduler", false, "also run the maintenance scheduler")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(_ *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if workerWithScheduler {
		sched, err := a.newScheduler()
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}
		sched.RecoverStaleJobRuns(ctx)
		sched.Start()
		defer func() { <-sched.Stop().Done() }()
	}

	log.Info("starting workers", "concurrency", cfg.Worker.Concurrency, "backend", cfg.Queue.Backend)
	a.newPool().Run(ctx)
	log.Info("workers stopped")
	return nil
}
