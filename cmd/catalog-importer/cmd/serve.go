package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-catalog-importer/internal/api"
	"github.com/donaldgifford/ebay-catalog-importer/internal/api/handlers"
	"github.com/donaldgifford/ebay-catalog-importer/internal/auth"
)

const shutdownTimeout = 15 * time.Second

var (
	serveWithWorker    bool
	serveWithScheduler bool
	serveMigrate       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: "Start the HTTP API. With --with-worker the import worker pool runs in the " +
		"same process; with --with-scheduler the maintenance tasks do too.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWithWorker, "with-worker", false, "run the import worker pool in-process")
	serveCmd.Flags().BoolVar(&serveWithScheduler, "with-scheduler", true, "run the maintenance scheduler in-process")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
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

	if serveMigrate {
		if err := a.store.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	var runner handlers.TaskRunner
	if serveWithScheduler {
		sched, err := a.newScheduler()
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}
		sched.RecoverStaleJobRuns(ctx)
		sched.Start()
		defer func() { <-sched.Stop().Done() }()
		runner = sched
	}

	var pingers []handlers.Pinger
	if p, ok := a.queue.(handlers.Pinger); ok {
		pingers = append(pingers, p)
	}

	e, _ := api.NewRouter(api.Deps{
		Verifier:      auth.NewVerifier(cfg.Shopify.APISecret, auth.WithAudience(cfg.Shopify.APIKey)),
		CORSOrigins:   cfg.Server.CORSOrigins,
		OperatorToken: cfg.Server.OperatorToken,
		Version:       Version,
		Logger:        log,
		Health:        handlers.NewHealthHandler(a.store, pingers...),
		Settings:      handlers.NewSettingsHandler(a.store, cfg.Quota.Window),
		Lookup:        handlers.NewLookupHandler(a.service),
		Imports:       handlers.NewImportsHandler(a.service, a.store),
		Quota:         handlers.NewQuotaHandler(a.ledger, a.limiter, a.analytics),
		Jobs:          handlers.NewJobsHandler(a.store, runner),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           e,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	var wg sync.WaitGroup
	if serveWithWorker {
		pool := a.newPool()
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Run(ctx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "worker", serveWithWorker, "scheduler", serveWithScheduler)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			stop()
			wg.Wait()
			return fmt.Errorf("serving http: %w", err)
		}
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
