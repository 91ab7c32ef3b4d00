package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tupyy/jobsystem/internal/metrics"
	"github.com/tupyy/jobsystem/internal/services"
	"github.com/tupyy/jobsystem/internal/store"
	"github.com/tupyy/jobsystem/pkg/scheduler"
)

const dbFile = "jobsys.duckdb"

// app holds the components shared by serve and run.
type app struct {
	registry  *prometheus.Registry
	js        *scheduler.JobSystem
	store     *store.Store
	workloads *services.WorkloadService
	scheduler *services.SchedulerService
}

func newApp(ctx context.Context) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	zap.S().Debugw("configuration", "config", cfg.DebugMap())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts, err := cfg.Scheduler.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, scheduler.WithObserver(metrics.New(registry)))

	js, err := scheduler.New(cfg.Scheduler.Workers(), opts...)
	if err != nil {
		return nil, err
	}
	registry.MustRegister(metrics.NewStatsCollector(js))

	st, err := openStore(ctx)
	if err != nil {
		js.Shutdown(scheduler.Immediate)
		return nil, err
	}

	return &app{
		registry:  registry,
		js:        js,
		store:     st,
		workloads: services.NewWorkloadService(js, services.NewWorkloadBuilder(js), st),
		scheduler: services.NewSchedulerService(js),
	}, nil
}

func openStore(ctx context.Context) (*store.Store, error) {
	path := ":memory:"
	if cfg.Store.DataFolder != "" {
		if err := os.MkdirAll(cfg.Store.DataFolder, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data folder: %w", err)
		}
		path = filepath.Join(cfg.Store.DataFolder, dbFile)
	}

	db, err := store.NewDB(path)
	if err != nil {
		return nil, err
	}

	st := store.NewStore(db)
	if err := st.Migrate(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to migrate store: %w", err), st.Close())
	}

	zap.S().Named("store").Infow("store opened", "path", path)
	return st, nil
}

// close stops the job system, then closes the store.
func (a *app) close() error {
	a.js.Shutdown(cfg.Scheduler.Mode())
	return a.store.Close()
}
