// Package main is the entry point of the failure demonstrations. It wires all
// collaborators using samber/do v2, runs the catalogue once, and exits
// non-zero when a trigger fails outside its declared kind.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/go-failure-demos/internal/adapters/clients/database"
	"github.com/jsamuelsen11/go-failure-demos/internal/adapters/clients/registry"
	"github.com/jsamuelsen11/go-failure-demos/internal/adapters/clients/status"
	"github.com/jsamuelsen11/go-failure-demos/internal/adapters/files"
	"github.com/jsamuelsen11/go-failure-demos/internal/adapters/sink"
	"github.com/jsamuelsen11/go-failure-demos/internal/app"
	"github.com/jsamuelsen11/go-failure-demos/internal/app/catalogue"
	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/config"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/health"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-failure-demos/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	banner              = "Demonstrating failure handling, one trigger at a time:"
	statusServiceName   = "status-api"
	otelShutdownTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bootstrap: config, logger, telemetry. APP_PROFILE is optional.
	cfg, err := config.Load(os.Getenv("APP_PROFILE"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	runID := uuid.NewString()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr).With(slog.String("run_id", runID))
	ctx = logging.WithLogger(ctx, logger)
	ctx = httpclient.WithRunID(ctx, runID)

	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		otelCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := otel.Shutdown(otelCtx); err != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", err))
		}
	}()

	workDir, cleanup, err := prepareWorkDir(cfg.Catalogue.WorkDir)
	if err != nil {
		return err
	}
	defer cleanup()

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, workDir, logger)

	store, err := do.Invoke[*files.Store](injector)
	if err != nil {
		return fmt.Errorf("resolving file store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SeedFixture(cfg.Catalogue.FixtureFile, cfg.Catalogue.Fixture()); err != nil {
		return fmt.Errorf("seeding fixture: %w", err)
	}

	// Preflight: unhealthy collaborators are expected for some triggers, so
	// failures are only logged.
	checks := do.MustInvoke[ports.HealthRegistry](injector)
	checks.Register(store)
	checks.Register(do.MustInvoke[*status.Client](injector))
	if err := checks.Preflight(ctx); err != nil {
		logger.WarnContext(ctx, "preflight found unavailable collaborators", slog.Any("error", err))
	}

	triggers, err := do.Invoke[[]domain.Trigger](injector)
	if err != nil {
		return fmt.Errorf("resolving catalogue: %w", err)
	}
	runner := do.MustInvoke[ports.Runner](injector)
	out := do.MustInvoke[ports.ReportSink](injector)

	if err := out.Emit(ctx, banner); err != nil {
		return err
	}
	if err := out.Emit(ctx, ""); err != nil {
		return err
	}

	reports, runErr := runner.RunAll(ctx, triggers)

	summary := fmt.Sprintf("%d of %d triggers reported", len(reports), len(triggers))
	if err := out.Emit(context.WithoutCancel(ctx), summary); err != nil {
		return errors.Join(runErr, err)
	}

	if runErr != nil {
		return fmt.Errorf("running catalogue: %w", runErr)
	}

	logger.InfoContext(ctx, "catalogue complete",
		slog.Int("reported", len(reports)),
		slog.String("work_dir", workDir),
	)
	return nil
}

// prepareWorkDir returns the directory the file demonstrations run in. An
// empty configured dir means a fresh temporary directory that cleanup removes.
func prepareWorkDir(dir string) (string, func(), error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", nil, fmt.Errorf("creating work dir: %w", err)
		}
		return dir, func() {}, nil
	}

	tmp, err := os.MkdirTemp("", "failure-demos-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating temporary work dir: %w", err)
	}
	return tmp, func() { _ = os.RemoveAll(tmp) }, nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, workDir string, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, statusServiceName, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*status.Client, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return status.NewClient(client, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (*files.Store, error) {
		return files.NewStore(workDir, logger)
	})

	do.Provide(injector, func(_ do.Injector) (ports.DatabaseConnector, error) {
		return database.NewConnector(cfg.Database.PingTimeout, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.TypeResolver, error) {
		return registry.NewWithDefaults(logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.ReportSink, error) {
		return sink.NewConsole(os.Stdout), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.Runner, error) {
		out := do.MustInvoke[ports.ReportSink](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewRunner(out, logger, metrics), nil
	})

	do.Provide(injector, func(i do.Injector) ([]domain.Trigger, error) {
		return catalogue.New(catalogue.Deps{
			Files:       do.MustInvoke[*files.Store](i),
			Database:    do.MustInvoke[ports.DatabaseConnector](i),
			Types:       do.MustInvoke[ports.TypeResolver](i),
			Status:      do.MustInvoke[*status.Client](i),
			Sink:        do.MustInvoke[ports.ReportSink](i),
			DSN:         cfg.Database.DSN,
			MissingType: cfg.Catalogue.MissingType,
			FixtureFile: cfg.Catalogue.FixtureFile,
		}), nil
	})
}
