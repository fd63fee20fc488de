package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrescamacho/blueprint-optimizer/internal/adapters/metrics"
	"github.com/andrescamacho/blueprint-optimizer/internal/adapters/persistence"
	"github.com/andrescamacho/blueprint-optimizer/internal/application/common"
	"github.com/andrescamacho/blueprint-optimizer/internal/application/evaluation/commands"
	"github.com/andrescamacho/blueprint-optimizer/internal/application/evaluation/queries"
	"github.com/andrescamacho/blueprint-optimizer/internal/application/mediator"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/evaluation"
	"github.com/andrescamacho/blueprint-optimizer/internal/domain/shared"
	"github.com/andrescamacho/blueprint-optimizer/internal/infrastructure/config"
	"github.com/andrescamacho/blueprint-optimizer/internal/infrastructure/database"
	"github.com/andrescamacho/blueprint-optimizer/internal/infrastructure/logging"
	"github.com/andrescamacho/blueprint-optimizer/pkg/utils"
)

// application wires configuration, logging, metrics, storage and the
// mediator for one CLI invocation
type application struct {
	cfg      *config.Config
	logger   *zap.Logger
	mediator mediator.Mediator

	db            *gorm.DB
	metricsServer *metrics.Server
}

// appOptions selects the optional pieces a command needs
type appOptions struct {
	withDatabase bool

	// configure applies command-line overrides before anything is built
	configure func(cfg *config.Config) error
}

// newApplication loads configuration and builds the object graph
func newApplication(opts appOptions) (*application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if opts.configure != nil {
		if err := opts.configure(cfg); err != nil {
			return nil, err
		}
		if err := config.ValidateConfig(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &application{cfg: cfg, logger: logger}

	var commandCollector *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		commandCollector, err = app.startMetrics()
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	var runRepo evaluation.RunRepository
	if opts.withDatabase {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.db = db
		if err := database.AutoMigrate(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		runRepo = persistence.NewGormEvaluationRunRepository(db)
	}

	m := mediator.NewMediator(common.LoggingMiddleware())
	if commandCollector != nil {
		m.Use(metrics.PrometheusMiddleware(commandCollector))
	}
	if err := registerHandlers(m, cfg.Optimizer, runRepo); err != nil {
		app.Close()
		return nil, err
	}
	app.mediator = m

	return app, nil
}

func (a *application) startMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	searchCollector := metrics.NewSearchMetricsCollector()
	if err := searchCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register search metrics: %w", err)
	}
	metrics.SetGlobalSearchCollector(searchCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	server, err := metrics.StartServer(a.cfg.Metrics)
	if err != nil {
		return nil, err
	}
	a.metricsServer = server
	a.logger.Info("metrics endpoint listening",
		zap.String("address", server.Addr()),
		zap.String("path", a.cfg.Metrics.Path))

	return commandCollector, nil
}

// registerHandlers registers every command and query handler. Run queries
// are only available when a repository is configured.
func registerHandlers(m mediator.Mediator, cfg config.OptimizerConfig, runRepo evaluation.RunRepository) error {
	evaluate := commands.NewEvaluateBlueprintsHandler(
		cfg.Workers,
		cfg.SearchOptions(),
		runRepo,
		shared.NewRealClock(),
		utils.GenerateRunID,
		cfg.ProgressInterval,
	)
	if err := mediator.RegisterHandler[*commands.EvaluateBlueprintsCommand](m, evaluate); err != nil {
		return fmt.Errorf("failed to register evaluate handler: %w", err)
	}

	if runRepo == nil {
		return nil
	}

	if err := mediator.RegisterHandler[*queries.GetEvaluationRunQuery](m, queries.NewGetEvaluationRunHandler(runRepo)); err != nil {
		return fmt.Errorf("failed to register get run handler: %w", err)
	}
	if err := mediator.RegisterHandler[*queries.ListEvaluationRunsQuery](m, queries.NewListEvaluationRunsHandler(runRepo)); err != nil {
		return fmt.Errorf("failed to register list runs handler: %w", err)
	}
	return nil
}

// context returns ctx carrying the application logger
func (a *application) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, logging.NewZapLogger(a.logger))
}

// Close releases the database, metrics server and logger
func (a *application) Close() {
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = a.metricsServer.Shutdown(ctx)
		cancel()
	}
	if a.cfg.Metrics.Enabled {
		metrics.Reset()
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
