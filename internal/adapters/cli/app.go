package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacecolony-go/internal/adapters/logging"
	"github.com/andrescamacho/spacecolony-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacecolony-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony/commands"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony/queries"
	"github.com/andrescamacho/spacecolony-go/internal/application/common"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/config"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/database"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/lockfile"
)

// app holds everything one CLI invocation needs
type app struct {
	cfg        *config.Config
	db         *gorm.DB
	mediator   mediator.Mediator
	logger     *logging.ConsoleLogger
	userConfig *config.UserConfigHandler
	lock       *lockfile.LockFile
	closeLog   func() error
}

// newApp loads configuration, connects to the database and registers every
// handler with the mediator
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return nil, err
	}
	if verbose {
		logger.SetLevel("debug")
	}

	userConfig, err := config.NewUserConfigHandler()
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to create user config handler: %w", err)
	}

	// SQLite has a single writer; postgres serialises writers itself
	var lock *lockfile.LockFile
	if cfg.Database.Type == "sqlite" && cfg.Database.Path != "" && cfg.Database.Path != ":memory:" {
		lock = lockfile.ForDatabase(cfg.Database.Path)
		if err := lock.Acquire(); err != nil {
			_ = closeLog()
			return nil, err
		}
	}
	release := func() {
		if lock != nil {
			_ = lock.Release()
		}
		_ = closeLog()
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		release()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		release()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewColonyMetricsCollector()
		commandMetrics = metrics.NewCommandMetricsCollector()
		if err := registerMetrics(collector, commandMetrics); err != nil {
			_ = database.Close(db)
			release()
			return nil, err
		}
		metrics.SetGlobalColonyCollector(collector)
	}

	store := colony.NewGameStore(persistence.NewGormSaveRepository(db, shared.NewRealClock()))
	m, err := newMediator(store, commandMetrics)
	if err != nil {
		_ = database.Close(db)
		release()
		return nil, err
	}

	return &app{
		cfg:        cfg,
		db:         db,
		mediator:   m,
		logger:     logger,
		userConfig: userConfig,
		lock:       lock,
		closeLog:   closeLog,
	}, nil
}

func registerMetrics(colonyMetrics *metrics.ColonyMetricsCollector, commandMetrics *metrics.CommandMetricsCollector) error {
	if err := colonyMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register colony metrics: %w", err)
	}
	if err := commandMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register command metrics: %w", err)
	}
	return nil
}

// newMediator registers every handler. Command metrics are recorded only
// when a collector is given.
func newMediator(store *colony.GameStore, commandMetrics *metrics.CommandMetricsCollector) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	m.Use(common.LoggingMiddleware())
	if commandMetrics != nil {
		m.Use(metrics.PrometheusMiddleware(commandMetrics))
	}

	registrations := []func() error{
		func() error {
			return mediator.RegisterHandler[*commands.NewGameCommand](m, commands.NewNewGameHandler(store))
		},
		func() error { return mediator.RegisterHandler[*commands.BuildCommand](m, commands.NewBuildHandler(store)) },
		func() error {
			return mediator.RegisterHandler[*commands.DemolishCommand](m, commands.NewDemolishHandler(store))
		},
		func() error { return mediator.RegisterHandler[*commands.TravelCommand](m, commands.NewTravelHandler(store)) },
		func() error {
			return mediator.RegisterHandler[*commands.PassTurnCommand](m, commands.NewPassTurnHandler(store))
		},
		func() error {
			return mediator.RegisterHandler[*commands.TransferCommand](m, commands.NewTransferHandler(store))
		},
		func() error {
			return mediator.RegisterHandler[*commands.DeleteSaveCommand](m, commands.NewDeleteSaveHandler(store))
		},
		func() error { return mediator.RegisterHandler[*queries.GetStatusQuery](m, queries.NewGetStatusHandler(store)) },
		func() error { return mediator.RegisterHandler[*queries.ListNodesQuery](m, queries.NewListNodesHandler(store)) },
		func() error {
			return mediator.RegisterHandler[*queries.GetCatalogQuery](m, queries.NewGetCatalogHandler(store))
		},
		func() error { return mediator.RegisterHandler[*queries.ListSavesQuery](m, queries.NewListSavesHandler(store)) },
		func() error {
			return mediator.RegisterHandler[*queries.ReplaySaveQuery](m, queries.NewReplaySaveHandler(store))
		},
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return nil, fmt.Errorf("failed to register handler: %w", err)
		}
	}
	return m, nil
}

// send dispatches a request with the app logger in the context
func (a *app) send(request mediator.Request) (mediator.Response, error) {
	ctx := common.WithLogger(context.Background(), a.logger)
	return a.mediator.Send(ctx, request)
}

// close flushes metrics and releases the database, its lock and the log file
func (a *app) close() {
	if a.cfg.Metrics.Enabled {
		if err := metrics.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
			a.logger.Log("WARN", "Failed to write metrics textfile", map[string]interface{}{
				"path":  a.cfg.Metrics.TextfilePath,
				"error": err.Error(),
			})
		}
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Log("WARN", "Failed to close database", map[string]interface{}{"error": err.Error()})
	}
	if a.lock != nil {
		if err := a.lock.Release(); err != nil {
			a.logger.Log("WARN", "Failed to release database lock", map[string]interface{}{"error": err.Error()})
		}
	}
	_ = a.closeLog()
}

// resolveSaveID picks the save to operate on.
// Priority: --save flag > current save in the user config
func (a *app) resolveSaveID() (simulation.SaveID, error) {
	raw := saveFlag
	if raw == "" {
		userCfg, err := a.userConfig.Load()
		if err != nil {
			return simulation.SaveID{}, fmt.Errorf("no save specified and failed to load user config: %w", err)
		}
		raw = userCfg.CurrentSave
	}
	if raw == "" {
		return simulation.SaveID{}, fmt.Errorf("no save specified: use --save, or start one with 'colony new'")
	}
	id, err := simulation.ParseSaveID(raw)
	if err != nil {
		return simulation.SaveID{}, fmt.Errorf("invalid save ID %q: %w", raw, err)
	}
	return id, nil
}

// withApp runs fn against a fresh app and always closes it
func withApp(fn func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// withSave is withApp for commands that act on the resolved save
func withSave(fn func(a *app, id simulation.SaveID) error) error {
	return withApp(func(a *app) error {
		id, err := a.resolveSaveID()
		if err != nil {
			return err
		}
		return fn(a, id)
	})
}
