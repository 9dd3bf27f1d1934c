package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/CapCeph/ship-lens/internal/catalog"
	"github.com/CapCeph/ship-lens/internal/config"
	"github.com/CapCeph/ship-lens/internal/dispatcher"
	"github.com/CapCeph/ship-lens/internal/logging"
	"github.com/CapCeph/ship-lens/internal/service"
	"github.com/CapCeph/ship-lens/internal/storage"
	"github.com/CapCeph/ship-lens/internal/telemetry"
	"github.com/CapCeph/ship-lens/internal/worker"
)

// Version can be set at build time via ldflags.
var Version = "0.0.1"

// app holds everything a subcommand needs after setup.
type app struct {
	logFile  *os.File
	slogMgr  *logging.SlogManager
	logger   *slog.Logger
	zlog     zerolog.Logger
	catalog  *catalog.Catalog
	store    storage.Store
	recorder *telemetry.Recorder
	disp     *dispatcher.Dispatcher
	svc      *service.Service
	workers  *worker.Manager
}

var (
	configDir   string
	dataDirFlag string
)

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "shiplens",
		Short:         "Ship loadout time-to-kill calculator",
		Long:          "shiplens models weapon loadouts against ship defenses and reports\nthe shield, armor and hull phases of a kill, using extracted game data.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}

	root.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing shiplens.cfg.json")
	root.PersistentFlags().StringVar(&dataDirFlag, "data", "", "game data directory (overrides config)")

	root.AddCommand(
		newTTKCmd(a),
		newCompareCmd(a),
		newShipsCmd(a),
		newWeaponsCmd(a),
		newShieldsCmd(a),
		newMissilesCmd(a),
		newStatsCmd(a),
		newPresetCmd(a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) setup() error {
	if err := config.Load(configDir); err != nil {
		return err
	}

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}

	sessionStart := time.Now()
	logPath := logging.LogFilePath(logsDir, "shiplens", sessionStart)
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	a.logFile = file

	sessionID := sessionStart.Format("20060102_150405")
	a.slogMgr = logging.NewSlogManager()
	a.slogMgr.Setup(file, config.GetString("logLevel"), sessionID)
	a.logger = a.slogMgr.Logger()

	zlevel, err := zerolog.ParseLevel(config.GetString("logLevel"))
	if err != nil {
		zlevel = zerolog.InfoLevel
	}
	a.zlog = zerolog.New(file).Level(zlevel).With().
		Timestamp().Str("session", sessionID).Logger()

	dataDir := config.GetString("dataDir")
	if dataDirFlag != "" {
		dataDir = dataDirFlag
	}
	a.catalog = catalog.New(a.logger)
	if err := a.catalog.Load(dataDir); err != nil {
		return fmt.Errorf("loading game data from %s: %w", dataDir, err)
	}

	a.store, err = storage.NewStore(config.GetStorageConfig(), a.zlog)
	if err != nil {
		return err
	}
	if err := a.store.Init(); err != nil {
		return fmt.Errorf("initializing preset store: %w", err)
	}

	a.recorder = telemetry.NewRecorder(
		config.GetInfluxConfig(),
		a.zlog,
		filepath.Join(logsDir, "telemetry_backup.gz"),
	)
	if err := a.recorder.Connect(); err != nil {
		// telemetry is best effort
		a.logger.Warn("telemetry unavailable", "error", err)
	}

	a.disp, err = dispatcher.New(logging.NewDispatcherLogger(a.zlog))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}

	a.svc = service.NewService(service.Dependencies{
		Catalog:         a.catalog,
		Store:           a.store,
		Logger:          a.logger,
		Recorder:        a.recorder,
		DefaultScenario: config.GetScenario(),
		DefaultZone:     config.GetZoneWeights(),
	})
	a.svc.RegisterHandlers(a.disp)

	a.workers = worker.NewManager(worker.Dependencies{
		Service: a.svc,
		Logger:  a.logger,
	}, config.GetInt("compareWorkers"))
	a.workers.RegisterHandlers(a.disp)

	a.logger.Info("shiplens started", "version", Version, "dataDir", dataDir)
	return nil
}

func (a *app) teardown() {
	if a.recorder != nil {
		a.recorder.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.logger != nil {
			a.logger.Error("closing preset store", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// dispatch routes a CLI invocation through the same operation table a
// UI bridge would use.
func (a *app) dispatch(command string, args ...string) (any, error) {
	return a.disp.Dispatch(dispatcher.Event{
		Command:   command,
		Args:      args,
		Timestamp: time.Now(),
	})
}
