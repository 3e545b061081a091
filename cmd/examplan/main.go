package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/examplan/internal/catalog"
	"github.com/alexanderramin/examplan/internal/cli"
	"github.com/alexanderramin/examplan/internal/clock"
	"github.com/alexanderramin/examplan/internal/config"
	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/ledger"
	"github.com/alexanderramin/examplan/internal/planner"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/alexanderramin/examplan/internal/service"
	"github.com/alexanderramin/examplan/internal/storage"
	"github.com/mattn/go-isatty"

	_ "time/tzdata"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		User:        cfg.User,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
	app.Setup = func(ctx context.Context, app *cli.App, stderr io.Writer) error {
		userCfg, err := cfg.WithUser(app.User)
		if err != nil {
			return err
		}
		conn, err := wire(ctx, app, userCfg, stderr)
		database = conn
		return err
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// wire builds the catalog, plan and progress ledger for one session and
// loads stored progress.
func wire(ctx context.Context, app *cli.App, cfg config.Config, stderr io.Writer) (*sql.DB, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	gen, err := planner.New(cat, cfg.Policy())
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(stderr))
	}

	c := clock.System{}
	var (
		store    ledger.Store
		events   repository.ProgressEventRepo
		database *sql.DB
	)
	switch cfg.Store {
	case config.StoreFile:
		fs, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening progress directory: %w", err)
		}
		store = fs
	case config.StoreMemory:
		store = storage.NewMemory()
	default:
		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		store = repository.NewSQLiteProgressRepo(db.NewSQLiteUnitOfWork(database), c)
		events = repository.NewSQLiteEventRepo(database)
	}

	l := ledger.New(store, cfg.ProgressKey(),
		ledger.WithClock(c),
		ledger.WithGate(ledger.GateFunc(func(context.Context) bool { return cfg.SignedIn() })),
		ledger.WithLogger(logger),
		ledger.WithTimeout(cfg.StoreTimeout),
		ledger.WithRetry(cfg.SaveAttempts, cfg.RetryDelay),
	)
	ts := service.TimeSettings{Clock: c, Location: cfg.Location, WeekStart: cfg.WeekStart}

	app.Catalog = cat
	app.Plan = service.NewPlanService(gen, l, ts, observers...)
	app.Progress = service.NewProgressService(l, gen.Generate(), events, ts, observers...)

	// Warnings are logged by the ledger; a degraded load still starts.
	app.Progress.Load(ctx)
	return database, nil
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Builtin()
	}
	path := cfg.CatalogPath
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return catalog.LoadFile(path)
}
