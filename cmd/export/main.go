// Command export renders the dashboard to static files and optionally writes
// the dataset into a sqlite database.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/okian/blaugrana/internal/adapters/export/sqlite"
	"github.com/okian/blaugrana/internal/adapters/http/router"
	"github.com/okian/blaugrana/internal/adapters/repository"
	service "github.com/okian/blaugrana/internal/app"
	"github.com/okian/blaugrana/internal/config"
	"github.com/okian/blaugrana/internal/staticsite"
	"github.com/okian/blaugrana/pkg/logger"
)

// options are the parsed command line flags.
type options struct {
	out        string
	sqlitePath string
	workers    int
	configPath string
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	var o options
	fs.StringVar(&o.out, "out", "dist", "Directory for the static site; empty skips it")
	fs.StringVar(&o.sqlitePath, "sqlite", "", "sqlite database file to write; empty skips it")
	fs.IntVar(&o.workers, "workers", 0, "Concurrent renders (default export_workers from config)")
	fs.StringVar(&o.configPath, "config", os.Getenv(config.EnvFile), "YAML config file")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.out == "" && o.sqlitePath == "" {
		return options{}, errors.New("nothing to do: both -out and -sqlite are empty")
	}
	return o, nil
}

func main() {
	_ = godotenv.Load()

	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		logger.Get().Error(ctx, "export failed", logger.Error(err))
		_ = logger.Sync()
		stop()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, o options) error {
	cfg, err := config.LoadFile(ctx, o.configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return errors.Wrap(err, "init logger")
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	if o.workers <= 0 {
		o.workers = cfg.ExportWorkers
	}

	log := logger.Get().Named("export")
	runID := uuid.NewString()
	log.Info(ctx, "export started",
		logger.String("run_id", runID),
		logger.String("out", o.out),
		logger.String("sqlite", o.sqlitePath),
		logger.Int("workers", o.workers))

	store, err := repository.Load(ctx,
		repository.WithPath(cfg.DatasetPath),
		repository.WithLogger(log.Named("repository")),
	)
	if err != nil {
		return err
	}
	svc := service.New(
		service.WithStore(store),
		service.WithLogger(log.Named("service")),
		service.WithMaxPlayerRows(cfg.MaxPlayerRows),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	if o.out != "" {
		r := staticsite.New(router.New(ctx, svc, log), o.out,
			staticsite.WithWorkers(o.workers),
			staticsite.WithLogger(log.Named("staticsite")),
		)
		res, err := r.Render(ctx, staticsite.Paths(svc.ListSeasons(ctx)))
		if err != nil {
			return err
		}
		log.Info(ctx, "static site done", logger.String("run_id", runID), logger.Int("files", len(res.Files)))
	}

	if o.sqlitePath != "" {
		if err := exportSQLite(ctx, o.sqlitePath, store, log); err != nil {
			return err
		}
		log.Info(ctx, "sqlite done", logger.String("run_id", runID), logger.String("path", o.sqlitePath))
	}
	return nil
}

func exportSQLite(ctx context.Context, path string, store *repository.MemStore, log logger.Logger) error {
	e, err := sqlite.Open(ctx, path, sqlite.WithLogger(log.Named("sqlite")))
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Close(); err != nil {
			log.Warn(ctx, "close sqlite", logger.Error(err))
		}
	}()
	_, err = e.Export(ctx, store.Dataset())
	return err
}
