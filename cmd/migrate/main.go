package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/shoplens/backend/internal/infrastructure/config"
	"github.com/shoplens/backend/internal/infrastructure/logger"
	"github.com/shoplens/backend/internal/infrastructure/migration"
)

const usage = `shoplens schema migration tool

Usage:
  migrate [flags] <command> [args]

Commands:
  up                    apply every pending migration
  down                  roll back everything
  step <n>              move n migrations (negative rolls back)
  version               print the current schema version
  force <version>       overwrite the recorded version (recovery only)
  create <name> [desc]  write an empty up/down migration pair
  list                  show the migration files on disk

Flags:
  -path string          migrations directory (default "migrations")
  -log-level string     debug, info, warn or error (default "info")
`

func main() {
	pathFlag := flag.String("path", "migrations", "migrations directory")
	levelFlag := flag.String("log-level", "info", "log level")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: *levelFlag, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	dir, err := filepath.Abs(*pathFlag)
	if err != nil {
		log.Fatal("resolving migrations directory", zap.Error(err))
	}

	if err := run(flag.Args(), dir, log); err != nil {
		log.Fatal("migration command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}

func run(args []string, dir string, log *zap.Logger) error {
	cmd, rest := args[0], args[1:]

	// create and list only touch the filesystem
	switch cmd {
	case "create":
		return runCreate(rest, dir, log)
	case "list":
		return runList(dir, log)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, dir, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(rest, "step expects a count, e.g. migrate step -1")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("no migrations applied yet")
			return nil
		}
		log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	case "force":
		v, err := intArg(rest, "force expects a version, e.g. migrate force 3")
		if err != nil {
			return err
		}
		log.Warn("overwriting recorded schema version", zap.Int("version", v))
		return m.Force(v)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runCreate(args []string, dir string, log *zap.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("create expects a name, e.g. migrate create add_refund_events")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}
	mf, err := migration.CreateMigration(dir, args[0], description)
	if err != nil {
		return err
	}
	log.Info("migration files written",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
	return nil
}

func runList(dir string, log *zap.Logger) error {
	names, err := migration.ListMigrations(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		log.Info("no migration files found", zap.String("dir", dir))
		return nil
	}
	log.Info("migration files", zap.Int("count", len(names)))
	for _, n := range names {
		fmt.Println(" ", n)
	}
	return nil
}

func intArg(args []string, hint string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s", hint)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", args[0])
	}
	return n, nil
}
