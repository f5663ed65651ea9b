package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"github.com/bookkeeping/backend/internal/infrastructure/logger"
	"github.com/bookkeeping/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const usage = `Bookkeeping schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative n rolls back)
  goto <version>        Migrate to an exact version
  version               Show the current schema version
  force <version>       Overwrite the recorded version (dirty-state recovery)
  drop -confirm         Drop every database object
  create <name> [desc]  Create an empty up/down migration pair
  list                  List the migration pairs in the migrations directory

Flags:
  -path string          Migrations directory (default: ./migrations)
  -log-level string     debug, info, warn or error (default: info)

The database connection comes from the BOOK_DATABASE_* environment variables.`

func main() {
	var (
		path     string
		logLevel string
	)
	flag.StringVar(&path, "path", "", "migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	path = resolvePath(path)
	command, args := args[0], args[1:]
	log.Info("migration tool started",
		zap.String("command", command),
		zap.String("migrations_path", path))

	switch command {
	case "create":
		runCreate(log, path, args)
	case "list":
		runList(log, path)
	case "up", "down", "step", "goto", "version", "force", "drop":
		runAgainstDatabase(log, path, command, args)
	default:
		log.Error("unknown command", zap.String("command", command))
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
}

// resolvePath locates the migrations directory: the -path flag if given, then
// ./migrations, then migrations/ next to the binary's project root.
func resolvePath(path string) string {
	if path == "" {
		path = "migrations"
		if _, err := os.Stat(path); err != nil {
			if exec, execErr := os.Executable(); execErr == nil {
				candidate := filepath.Join(filepath.Dir(exec), "..", "..", "migrations")
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func runCreate(log *zap.Logger, path string, args []string) {
	if len(args) == 0 {
		log.Fatal("migration name required: migrate create <name> [description]")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}
	mf, err := migration.CreateMigration(path, args[0], description)
	if err != nil {
		log.Fatal("creating migration", zap.Error(err))
	}
	log.Info("migration pair created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath))
}

func runList(log *zap.Logger, path string) {
	names, err := migration.ListMigrations(path)
	if err != nil {
		log.Fatal("listing migrations", zap.Error(err))
	}
	if len(names) == 0 {
		log.Info("no migrations found")
		return
	}
	log.Info("available migrations", zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
}

func runAgainstDatabase(log *zap.Logger, path, command string, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("opening database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("pinging database", zap.Error(err))
	}

	mg, err := migration.New(db, path, log)
	if err != nil {
		log.Fatal("creating migrator", zap.Error(err))
	}
	defer mg.Close()

	switch command {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "step":
		err = mg.Steps(intArg(log, args, "step count"))
	case "goto":
		err = mg.GoTo(uint(intArg(log, args, "target version")))
	case "version":
		version, dirty, verr := mg.Version()
		if verr != nil {
			log.Fatal("reading schema version", zap.Error(verr))
		}
		if version == 0 {
			log.Info("no migrations applied")
		} else {
			log.Info("current schema version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty))
		}
		return
	case "force":
		err = mg.Force(intArg(log, args, "version"))
	case "drop":
		if !confirmed(args) {
			log.Fatal("drop destroys every database object; re-run as 'migrate drop -confirm'")
		}
		err = mg.Drop()
	}
	if err != nil {
		log.Fatal("migration command failed",
			zap.String("command", command),
			zap.Error(err))
	}
}

func intArg(log *zap.Logger, args []string, what string) int {
	if len(args) == 0 {
		log.Fatal(what + " required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		log.Fatal("invalid "+what, zap.String("value", args[0]))
	}
	return n
}

func confirmed(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}
