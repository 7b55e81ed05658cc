package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/infrastructure/config"
	"github.com/eventhub/backend/internal/infrastructure/logger"
	"github.com/eventhub/backend/internal/infrastructure/migration"
)

func main() {
	var (
		migrationsPath = flag.String("path", "migrations", "Path to migration files")
		logLevel       = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  *logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	command := flag.Arg(0)

	// create and list work without a database connection
	switch command {
	case "create":
		runCreate(*migrationsPath, log)
		return
	case "list":
		runList(*migrationsPath, log)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := migration.New(db, *migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Error("Failed to close migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "step":
		n, parseErr := intArg(1)
		if parseErr != nil {
			log.Fatal("step requires a numeric argument", zap.Error(parseErr))
		}
		err = migrator.Steps(n)
	case "goto":
		v, parseErr := intArg(1)
		if parseErr != nil || v < 0 {
			log.Fatal("goto requires a non-negative version argument")
		}
		err = migrator.GoTo(uint(v))
	case "version":
		version, dirty, verErr := migrator.Version()
		if verErr != nil {
			log.Fatal("Failed to get version", zap.Error(verErr))
		}
		log.Info("Current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	case "force":
		v, parseErr := intArg(1)
		if parseErr != nil {
			log.Fatal("force requires a numeric version argument", zap.Error(parseErr))
		}
		err = migrator.Force(v)
	case "drop":
		if flag.Arg(1) != "-confirm" {
			log.Fatal("drop destroys all data; re-run with '-confirm' to proceed")
		}
		err = migrator.Drop()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func runCreate(migrationsPath string, log *zap.Logger) {
	name := flag.Arg(1)
	if name == "" {
		log.Fatal("create requires a migration name, e.g. 'create add_events_table'")
	}

	mf, err := migration.CreateMigration(migrationsPath, name)
	if err != nil {
		log.Fatal("Failed to create migration", zap.Error(err))
	}

	log.Info("Created migration",
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
}

func runList(migrationsPath string, log *zap.Logger) {
	migrations, err := migration.ListMigrations(migrationsPath)
	if err != nil {
		log.Fatal("Failed to list migrations", zap.Error(err))
	}

	if len(migrations) == 0 {
		log.Info("No migrations found", zap.String("path", migrationsPath))
		return
	}
	for _, m := range migrations {
		fmt.Println(m)
	}
}

func intArg(i int) (int, error) {
	return strconv.Atoi(flag.Arg(i))
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [flags] <command> [args]

Commands:
  up                Apply all pending migrations
  down              Roll back all migrations
  step <n>          Apply n migrations (negative rolls back)
  goto <version>    Migrate to a specific version
  version           Print the current schema version
  force <version>   Overwrite the recorded version (dirty-state recovery)
  drop -confirm     Drop the entire schema, data included
  create <name>     Generate an empty up/down migration pair
  list              List migrations on disk

Flags:
`)
	flag.PrintDefaults()
}
