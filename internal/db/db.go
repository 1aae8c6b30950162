package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "github.com/mattn/go-sqlite3"    // registers the "sqlite3" database/sql driver

	"github.com/coursehub/coursehub/internal/config"
	"github.com/coursehub/coursehub/internal/pkg/logger"
)

// Dialect identifies the SQL flavour behind a DB handle.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB is the store handle passed down to repositories. It is constructed
// explicitly at startup (or per test) and never held in a package variable.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Options describes how to open a store independently of the full app config.
type Options struct {
	Driver          string
	Path            string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OptionsFromConfig maps the database section of the app config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return Options{}, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	opts := Options{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: lifetime,
	}
	if opts.Driver == config.DriverPostgres {
		opts.DSN = cfg.GetPostgresConnectionString()
	}
	return opts, nil
}

// Open opens and pings the configured store.
func Open(ctx context.Context, opts Options) (*DB, error) {
	switch opts.Driver {
	case config.DriverSQLite, "":
		return openSQLite(ctx, opts)
	case config.DriverPostgres:
		return openPostgres(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// OpenSQLite is a shortcut for a file-backed SQLite store, used by tools and tests.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	return openSQLite(ctx, Options{Driver: config.DriverSQLite, Path: path})
}

func openSQLite(ctx context.Context, opts Options) (*DB, error) {
	if dir := filepath.Dir(opts.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	// Foreign keys are off by default in SQLite; cascades depend on them.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", opts.Path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// The engine serializes writers anyway; a single connection keeps
	// per-connection pragmas consistent.
	sqlDB.SetMaxOpenConns(1)

	return finishOpen(ctx, sqlDB, DialectSQLite)
}

func openPostgres(ctx context.Context, opts Options) (*DB, error) {
	sqlDB, err := sql.Open("pgx", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return finishOpen(ctx, sqlDB, DialectPostgres)
}

func finishOpen(ctx context.Context, sqlDB *sql.DB, dialect Dialect) (*DB, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Debug().Str("dialect", string(dialect)).Msg("Database connection established")
	return &DB{DB: sqlDB, Dialect: dialect}, nil
}

// Builder returns a squirrel statement builder with the dialect's placeholder format.
func (db *DB) Builder() squirrel.StatementBuilderType {
	if db.Dialect == DialectPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// LikeOperator returns the case-insensitive LIKE keyword for the dialect.
func (db *DB) LikeOperator() string {
	if db.Dialect == DialectPostgres {
		return "ILIKE"
	}
	// SQLite LIKE is case-insensitive for ASCII.
	return "LIKE"
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs a function within a transaction
func (db *DB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
