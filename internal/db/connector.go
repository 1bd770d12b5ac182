package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vvka-141/porekit/internal/retry"
	"github.com/vvka-141/porekit/pkg/porekit"
)

const (
	// DefaultMaxConns bounds the pool; a sink writes through a single COPY.
	DefaultMaxConns = 2

	DefaultMinConns = 1

	DefaultMaxConnIdleTime = 5 * time.Minute

	// sqliteBusyTimeoutMs lets concurrent writers wait on the file lock
	// before the driver reports SQLITE_BUSY.
	sqliteBusyTimeoutMs = 5000
)

// Option adjusts connector behaviour.
type Option func(*options)

type options struct {
	executor *retry.Executor
	logger   porekit.Logger
}

// WithExecutor overrides the retry policy.
func WithExecutor(executor *retry.Executor) Option {
	return func(o *options) { o.executor = executor }
}

// WithLogger receives retry notices and server NOTICE messages.
func WithLogger(logger porekit.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func defaultBackoff() *retry.ExponentialBackoff {
	return retry.NewExponentialBackoff(porekit.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(porekit.DefaultRetryInitialDelay),
		retry.WithMaxDelay(porekit.DefaultRetryMaxDelay),
	)
}

func buildOptions(classifier retry.Classifier, opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.executor == nil {
		o.executor = retry.NewExecutor(classifier, defaultBackoff())
	}
	if o.logger != nil {
		logger := o.logger
		o.executor = o.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn("connection attempt %d failed, retrying in %s: %v", attempt+1, delay, err)
		})
	}
	return o
}

func configurePool(poolConfig *pgxpool.Config, logger porekit.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	if logger != nil {
		poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
			logger.Verbose("postgres: %s", notice.Message)
		}
	}
}

// ConnectPostgres opens a pgx pool for connString and pings it.
func ConnectPostgres(ctx context.Context, connString string, opts ...Option) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	o := buildOptions(retry.NewPostgreSQLClassifier(), opts)
	configurePool(poolConfig, o.logger)

	host := poolConfig.ConnConfig.Host
	database := poolConfig.ConnConfig.Database

	var pool *pgxpool.Pool
	err = o.executor.Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig.Copy())
		if err != nil {
			return wrapConnectionError(err, host, database)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return wrapConnectionError(err, host, database)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// OpenSQLite opens or creates the SQLite database at path.
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", path, sqliteBusyTimeoutMs)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}
	// Writes go through one transaction; more connections only contend.
	conn.SetMaxOpenConns(1)

	o := buildOptions(retry.NewSQLiteClassifier(), opts)
	if err := o.executor.Execute(ctx, conn.PingContext); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}
	return conn, nil
}

// wrapConnectionError adds a short hint for the common failure modes.
func wrapConnectionError(err error, host, database string) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "connection refused"):
		return fmt.Errorf("connection refused by %s (is PostgreSQL running?): %w", host, err)
	case strings.Contains(msg, "no such host"):
		return fmt.Errorf("cannot resolve host %q: %w", host, err)
	case strings.Contains(msg, "password authentication failed"):
		return fmt.Errorf("password authentication failed for database %q (check $PGPASSWORD or ~/.pgpass): %w", database, err)
	case strings.Contains(msg, "does not exist"):
		return fmt.Errorf("database %q does not exist (create it with: createdb %s): %w", database, database, err)
	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}
