package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/lockboxd/lockbox/internal/config"
	"github.com/lockboxd/lockbox/internal/logger"
)

// DB wraps the shared *sql.DB connection pool together with the per-query
// timeout every repository applies, so a stalled backing store cannot pin
// request-handling goroutines indefinitely.
type DB struct {
	*sql.DB
	queryTimeout time.Duration
	logger       *logger.Logger
}

// NewConnectPostgres opens a pgx-backed database/sql connection pool for the
// given DSN, verifies it with a ping and returns the [*DB] wrapper used by
// all repositories.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// bound the pool
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)
	conn.SetConnMaxIdleTime(30 * time.Second)

	// ping database
	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:           conn,
		queryTimeout: cfg.QueryTimeout,
		logger:       log,
	}, nil
}

// queryContext derives a context bounded by the configured query timeout.
func (db *DB) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// withinTransaction runs fn inside a single transaction. Any error from fn
// rolls everything back; partial application is impossible. A commit failure
// is reported as [ErrCommitingTransaction], at which point the transaction
// is considered rolled back.
func (db *DB) withinTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			db.logger.Err(rbErr).Str("func", "DB.withinTransaction").Msg("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// postgresError extracts the PostgreSQL error code from a driver error,
// or returns the empty string when err is not a PgError.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
