package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/squartrbnb/user-service/internal/core/domain"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultMaxConns = 10

	// 23505 = unique_violation
	codeUniqueViolation = "23505"

	constraintUsersEmail    = "users_email_key"
	constraintUsersUsername = "users_username_key"
)

// Config captures the settings for the Postgres connection pool.
type Config struct {
	URL      string
	MaxConns int32
	Timeout  time.Duration
}

// Connect builds a pgx pool and validates connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	if poolCfg.MaxConns <= 0 {
		poolCfg.MaxConns = defaultMaxConns
	}
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return pool, nil
}

// Ping reports whether the pool can reach the server. Used by the readiness probe.
func Ping(pool *pgxpool.Pool) func(ctx context.Context) error {
	return pool.Ping
}

// storeError translates pgx errors into the domain sentinels.
func storeError(op string, err error) error {
	var connErr *pgconn.ConnectError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, domain.ErrRecordNotFound)
	case pgconn.Timeout(err), errors.As(err, &connErr), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// writeError maps a unique_violation to the constraint's field.
func writeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return storeError(op, err)
	}

	field := domain.ConflictGeneric
	switch {
	case pgErr.ConstraintName == constraintUsersEmail, pgErr.ColumnName == "email":
		field = domain.ConflictEmail
	case pgErr.ConstraintName == constraintUsersUsername, pgErr.ColumnName == "username":
		field = domain.ConflictUsername
	}
	return &domain.DuplicateKeyError{Field: field, Err: err}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
