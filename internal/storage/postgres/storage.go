package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/enershare/ewhflex/internal/domain/errors"
	"github.com/enershare/ewhflex/internal/domain/model"
)

// pgxPool abstracts the pool so tests can substitute a mock.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage is the PostgreSQL backed order repository.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            order_id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            status TEXT NOT NULL,
            period_start TIMESTAMPTZ NOT NULL,
            period_end TIMESTAMPTZ NOT NULL,
            specs JSONB,
            result JSONB,
            error_info TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// Create persists a new order with its placed status.
func (s *Storage) Create(ctx context.Context, order *model.Order) error {
	specsJSON, err := marshalOptional(order.Specs)
	if err != nil {
		return fmt.Errorf("encode specs: %w", err)
	}

	const query = `INSERT INTO orders (order_id, user_id, status, period_start, period_end, specs, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = s.pool.Exec(ctx, query,
		order.ID, order.UserID, order.Status,
		order.Period.Start, order.Period.End,
		specsJSON, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Get returns the current order snapshot.
func (s *Storage) Get(ctx context.Context, orderID string) (*model.Order, error) {
	const query = `SELECT order_id, user_id, status, period_start, period_end, specs, result, error_info, created_at, updated_at
                   FROM orders WHERE order_id=$1`

	var (
		order      model.Order
		specsJSON  []byte
		resultJSON []byte
	)
	err := s.pool.QueryRow(ctx, query, orderID).Scan(
		&order.ID, &order.UserID, &order.Status,
		&order.Period.Start, &order.Period.End,
		&specsJSON, &resultJSON, &order.ErrorInfo,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	if len(specsJSON) > 0 {
		order.Specs = &model.EWHSpecs{}
		if err := json.Unmarshal(specsJSON, order.Specs); err != nil {
			return nil, fmt.Errorf("decode specs: %w", err)
		}
	}
	if len(resultJSON) > 0 {
		order.Result = &model.OptimizationResult{}
		if err := json.Unmarshal(resultJSON, order.Result); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
	}

	return &order, nil
}

// UpdateStatus transitions the order inside a transaction. Orders already in
// a terminal state are never overwritten.
func (s *Storage) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, result *model.OptimizationResult, errorInfo string) error {
	resultJSON, err := marshalOptional(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateQuery = `UPDATE orders SET status=$1, result=$2, error_info=$3, updated_at=NOW()
                             WHERE order_id=$4 AND status NOT IN ($5, $6)`
		tag, err := tx.Exec(ctx, updateQuery,
			status, resultJSON, errorInfo, orderID,
			model.OrderStatusComplete, model.OrderStatusFailed,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		const probeQuery = `SELECT status FROM orders WHERE order_id=$1`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, probeQuery, orderID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		return domainErrors.ErrOrderTerminal
	})
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

func marshalOptional(v any) ([]byte, error) {
	switch val := v.(type) {
	case *model.EWHSpecs:
		if val == nil {
			return nil, nil
		}
	case *model.OptimizationResult:
		if val == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
