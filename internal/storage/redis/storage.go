package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	rd "github.com/redis/go-redis/v9"

	domainErrors "github.com/enershare/ewhflex/internal/domain/errors"
	"github.com/enershare/ewhflex/internal/domain/model"
)

// WATCH transactions abort when the key changes mid-flight; with a single
// writer per order a couple of retries is plenty.
const maxTxRetries = 3

// Storage is the redis backed order repository. Orders live as hashes with a
// retention TTL.
type Storage struct {
	client    *rd.Client
	retention time.Duration
	logger    *slog.Logger
}

// New constructs redis storage.
func New(client *rd.Client, retention time.Duration, logger *slog.Logger) *Storage {
	return &Storage{client: client, retention: retention, logger: logger}
}

// Close releases the client connection pool.
func (s *Storage) Close() error {
	return s.client.Close()
}

// Create persists a new order, enforcing identifier uniqueness.
func (s *Storage) Create(ctx context.Context, order *model.Order) error {
	key := orderKey(order.ID)

	created, err := s.client.HSetNX(ctx, key, "order_id", order.ID).Result()
	if err != nil {
		return err
	}
	if !created {
		return domainErrors.ErrAlreadyExists
	}

	fields, err := orderFields(order)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if s.retention > 0 {
		pipe.Expire(ctx, key, s.retention)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Get returns the current order snapshot.
func (s *Storage) Get(ctx context.Context, orderID string) (*model.Order, error) {
	m, err := s.client.HGetAll(ctx, orderKey(orderID)).Result()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return orderFromFields(m)
}

// UpdateStatus transitions the order under an optimistic WATCH transaction so
// the terminal guard and the write are atomic.
func (s *Storage) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, result *model.OptimizationResult, errorInfo string) error {
	key := orderKey(orderID)

	txFn := func(tx *rd.Tx) error {
		current, err := tx.HGet(ctx, key, "status").Result()
		if err != nil {
			if errors.Is(err, rd.Nil) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if model.OrderStatus(current).Terminal() {
			return domainErrors.ErrOrderTerminal
		}

		fields := map[string]any{
			"status":     string(status),
			"error_info": errorInfo,
			"updated_at": time.Now().Format(time.RFC3339Nano),
		}
		if result != nil {
			encoded, err := json.Marshal(result)
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fields["result"] = string(encoded)
		}

		_, err = tx.TxPipelined(ctx, func(pipe rd.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			if s.retention > 0 {
				pipe.Expire(ctx, key, s.retention)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txFn, key)
		if !errors.Is(err, rd.TxFailedErr) {
			return err
		}
		s.logger.Warn("order update retried after concurrent modification",
			slog.String("order_id", orderID),
		)
	}
	return fmt.Errorf("update order %s: transaction kept failing", orderID)
}

func orderFields(order *model.Order) (map[string]any, error) {
	fields := map[string]any{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"status":       string(order.Status),
		"period_start": order.Period.Start.Format(time.RFC3339Nano),
		"period_end":   order.Period.End.Format(time.RFC3339Nano),
		"error_info":   order.ErrorInfo,
		"created_at":   order.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   order.UpdatedAt.Format(time.RFC3339Nano),
	}
	if order.Specs != nil {
		encoded, err := json.Marshal(order.Specs)
		if err != nil {
			return nil, fmt.Errorf("encode specs: %w", err)
		}
		fields["specs"] = string(encoded)
	}
	return fields, nil
}

func orderFromFields(m map[string]string) (*model.Order, error) {
	order := &model.Order{
		ID:        m["order_id"],
		UserID:    m["user_id"],
		Status:    model.OrderStatus(m["status"]),
		ErrorInfo: m["error_info"],
	}

	var err error
	if order.Period.Start, err = parseTime(m["period_start"]); err != nil {
		return nil, err
	}
	if order.Period.End, err = parseTime(m["period_end"]); err != nil {
		return nil, err
	}
	if order.CreatedAt, err = parseTime(m["created_at"]); err != nil {
		return nil, err
	}
	if order.UpdatedAt, err = parseTime(m["updated_at"]); err != nil {
		return nil, err
	}

	if raw := m["specs"]; raw != "" {
		order.Specs = &model.EWHSpecs{}
		if err := json.Unmarshal([]byte(raw), order.Specs); err != nil {
			return nil, fmt.Errorf("decode specs: %w", err)
		}
	}
	if raw := m["result"]; raw != "" {
		order.Result = &model.OptimizationResult{}
		if err := json.Unmarshal([]byte(raw), order.Result); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
	}

	return order, nil
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp %q: %w", raw, err)
	}
	return ts, nil
}
