package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/enershare/ewhflex/internal/adapter/dataspace"
	domainErrors "github.com/enershare/ewhflex/internal/domain/errors"
	"github.com/enershare/ewhflex/internal/domain/model"
	"github.com/enershare/ewhflex/internal/domain/repository"
	"github.com/enershare/ewhflex/internal/engine"
	"github.com/enershare/ewhflex/internal/observability"
	"github.com/enershare/ewhflex/internal/specs"
)

// Collisions on a 360-bit identifier should not occur; the retry exists to
// honor the store uniqueness contract rather than out of expectation.
const maxIssueAttempts = 3

// Time allowed for recording a terminal status once the pipeline context is gone.
const terminalWriteTimeout = 10 * time.Second

// Launcher starts a detached unit of work.
type Launcher interface {
	Launch(name string, fn func(ctx context.Context))
}

// OrderUseCase owns the submit -> execute -> complete pipeline: prerequisite
// checks, identifier issuance, record creation and detached execution.
type OrderUseCase struct {
	orders    repository.OrderRepository
	dataspace dataspace.Client
	resolver  *specs.Resolver
	engine    engine.Engine
	launcher  Launcher
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	client dataspace.Client,
	resolver *specs.Resolver,
	eng engine.Engine,
	launcher Launcher,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		dataspace: client,
		resolver:  resolver,
		engine:    eng,
		launcher:  launcher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Submit validates the request, verifies data availability, creates the order
// record and launches detached execution. The returned order is already
// visible to Get before Submit returns.
func (u *OrderUseCase) Submit(ctx context.Context, userID string, period model.Period, supplied *model.EWHSpecs) (*model.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainErrors.ErrInvalidUser
	}
	if !period.Valid() {
		return nil, domainErrors.ErrInvalidPeriod
	}

	metadata, err := u.dataspace.Metadata(ctx, userID)
	if err != nil {
		u.metrics.RecordRejected(ctx)
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrDataUnavailable, err)
	}
	if !metadata.DataAvailable {
		u.metrics.RecordRejected(ctx)
		return nil, domainErrors.ErrDataUnavailable
	}

	order, err := u.createOrder(ctx, userID, period, supplied)
	if err != nil {
		return nil, err
	}

	u.metrics.RecordPlaced(ctx)
	u.logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("user", userID),
	)

	launched := *order
	u.launcher.Launch("order "+order.ID, func(taskCtx context.Context) {
		u.execute(taskCtx, &launched)
	})

	return order, nil
}

// Get returns the current order snapshot without blocking on execution.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	if orderID == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.Get(ctx, orderID)
}

func (u *OrderUseCase) createOrder(ctx context.Context, userID string, period model.Period, supplied *model.EWHSpecs) (*model.Order, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		id, err := NewOrderID()
		if err != nil {
			return nil, err
		}

		now := time.Now()
		order := &model.Order{
			ID:        id,
			UserID:    userID,
			Status:    model.OrderStatusPlaced,
			Period:    period,
			Specs:     supplied,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = u.orders.Create(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("create order: %w", err)
		}
	}
	return nil, fmt.Errorf("create order: identifier collision persisted after %d attempts", maxIssueAttempts)
}

// execute runs exactly once per order, only ever launched from Submit.
func (u *OrderUseCase) execute(ctx context.Context, order *model.Order) {
	start := time.Now()
	u.metrics.JobStarted(ctx)

	completed := u.runPipeline(ctx, order)

	u.metrics.JobFinished(context.WithoutCancel(ctx), completed, time.Since(start))
}

func (u *OrderUseCase) runPipeline(ctx context.Context, order *model.Order) bool {
	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusRunning, nil, ""); err != nil {
		u.fail(ctx, order, fmt.Errorf("mark running: %w", err))
		return false
	}

	resolved := u.resolver.Resolve(order.Specs)

	measurements, err := u.dataspace.Measurements(ctx, order.UserID)
	if err != nil {
		u.fail(ctx, order, fmt.Errorf("fetch measurements: %w", err))
		return false
	}

	tariffs, err := u.dataspace.Tariffs(ctx, order.UserID)
	if err != nil {
		u.fail(ctx, order, fmt.Errorf("fetch tariffs: %w", err))
		return false
	}

	result, err := u.engine.Run(ctx, order.UserID, order.Period, measurements, tariffs, resolved)
	if err != nil {
		u.fail(ctx, order, fmt.Errorf("simulation: %w", err))
		return false
	}

	writeCtx, cancel := terminalContext(ctx)
	defer cancel()
	if err := u.orders.UpdateStatus(writeCtx, order.ID, model.OrderStatusComplete, result, ""); err != nil {
		u.logger.Error("record completion failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		u.fail(ctx, order, fmt.Errorf("record completion: %w", err))
		return false
	}

	u.logger.Info("order complete", slog.String("order_id", order.ID))
	return true
}

// fail records the failed state on a best-effort basis so an order is never
// left at running once its pipeline has ended.
func (u *OrderUseCase) fail(ctx context.Context, order *model.Order, cause error) {
	u.logger.Error("pipeline failed",
		slog.String("order_id", order.ID),
		slog.String("error", cause.Error()),
	)

	writeCtx, cancel := terminalContext(ctx)
	defer cancel()
	if err := u.orders.UpdateStatus(writeCtx, order.ID, model.OrderStatusFailed, nil, cause.Error()); err != nil {
		u.logger.Error("record failure failed, order may appear stuck",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}

// terminalContext survives pipeline cancellation so terminal transitions can
// still be persisted during shutdown.
func terminalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
}
