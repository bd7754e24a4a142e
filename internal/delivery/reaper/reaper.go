// Package reaper periodically removes expired authentication records.
package reaper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"otpauth/config"
	"otpauth/internal/delivery"
	"otpauth/internal/domain/lifecycle"
	"otpauth/internal/usecase"

	"go.uber.org/fx"
)

type reaper struct {
	enabled     bool
	interval    time.Duration
	maintenance usecase.MaintenanceUsecase
	logger      *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// Params holds dependencies for the reaper, injected by Fx.
type Params struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	Maintenance usecase.MaintenanceUsecase
}

// New creates the reaper delivery. When disabled, Serve returns at once.
func New(params Params) delivery.Delivery {
	r := newReaper(params.Cfg.Reaper, params.Maintenance, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: r.stop,
	})

	return r
}

func newReaper(cfg *config.ReaperConfig, maintenance usecase.MaintenanceUsecase, logger *slog.Logger) *reaper {
	r := &reaper{
		maintenance: maintenance,
		logger:      logger,
		stopCh:      make(chan struct{}),
		done:        make(chan struct{}),
	}
	if cfg != nil {
		r.enabled = cfg.Enabled && cfg.Interval > 0
		r.interval = cfg.Interval
	}

	return r
}

// Serve runs one cleanup per interval until stopped.
func (r *reaper) Serve(ctx context.Context) error {
	defer close(r.done)

	if !r.enabled {
		r.logger.Info("Reaper disabled")

		return nil
	}

	r.logger.Info("Starting reaper", slog.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stopCh:
			return nil
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *reaper) runOnce(ctx context.Context) {
	// A pass must not outlive shutdown by more than the hook budget.
	runCtx, cancel := context.WithTimeout(ctx, r.interval+lifecycle.DefaultTimeout)
	defer cancel()

	go func() {
		select {
		case <-r.stopCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	if _, err := r.maintenance.Cleanup(runCtx); err != nil {
		r.logger.Error("Reaper pass failed", slog.Any("error", err))
	}
}

func (r *reaper) stop(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.stopCh) })

	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-r.done:
	case <-shutdownCtx.Done():
		r.logger.Warn("Reaper did not stop in time")
	}

	return nil
}
