// Package worker hosts background loops that run next to the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/fx"

	"vitrina/config"
	"vitrina/internal/delivery"
	deliverycontext "vitrina/internal/delivery/context"
	"vitrina/internal/domain/lifecycle"
	"vitrina/internal/usecase"
)

type adSweeper struct {
	interval time.Duration
	usecase  usecase.BusinessUsecase
	logger   *slog.Logger
	now      func() time.Time

	started  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// AdSweeperParams holds dependencies for the ad expiry sweeper
type AdSweeperParams struct {
	fx.In

	Lc              fx.Lifecycle
	Config          *config.Config
	Logger          *slog.Logger
	BusinessUsecase usecase.BusinessUsecase
}

// NewAdSweeper creates the worker that renews or downgrades expired paid placements.
func NewAdSweeper(params AdSweeperParams) (delivery.Delivery, error) {
	s := newAdSweeper(params.BusinessUsecase, params.Config.Ads.SweepInterval, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

func newAdSweeper(uc usecase.BusinessUsecase, interval time.Duration, logger *slog.Logger) *adSweeper {
	return &adSweeper{
		interval: interval,
		usecase:  uc,
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Serve sweeps once right away and then on every tick until stopped.
func (s *adSweeper) Serve(ctx context.Context) error {
	s.started.Store(true)
	defer close(s.done)

	s.logger.Info("Starting ad expiry sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *adSweeper) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	ctx = deliverycontext.WithLogger(ctx, s.logger.With(slog.String("worker", "ad_sweeper")))

	swept, err := s.usecase.SweepExpiredAds(ctx, s.now())
	if err != nil {
		s.logger.Error("Ad expiry sweep failed", slog.Any("error", err), slog.Int("swept", swept))

		return
	}
	if swept > 0 {
		s.logger.Info("Ad expiry sweep finished", slog.Int("swept", swept))
	}
}

// stop ends the loop and waits for an in-flight sweep.
func (s *adSweeper) stop(ctx context.Context) error {
	s.logger.Info("Shutting down ad expiry sweeper")
	s.stopOnce.Do(func() { close(s.stopCh) })
	if !s.started.Load() {
		return nil
	}

	select {
	case <-s.done:
	case <-ctx.Done():
	}

	return nil
}
