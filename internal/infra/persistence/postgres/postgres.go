package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"vitrina/config"
	"vitrina/internal/domain/lifecycle"
	"vitrina/internal/infra/metrics"
)

const (
	poolSampleInterval    = 5 * time.Second
	poolWaitWarnThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the pool described by the postgres section. The pool is pinged on start and
// sampled into the metrics registry until stop.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres section is required when storage.driver is postgres")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Read-modify-write paths open explicit transactions through inTx.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	sampler := &poolSampler{
		db:       sqlDB,
		logger:   params.Logger.With(slog.String("component", "postgres")),
		interval: poolSampleInterval,
	}
	params.Append(fx.Hook{
		OnStart: sampler.start,
		OnStop:  sampler.stop,
	})

	return db, nil
}

// poolSampler owns the sql.DB lifecycle: ping on start, periodic stats, close on stop.
type poolSampler struct {
	db       *sql.DB
	logger   *slog.Logger
	interval time.Duration

	prev   sql.DBStats
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *poolSampler) start(startCtx context.Context) error {
	ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping PostgreSQL")
	}

	loopCtx, stop := context.WithCancel(context.Background())
	s.cancel = stop
	s.done = make(chan struct{})
	s.prev = s.db.Stats()
	go s.run(loopCtx)

	return nil
}

func (s *poolSampler) stop(_ context.Context) error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}

	return errors.Wrap(s.db.Close(), "failed to close PostgreSQL pool")
}

func (s *poolSampler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample(ctx, s.db.Stats())
		}
	}
}

func (s *poolSampler) sample(ctx context.Context, cur sql.DBStats) {
	waits := cur.WaitCount - s.prev.WaitCount
	waited := cur.WaitDuration - s.prev.WaitDuration
	s.prev = cur

	metrics.RecordDBPool(cur.OpenConnections, cur.InUse, cur.Idle, waits, waited)
	if waits <= 0 {
		return
	}

	level := slog.LevelDebug
	if waited >= poolWaitWarnThreshold {
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, "Connection pool wait",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avg_wait", waited/time.Duration(waits)),
		slog.Int("in_use", cur.InUse),
		slog.Int("max_open", cur.MaxOpenConnections),
	)
}
