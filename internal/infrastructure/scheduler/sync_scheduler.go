package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncRunner executes one full sync for a tenant. The application sync
// service satisfies this through a thin adapter in the wiring layer.
type SyncRunner interface {
	Run(ctx context.Context, tenantID uuid.UUID) error
}

// SyncRunnerFunc adapts a function to the SyncRunner interface
type SyncRunnerFunc func(ctx context.Context, tenantID uuid.UUID) error

// Run calls the wrapped function
func (f SyncRunnerFunc) Run(ctx context.Context, tenantID uuid.UUID) error {
	return f(ctx, tenantID)
}

// SyncSchedulerConfig holds configuration for the background sync scheduler
type SyncSchedulerConfig struct {
	// Enabled indicates if the scheduler is enabled
	Enabled bool
	// Interval is the fixed delay between sync rounds
	Interval time.Duration
	// TenantIDs is the set of tenants synced every round. Unparseable
	// entries are rejected at construction.
	TenantIDs []string
}

// DefaultSyncSchedulerConfig returns default sync scheduler configuration
func DefaultSyncSchedulerConfig() SyncSchedulerConfig {
	return SyncSchedulerConfig{
		Enabled:  false,
		Interval: 15 * time.Minute,
	}
}

// SyncScheduler periodically runs a full sync for a configured set of
// tenants. A failing tenant never blocks the rest of the round, and a
// round that overruns the interval simply delays the next tick.
type SyncScheduler struct {
	config    SyncSchedulerConfig
	runner    SyncRunner
	tenantIDs []uuid.UUID
	logger    *zap.Logger

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(config SyncSchedulerConfig, runner SyncRunner, logger *zap.Logger) (*SyncScheduler, error) {
	if config.Interval <= 0 {
		return nil, ErrInvalidConfig
	}
	if runner == nil {
		return nil, ErrInvalidConfig
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tenantIDs := make([]uuid.UUID, 0, len(config.TenantIDs))
	for _, raw := range config.TenantIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidConfig
		}
		tenantIDs = append(tenantIDs, id)
	}

	return &SyncScheduler{
		config:    config,
		runner:    runner,
		tenantIDs: tenantIDs,
		logger:    logger,
	}, nil
}

// Start begins the periodic sync loop
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Int("tenants", len(s.tenantIDs)),
	)

	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight round
// to finish or the given context to expire
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerNow runs one sync round immediately, outside the tick cadence
func (s *SyncScheduler) TriggerNow(ctx context.Context) error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}

	s.syncRound(ctx)
	return nil
}

// run is the main scheduler loop
func (s *SyncScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncRound(ctx)
		}
	}
}

// syncRound syncs every configured tenant once, isolating failures
func (s *SyncScheduler) syncRound(ctx context.Context) {
	for _, tenantID := range s.tenantIDs {
		if ctx.Err() != nil {
			return
		}

		start := time.Now()
		if err := s.runner.Run(ctx, tenantID); err != nil {
			s.logger.Error("Scheduled sync failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("Scheduled sync completed",
			zap.String("tenant_id", tenantID.String()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
