package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingRunner records sync invocations and fails configured tenants
type recordingRunner struct {
	mu      sync.Mutex
	runs    []uuid.UUID
	failing map[uuid.UUID]error
}

func newRecordingRunner() *recordingRunner {
	return &recordingRunner{failing: make(map[uuid.UUID]error)}
}

func (r *recordingRunner) Run(ctx context.Context, tenantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, tenantID)
	return r.failing[tenantID]
}

func (r *recordingRunner) runCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

func TestNewSyncScheduler_Validation(t *testing.T) {
	runner := newRecordingRunner()

	t.Run("rejects non-positive interval", func(t *testing.T) {
		_, err := NewSyncScheduler(SyncSchedulerConfig{Interval: 0}, runner, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects nil runner", func(t *testing.T) {
		_, err := NewSyncScheduler(SyncSchedulerConfig{Interval: time.Minute}, nil, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects unparseable tenant IDs", func(t *testing.T) {
		cfg := SyncSchedulerConfig{Interval: time.Minute, TenantIDs: []string{"not-a-uuid"}}
		_, err := NewSyncScheduler(cfg, runner, zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSyncScheduler_RunsEveryConfiguredTenant(t *testing.T) {
	runner := newRecordingRunner()
	tenantA := uuid.New()
	tenantB := uuid.New()

	scheduler, err := NewSyncScheduler(SyncSchedulerConfig{
		Interval:  10 * time.Millisecond,
		TenantIDs: []string{tenantA.String(), tenantB.String()},
	}, runner, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, scheduler.Start(context.Background()))
	defer scheduler.Stop(context.Background())

	require.Eventually(t, func() bool {
		return runner.runCount() >= 2
	}, time.Second, 5*time.Millisecond)

	runner.mu.Lock()
	seen := map[uuid.UUID]bool{}
	for _, id := range runner.runs {
		seen[id] = true
	}
	runner.mu.Unlock()
	assert.True(t, seen[tenantA])
	assert.True(t, seen[tenantB])
}

func TestSyncScheduler_FailureDoesNotBlockOtherTenants(t *testing.T) {
	runner := newRecordingRunner()
	failing := uuid.New()
	healthy := uuid.New()
	runner.failing[failing] = errors.New("gateway down")

	scheduler, err := NewSyncScheduler(SyncSchedulerConfig{
		Interval:  time.Hour,
		TenantIDs: []string{failing.String(), healthy.String()},
	}, runner, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, scheduler.Start(context.Background()))
	defer scheduler.Stop(context.Background())

	require.NoError(t, scheduler.TriggerNow(context.Background()))

	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.Equal(t, []uuid.UUID{failing, healthy}, runner.runs)
}

func TestSyncScheduler_TriggerNowWhenStopped(t *testing.T) {
	runner := newRecordingRunner()
	scheduler, err := NewSyncScheduler(SyncSchedulerConfig{Interval: time.Hour}, runner, zap.NewNop())
	require.NoError(t, err)

	assert.ErrorIs(t, scheduler.TriggerNow(context.Background()), ErrSchedulerNotRunning)
}

func TestSyncScheduler_StartIsIdempotent(t *testing.T) {
	runner := newRecordingRunner()
	scheduler, err := NewSyncScheduler(SyncSchedulerConfig{Interval: time.Hour}, runner, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, scheduler.Start(context.Background()))
	require.NoError(t, scheduler.Start(context.Background()))
	require.NoError(t, scheduler.Stop(context.Background()))
	require.NoError(t, scheduler.Stop(context.Background()))
}

func TestSyncRunnerFunc(t *testing.T) {
	called := false
	var runner SyncRunner = SyncRunnerFunc(func(ctx context.Context, tenantID uuid.UUID) error {
		called = true
		return nil
	})

	require.NoError(t, runner.Run(context.Background(), uuid.New()))
	assert.True(t, called)
}
