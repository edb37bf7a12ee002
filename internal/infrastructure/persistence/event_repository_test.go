package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/backend/internal/domain/event"
	"github.com/shoplens/backend/internal/domain/shared"
)

func TestEventRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	e, err := event.NewEvent(tenantID, "cart_abandoned", `{"cart_id":"c1"}`, strPtr("key-1"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, e))

	found, err := repo.FindByIdempotencyKey(ctx, tenantID, "cart_abandoned", "key-1")
	require.NoError(t, err)
	assert.Equal(t, e.ID, found.ID)
	assert.Equal(t, `{"cart_id":"c1"}`, found.Metadata)
}

func TestEventRepository_DuplicateKeyRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first, err := event.NewEvent(tenantID, "checkout_started", "", strPtr("key-1"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	replay, err := event.NewEvent(tenantID, "checkout_started", "", strPtr("key-1"))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, replay), shared.ErrAlreadyExists)

	count, err := repo.CountForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEventRepository_SameKeyDifferentScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()

	a, err := event.NewEvent(tenantA, "cart_abandoned", "", strPtr("key-1"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))

	// Same key under another tenant is a distinct event
	b, err := event.NewEvent(tenantB, "cart_abandoned", "", strPtr("key-1"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, b))

	// Same key under another type is a distinct event too
	c, err := event.NewEvent(tenantA, "checkout_started", "", strPtr("key-1"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))
}

func TestEventRepository_NilKeysNeverCollide(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEventRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	for i := 0; i < 3; i++ {
		e, err := event.NewEvent(tenantID, "page_view", "", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, e))
	}

	count, err := repo.CountForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
