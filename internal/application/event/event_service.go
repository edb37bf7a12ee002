// Package event ingests behavioral events with idempotent replay handling.
package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoplens/backend/internal/domain/event"
	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/domain/tenant"
)

// RecordInput carries one event submission
type RecordInput struct {
	Type           string
	Metadata       string
	IdempotencyKey *string
}

// RecordResult is the outcome of an event submission. Deduplicated is true
// when the submission replayed an already recorded event; Event then holds
// the original row.
type RecordResult struct {
	Event        *event.Event
	Deduplicated bool
}

// Service records events for tenants. Deduplication is anchored on the
// database unique constraint over (tenant, type, key); the idempotency
// store is an advisory fast path in front of it and may be nil.
type Service struct {
	events      event.Repository
	tenants     tenant.Repository
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewService creates a new event service. Pass a nil store to disable the
// fast path; deduplication still holds through the constraint.
func NewService(
	events event.Repository,
	tenants tenant.Repository,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		events:      events,
		tenants:     tenants,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		logger:      logger.Named("event"),
	}
}

// Record validates and persists one event. Replays of the same
// (tenant, type, idempotencyKey) return the originally recorded event with
// Deduplicated set instead of a second row.
func (s *Service) Record(ctx context.Context, tenantID uuid.UUID, input RecordInput) (*RecordResult, error) {
	exists, err := s.tenants.Exists(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	if input.Metadata != "" {
		if err := validateMetadata(input.Metadata); err != nil {
			return nil, err
		}
	}

	e, err := event.NewEvent(tenantID, input.Type, input.Metadata, input.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	if e.IdempotencyKey != nil && s.fastPathSeen(ctx, e) {
		result, err := s.resolveExisting(ctx, e)
		if err == nil || !errors.Is(err, shared.ErrNotFound) {
			return result, err
		}
		// The key was marked by an earlier attempt whose insert never
		// landed. Fall through and record the event now; the constraint
		// still rejects a concurrent duplicate.
	}

	if err := s.events.Save(ctx, e); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) && e.IdempotencyKey != nil {
			return s.resolveExisting(ctx, e)
		}
		return nil, err
	}

	return &RecordResult{Event: e}, nil
}

// fastPathSeen consults the idempotency store. Store failures never fail
// ingestion; the database constraint stays authoritative.
func (s *Service) fastPathSeen(ctx context.Context, e *event.Event) bool {
	if s.idempotency == nil || !s.idemConfig.Enabled {
		return false
	}

	key := idempotencyCacheKey(e.TenantID, e.Type, *e.IdempotencyKey)
	newlyMarked, err := s.idempotency.MarkProcessed(ctx, key, s.idemConfig.TTL)
	if err != nil {
		s.logger.Warn("Idempotency store unavailable, falling through to constraint",
			zap.Error(err))
		return false
	}
	return !newlyMarked
}

func (s *Service) resolveExisting(ctx context.Context, e *event.Event) (*RecordResult, error) {
	existing, err := s.events.FindByIdempotencyKey(ctx, e.TenantID, e.Type, *e.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	return &RecordResult{Event: existing, Deduplicated: true}, nil
}

func idempotencyCacheKey(tenantID uuid.UUID, eventType, key string) string {
	return fmt.Sprintf("%s:%s:%s", tenantID, eventType, key)
}

func validateMetadata(metadata string) error {
	trimmed := strings.TrimSpace(metadata)
	if !strings.HasPrefix(trimmed, "{") {
		return shared.NewDomainError("INVALID_METADATA", "metadata must be a JSON object")
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return shared.NewDomainError("INVALID_METADATA", "metadata must be a JSON object")
	}
	return nil
}
