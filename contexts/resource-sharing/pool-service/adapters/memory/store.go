package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	domainerrors "commonweal/contexts/resource-sharing/pool-service/domain/errors"
	"commonweal/contexts/resource-sharing/pool-service/domain/services"
	"commonweal/contexts/resource-sharing/pool-service/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

type inventoryKey struct {
	poolID string
	itemID string
}

// Store is the in-memory adapter. The single mutex is the serialization
// scope: confirm and commit hold it for their whole read-modify-write, which
// gives the same no-oversell guarantee the postgres adapter gets from row
// locks.
type Store struct {
	mu sync.RWMutex

	pools         map[string]entities.Pool
	inventory     map[inventoryKey]entities.InventoryEntry
	contributions map[string]entities.Contribution
	distributions []entities.DistributionRecord
	outbox        map[string]outboxRecord
}

func NewStore(seed []entities.Pool) *Store {
	pools := make(map[string]entities.Pool, len(seed))
	for _, pool := range seed {
		pools[pool.ID] = pool
	}
	return &Store{
		pools:         pools,
		inventory:     make(map[inventoryKey]entities.InventoryEntry),
		contributions: make(map[string]entities.Contribution),
		distributions: make([]entities.DistributionRecord, 0),
		outbox:        make(map[string]outboxRecord),
	}
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)

func (s *Store) CreatePool(_ context.Context, pool entities.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pools[pool.ID]; exists {
		return domainerrors.ErrPoolExists
	}
	s.pools[pool.ID] = pool
	return nil
}

func (s *Store) UpdatePool(_ context.Context, pool entities.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pools[pool.ID]; !exists {
		return domainerrors.ErrPoolNotFound
	}
	s.pools[pool.ID] = pool
	return nil
}

func (s *Store) GetPool(_ context.Context, poolID string) (entities.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, exists := s.pools[strings.TrimSpace(poolID)]
	if !exists {
		return entities.Pool{}, domainerrors.ErrPoolNotFound
	}
	return pool, nil
}

func (s *Store) ListPoolsByCouncil(_ context.Context, councilID string) ([]entities.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Pool, 0)
	for _, pool := range s.pools {
		if pool.CouncilID == strings.TrimSpace(councilID) {
			items = append(items, pool)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ClosePool(_ context.Context, poolID string, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, exists := s.pools[strings.TrimSpace(poolID)]
	if !exists {
		return domainerrors.ErrPoolNotFound
	}
	if pool.ClosedAt != nil {
		return domainerrors.ErrPoolClosed
	}
	closed := closedAt.UTC()
	pool.ClosedAt = &closed
	pool.UpdatedAt = closed
	s.pools[pool.ID] = pool
	return nil
}

func (s *Store) GetAvailable(_ context.Context, poolID string, itemID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.pools[strings.TrimSpace(poolID)]; !exists {
		return 0, domainerrors.ErrPoolNotFound
	}
	entry := s.inventory[inventoryKey{poolID: strings.TrimSpace(poolID), itemID: strings.TrimSpace(itemID)}]
	return entry.UnitsAvailable, nil
}

func (s *Store) ListInventory(_ context.Context, poolID string) ([]entities.InventoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.pools[strings.TrimSpace(poolID)]; !exists {
		return nil, domainerrors.ErrPoolNotFound
	}
	items := make([]entities.InventoryEntry, 0)
	for key, entry := range s.inventory {
		if key.poolID == strings.TrimSpace(poolID) {
			items = append(items, entry)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ItemID < items[j].ItemID
	})
	return items, nil
}

func (s *Store) CreateContribution(_ context.Context, contribution entities.Contribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contributions[contribution.ID]; exists {
		return domainerrors.ErrInvalidContributionInput
	}
	if _, exists := s.pools[contribution.PoolID]; !exists {
		return domainerrors.ErrPoolNotFound
	}
	s.contributions[contribution.ID] = contribution
	return nil
}

func (s *Store) GetContribution(_ context.Context, contributionID string) (entities.Contribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contribution, exists := s.contributions[strings.TrimSpace(contributionID)]
	if !exists {
		return entities.Contribution{}, domainerrors.ErrContributionNotFound
	}
	return contribution, nil
}

func (s *Store) ListPendingContributions(_ context.Context, poolID string) ([]entities.Contribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Contribution, 0)
	for _, contribution := range s.contributions {
		if contribution.PoolID != strings.TrimSpace(poolID) {
			continue
		}
		if contribution.Status != entities.ContributionStatusPending {
			continue
		}
		items = append(items, contribution)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ConfirmContribution(
	_ context.Context,
	contributionID string,
	reviewerID string,
	reviewedAt time.Time,
) (entities.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contribution, exists := s.contributions[strings.TrimSpace(contributionID)]
	if !exists {
		return entities.Contribution{}, domainerrors.ErrContributionNotFound
	}
	if !contribution.IsPending() {
		return entities.Contribution{}, domainerrors.ErrInvalidState
	}

	reviewed := reviewedAt.UTC()
	contribution.Status = entities.ContributionStatusConfirmed
	contribution.ReviewedBy = reviewerID
	contribution.ReviewedAt = &reviewed
	contribution.UpdatedAt = reviewed
	s.contributions[contribution.ID] = contribution
	s.creditLocked(contribution.PoolID, contribution.ItemID, contribution.UnitsOffered, reviewed)
	return contribution, nil
}

func (s *Store) RejectContribution(
	_ context.Context,
	contributionID string,
	reviewerID string,
	reviewedAt time.Time,
) (entities.Contribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contribution, exists := s.contributions[strings.TrimSpace(contributionID)]
	if !exists {
		return entities.Contribution{}, domainerrors.ErrContributionNotFound
	}
	if !contribution.IsPending() {
		return entities.Contribution{}, domainerrors.ErrInvalidState
	}

	reviewed := reviewedAt.UTC()
	contribution.Status = entities.ContributionStatusRejected
	contribution.ReviewedBy = reviewerID
	contribution.ReviewedAt = &reviewed
	contribution.UpdatedAt = reviewed
	s.contributions[contribution.ID] = contribution
	return contribution, nil
}

func (s *Store) CommitMassDistribution(
	_ context.Context,
	params ports.MassDistribution,
) (ports.MassDistributionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pools[params.PoolID]; !exists {
		return ports.MassDistributionResult{}, domainerrors.ErrPoolNotFound
	}
	key := inventoryKey{poolID: params.PoolID, itemID: params.ItemID}
	live := s.inventory[key].UnitsAvailable
	if live != params.AssumedAvailable {
		return ports.MassDistributionResult{}, domainerrors.ErrInventoryChanged
	}

	plan, err := services.Allocate(live, params.Recipients, params.PerUserCap, params.Strategy)
	if err != nil {
		return ports.MassDistributionResult{}, err
	}

	committedAt := params.CommittedAt.UTC()
	records := make([]entities.DistributionRecord, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		if entry.UnitsAllocated <= 0 {
			continue
		}
		records = append(records, entities.DistributionRecord{
			ID:               uuid.NewString(),
			PoolID:           params.PoolID,
			ItemID:           params.ItemID,
			RecipientID:      entry.RecipientID,
			UnitsDistributed: entry.UnitsAllocated,
			Title:            params.Title,
			Description:      params.Description,
			DistributedBy:    params.DistributedBy,
			CreatedAt:        committedAt,
		})
	}
	s.debitLocked(key, plan.TotalAllocated, committedAt)
	s.distributions = append(s.distributions, records...)
	return ports.MassDistributionResult{Plan: plan, Records: records}, nil
}

func (s *Store) CommitDirectDistribution(
	_ context.Context,
	params ports.DirectDistribution,
) (entities.DistributionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pools[params.PoolID]; !exists {
		return entities.DistributionRecord{}, domainerrors.ErrPoolNotFound
	}
	key := inventoryKey{poolID: params.PoolID, itemID: params.ItemID}
	if s.inventory[key].UnitsAvailable < params.Units {
		return entities.DistributionRecord{}, domainerrors.ErrInsufficientInventory
	}

	committedAt := params.CommittedAt.UTC()
	record := entities.DistributionRecord{
		ID:               uuid.NewString(),
		PoolID:           params.PoolID,
		ItemID:           params.ItemID,
		RecipientID:      params.RecipientID,
		UnitsDistributed: params.Units,
		Title:            params.Title,
		Description:      params.Description,
		DistributedBy:    params.DistributedBy,
		CreatedAt:        committedAt,
	}
	s.debitLocked(key, params.Units, committedAt)
	s.distributions = append(s.distributions, record)
	return record, nil
}

func (s *Store) ListDistributions(_ context.Context, poolID string) ([]entities.DistributionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.DistributionRecord, 0)
	for _, record := range s.distributions {
		if record.PoolID == strings.TrimSpace(poolID) {
			items = append(items, record)
		}
	}
	return items, nil
}

// creditLocked and debitLocked assume s.mu is held for writing.
func (s *Store) creditLocked(poolID string, itemID string, units int64, at time.Time) {
	key := inventoryKey{poolID: poolID, itemID: itemID}
	entry := s.inventory[key]
	entry.PoolID = poolID
	entry.ItemID = itemID
	entry.UnitsAvailable += units
	entry.UpdatedAt = at
	s.inventory[key] = entry
}

func (s *Store) debitLocked(key inventoryKey, units int64, at time.Time) {
	entry := s.inventory[key]
	entry.UnitsAvailable -= units
	entry.UpdatedAt = at
	s.inventory[key] = entry
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.message.Payload, payload) {
			return domainerrors.ErrInvalidState
		}
		return nil
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrInvalidState
	}
	row.published = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

// SetInventory seeds a ledger balance directly; tests use it to arrange
// starting stock without walking the contribution workflow.
func (s *Store) SetInventory(poolID string, itemID string, units int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := inventoryKey{poolID: strings.TrimSpace(poolID), itemID: strings.TrimSpace(itemID)}
	s.inventory[key] = entities.InventoryEntry{
		PoolID:         key.poolID,
		ItemID:         key.itemID,
		UnitsAvailable: units,
		UpdatedAt:      time.Now().UTC(),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// AllowAllAuthorizer is the in-memory permission collaborator.
type AllowAllAuthorizer struct{}

var _ ports.Authorizer = AllowAllAuthorizer{}

func (AllowAllAuthorizer) Check(_ context.Context, _ string, _ string, _ string) (bool, error) {
	return true, nil
}
