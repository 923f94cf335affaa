package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	domainerrors "commonweal/contexts/resource-sharing/pool-service/domain/errors"
	"commonweal/contexts/resource-sharing/pool-service/ports"
)

func seedPool(id string) entities.Pool {
	now := time.Now().UTC()
	return entities.Pool{
		ID:          id,
		CommunityID: "community-1",
		CouncilID:   "council-1",
		Name:        "winter supplies",
		CreatedBy:   "steward-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestConfirmContributionCreditsOnce(t *testing.T) {
	store := NewStore([]entities.Pool{seedPool("pool-1")})
	now := time.Now().UTC()
	if err := store.CreateContribution(context.Background(), entities.Contribution{
		ID:            "contribution-1",
		PoolID:        "pool-1",
		ItemID:        "item-1",
		ContributorID: "member-1",
		UnitsOffered:  7,
		Status:        entities.ContributionStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}); err != nil {
		t.Fatalf("create contribution failed: %v", err)
	}

	confirmed, err := store.ConfirmContribution(context.Background(), "contribution-1", "steward-1", now)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != entities.ContributionStatusConfirmed {
		t.Fatalf("expected confirmed status, got %s", confirmed.Status)
	}
	available, err := store.GetAvailable(context.Background(), "pool-1", "item-1")
	if err != nil {
		t.Fatalf("get available failed: %v", err)
	}
	if available != 7 {
		t.Fatalf("expected 7 units credited, got %d", available)
	}

	if _, err := store.ConfirmContribution(context.Background(), "contribution-1", "steward-1", now); !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on second confirm, got %v", err)
	}
	available, _ = store.GetAvailable(context.Background(), "pool-1", "item-1")
	if available != 7 {
		t.Fatalf("expected balance unchanged after replayed confirm, got %d", available)
	}
}

func TestCommitMassDistributionConservesUnits(t *testing.T) {
	store := NewStore([]entities.Pool{seedPool("pool-1")})
	store.SetInventory("pool-1", "item-1", 10)

	perUserCap := int64(4)
	result, err := store.CommitMassDistribution(context.Background(), ports.MassDistribution{
		PoolID:           "pool-1",
		ItemID:           "item-1",
		Recipients:       []string{"user-1", "user-2", "user-3"},
		PerUserCap:       &perUserCap,
		Strategy:         entities.StrategyEqual,
		AssumedAvailable: 10,
		DistributedBy:    "steward-1",
		CommittedAt:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if result.Plan.TotalAllocated != 10 {
		t.Fatalf("expected 10 units allocated, got %d", result.Plan.TotalAllocated)
	}
	available, _ := store.GetAvailable(context.Background(), "pool-1", "item-1")
	if available != 0 {
		t.Fatalf("expected drained balance, got %d", available)
	}
	var recorded int64
	for _, record := range result.Records {
		recorded += record.UnitsDistributed
	}
	if recorded != result.Plan.TotalAllocated {
		t.Fatalf("expected records to cover the allocated total, got %d and %d", recorded, result.Plan.TotalAllocated)
	}
}

func TestCommitMassDistributionFailsOnStaleBalance(t *testing.T) {
	store := NewStore([]entities.Pool{seedPool("pool-1")})
	store.SetInventory("pool-1", "item-1", 8)

	_, err := store.CommitMassDistribution(context.Background(), ports.MassDistribution{
		PoolID:           "pool-1",
		ItemID:           "item-1",
		Recipients:       []string{"user-1", "user-2"},
		Strategy:         entities.StrategyEqual,
		AssumedAvailable: 10,
		DistributedBy:    "steward-1",
		CommittedAt:      time.Now().UTC(),
	})
	if !errors.Is(err, domainerrors.ErrInventoryChanged) {
		t.Fatalf("expected inventory changed, got %v", err)
	}
	available, _ := store.GetAvailable(context.Background(), "pool-1", "item-1")
	if available != 8 {
		t.Fatalf("expected untouched balance, got %d", available)
	}
}

func TestCommitMassDistributionSkipsZeroRecords(t *testing.T) {
	store := NewStore([]entities.Pool{seedPool("pool-1")})
	store.SetInventory("pool-1", "item-1", 1)

	result, err := store.CommitMassDistribution(context.Background(), ports.MassDistribution{
		PoolID:           "pool-1",
		ItemID:           "item-1",
		Recipients:       []string{"user-1", "user-2", "user-3"},
		Strategy:         entities.StrategyEqual,
		AssumedAvailable: 1,
		DistributedBy:    "steward-1",
		CommittedAt:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if len(result.Plan.Entries) != 3 {
		t.Fatalf("expected plan to keep zero entries, got %d", len(result.Plan.Entries))
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(result.Records))
	}
}

func TestCommitDirectDistributionGuardsBalance(t *testing.T) {
	store := NewStore([]entities.Pool{seedPool("pool-1")})
	store.SetInventory("pool-1", "item-1", 3)

	if _, err := store.CommitDirectDistribution(context.Background(), ports.DirectDistribution{
		PoolID:        "pool-1",
		ItemID:        "item-1",
		RecipientID:   "user-1",
		Units:         5,
		DistributedBy: "steward-1",
		CommittedAt:   time.Now().UTC(),
	}); !errors.Is(err, domainerrors.ErrInsufficientInventory) {
		t.Fatalf("expected insufficient inventory, got %v", err)
	}

	record, err := store.CommitDirectDistribution(context.Background(), ports.DirectDistribution{
		PoolID:        "pool-1",
		ItemID:        "item-1",
		RecipientID:   "user-1",
		Units:         3,
		DistributedBy: "steward-1",
		CommittedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("direct commit failed: %v", err)
	}
	if record.UnitsDistributed != 3 {
		t.Fatalf("expected 3 units recorded, got %d", record.UnitsDistributed)
	}
	available, _ := store.GetAvailable(context.Background(), "pool-1", "item-1")
	if available != 0 {
		t.Fatalf("expected drained balance, got %d", available)
	}
}

func TestConcurrentCommitsNeverOversell(t *testing.T) {
	store := NewStore([]entities.Pool{seedPool("pool-1")})
	store.SetInventory("pool-1", "item-1", 10)

	var wg sync.WaitGroup
	committed := make([]bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := store.CommitDirectDistribution(context.Background(), ports.DirectDistribution{
				PoolID:        "pool-1",
				ItemID:        "item-1",
				RecipientID:   "user-1",
				Units:         3,
				DistributedBy: "steward-1",
				CommittedAt:   time.Now().UTC(),
			})
			committed[idx] = err == nil
		}(i)
	}
	wg.Wait()

	var succeeded int64
	for _, ok := range committed {
		if ok {
			succeeded++
		}
	}
	available, _ := store.GetAvailable(context.Background(), "pool-1", "item-1")
	if available < 0 {
		t.Fatalf("balance went negative: %d", available)
	}
	if available+succeeded*3 != 10 {
		t.Fatalf("units not conserved: %d remaining after %d commits", available, succeeded)
	}
	if succeeded != 3 {
		t.Fatalf("expected exactly 3 commits to win, got %d", succeeded)
	}
}

func TestClosePoolIsTerminal(t *testing.T) {
	store := NewStore([]entities.Pool{seedPool("pool-1")})
	now := time.Now().UTC()
	if err := store.ClosePool(context.Background(), "pool-1", now); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := store.ClosePool(context.Background(), "pool-1", now); !errors.Is(err, domainerrors.ErrPoolClosed) {
		t.Fatalf("expected pool closed on second close, got %v", err)
	}
	pool, err := store.GetPool(context.Background(), "pool-1")
	if err != nil {
		t.Fatalf("get pool failed: %v", err)
	}
	if pool.IsOpen() {
		t.Fatalf("expected closed pool")
	}
}
