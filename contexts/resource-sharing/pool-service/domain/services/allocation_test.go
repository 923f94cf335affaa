package services

import (
	"errors"
	"testing"
	"time"

	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	domainerrors "commonweal/contexts/resource-sharing/pool-service/domain/errors"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestAllocateFullGreedyFill(t *testing.T) {
	plan, err := Allocate(10, []string{"user-1", "user-2"}, int64Ptr(6), entities.StrategyFull)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if got := plan.Entries[0].UnitsAllocated; got != 6 {
		t.Fatalf("expected first recipient to get 6, got %d", got)
	}
	if got := plan.Entries[1].UnitsAllocated; got != 4 {
		t.Fatalf("expected second recipient to get 4, got %d", got)
	}
	if plan.TotalAllocated != 10 || plan.UnitsRemaining != 0 {
		t.Fatalf("expected total 10 remaining 0, got %d and %d", plan.TotalAllocated, plan.UnitsRemaining)
	}
}

func TestAllocatePartialMatchesFull(t *testing.T) {
	full, err := Allocate(7, []string{"user-1", "user-2", "user-3"}, int64Ptr(3), entities.StrategyFull)
	if err != nil {
		t.Fatalf("full allocate failed: %v", err)
	}
	partial, err := Allocate(7, []string{"user-1", "user-2", "user-3"}, int64Ptr(3), entities.StrategyPartial)
	if err != nil {
		t.Fatalf("partial allocate failed: %v", err)
	}
	for idx := range full.Entries {
		if full.Entries[idx].UnitsAllocated != partial.Entries[idx].UnitsAllocated {
			t.Fatalf("expected identical fills at %d, got %d and %d",
				idx, full.Entries[idx].UnitsAllocated, partial.Entries[idx].UnitsAllocated)
		}
	}
}

func TestAllocateGreedyKeepsZeroEntries(t *testing.T) {
	plan, err := Allocate(5, []string{"user-1", "user-2", "user-3"}, nil, entities.StrategyFull)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if len(plan.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(plan.Entries))
	}
	if plan.Entries[0].UnitsAllocated != 5 {
		t.Fatalf("expected first recipient to drain the balance, got %d", plan.Entries[0].UnitsAllocated)
	}
	for _, entry := range plan.Entries[1:] {
		if entry.UnitsAllocated != 0 {
			t.Fatalf("expected zero allocation for %s, got %d", entry.RecipientID, entry.UnitsAllocated)
		}
	}
}

func TestAllocateEqualRemainderFavorsEarlierRecipients(t *testing.T) {
	plan, err := Allocate(10, []string{"user-1", "user-2", "user-3"}, int64Ptr(4), entities.StrategyEqual)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	expected := []int64{4, 3, 3}
	for idx, want := range expected {
		if got := plan.Entries[idx].UnitsAllocated; got != want {
			t.Fatalf("expected entry %d to get %d, got %d", idx, want, got)
		}
	}
	if plan.UnitsRemaining != 0 {
		t.Fatalf("expected no remaining units, got %d", plan.UnitsRemaining)
	}
}

func TestAllocateEqualCapLeavesLeftoverInPool(t *testing.T) {
	plan, err := Allocate(10, []string{"user-1", "user-2", "user-3"}, int64Ptr(3), entities.StrategyEqual)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	for _, entry := range plan.Entries {
		if entry.UnitsAllocated != 3 {
			t.Fatalf("expected every recipient capped at 3, got %d for %s", entry.UnitsAllocated, entry.RecipientID)
		}
	}
	if plan.TotalAllocated != 9 || plan.UnitsRemaining != 1 {
		t.Fatalf("expected total 9 remaining 1, got %d and %d", plan.TotalAllocated, plan.UnitsRemaining)
	}
}

func TestAllocateEqualZeroPerHead(t *testing.T) {
	plan, err := Allocate(2, []string{"user-1", "user-2", "user-3"}, nil, entities.StrategyEqual)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	expected := []int64{1, 1, 0}
	for idx, want := range expected {
		if got := plan.Entries[idx].UnitsAllocated; got != want {
			t.Fatalf("expected entry %d to get %d, got %d", idx, want, got)
		}
	}
}

func TestAllocateRejectsBadInputs(t *testing.T) {
	if _, err := Allocate(-1, []string{"user-1"}, nil, entities.StrategyFull); !errors.Is(err, domainerrors.ErrInvalidDistributionInput) {
		t.Fatalf("expected invalid input for negative balance, got %v", err)
	}
	if _, err := Allocate(5, []string{"user-1"}, int64Ptr(0), entities.StrategyFull); !errors.Is(err, domainerrors.ErrInvalidDistributionInput) {
		t.Fatalf("expected invalid input for zero cap, got %v", err)
	}
	if _, err := Allocate(5, []string{"user-1", "user-1"}, nil, entities.StrategyFull); !errors.Is(err, domainerrors.ErrInvalidDistributionInput) {
		t.Fatalf("expected invalid input for duplicate recipient, got %v", err)
	}
	if _, err := Allocate(5, []string{" "}, nil, entities.StrategyFull); !errors.Is(err, domainerrors.ErrInvalidDistributionInput) {
		t.Fatalf("expected invalid input for blank recipient, got %v", err)
	}
	if _, err := Allocate(5, []string{"user-1"}, nil, entities.FulfillmentStrategy("weighted")); !errors.Is(err, domainerrors.ErrUnsupportedStrategy) {
		t.Fatalf("expected unsupported strategy, got %v", err)
	}
}

func TestAllocateZeroBalanceStillPlans(t *testing.T) {
	plan, err := Allocate(0, []string{"user-1", "user-2"}, nil, entities.StrategyEqual)
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if len(plan.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(plan.Entries))
	}
	if plan.TotalAllocated != 0 || plan.UnitsRemaining != 0 {
		t.Fatalf("expected empty plan totals, got %d and %d", plan.TotalAllocated, plan.UnitsRemaining)
	}
}

func TestResolveDistributionInputNormalizes(t *testing.T) {
	pool := entities.Pool{
		ID:              "pool-1",
		MaxUnitsPerUser: int64Ptr(5),
		AllowedItemIDs:  []string{"item-1"},
	}
	input, err := ResolveDistributionInput(pool, " item-1 ", []string{" user-1", "user-2", "user-1"}, nil, "equal")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if input.ItemID != "item-1" {
		t.Fatalf("expected trimmed item id, got %q", input.ItemID)
	}
	if len(input.Recipients) != 2 {
		t.Fatalf("expected deduplicated recipients, got %v", input.Recipients)
	}
	if input.PerUserCap == nil || *input.PerUserCap != 5 {
		t.Fatalf("expected pool cap 5, got %v", input.PerUserCap)
	}
}

func TestResolveDistributionInputOverrideWins(t *testing.T) {
	pool := entities.Pool{ID: "pool-1", MaxUnitsPerUser: int64Ptr(5)}
	input, err := ResolveDistributionInput(pool, "item-1", []string{"user-1"}, int64Ptr(2), "full")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if input.PerUserCap == nil || *input.PerUserCap != 2 {
		t.Fatalf("expected override cap 2, got %v", input.PerUserCap)
	}
}

func TestResolveDistributionInputRejections(t *testing.T) {
	closedAt := time.Now().UTC()
	closed := entities.Pool{ID: "pool-1", ClosedAt: &closedAt}
	if _, err := ResolveDistributionInput(closed, "item-1", []string{"user-1"}, nil, "full"); !errors.Is(err, domainerrors.ErrPoolClosed) {
		t.Fatalf("expected pool closed, got %v", err)
	}
	restricted := entities.Pool{ID: "pool-1", AllowedItemIDs: []string{"item-1"}}
	if _, err := ResolveDistributionInput(restricted, "item-9", []string{"user-1"}, nil, "full"); !errors.Is(err, domainerrors.ErrItemNotAllowed) {
		t.Fatalf("expected item not allowed, got %v", err)
	}
	open := entities.Pool{ID: "pool-1"}
	if _, err := ResolveDistributionInput(open, "item-1", []string{" ", ""}, nil, "full"); !errors.Is(err, domainerrors.ErrInvalidDistributionInput) {
		t.Fatalf("expected invalid input for empty recipients, got %v", err)
	}
	if _, err := ResolveDistributionInput(open, "item-1", []string{"user-1"}, nil, "lottery"); !errors.Is(err, domainerrors.ErrUnsupportedStrategy) {
		t.Fatalf("expected unsupported strategy, got %v", err)
	}
}
