package entities

import (
	"strings"
	"time"
)

type FulfillmentStrategy string

const (
	StrategyFull    FulfillmentStrategy = "full"
	StrategyPartial FulfillmentStrategy = "partial"
	StrategyEqual   FulfillmentStrategy = "equal"
)

// ParseFulfillmentStrategy normalizes a wire value to a known strategy.
func ParseFulfillmentStrategy(value string) (FulfillmentStrategy, bool) {
	switch FulfillmentStrategy(strings.ToLower(strings.TrimSpace(value))) {
	case StrategyFull:
		return StrategyFull, true
	case StrategyPartial:
		return StrategyPartial, true
	case StrategyEqual:
		return StrategyEqual, true
	default:
		return "", false
	}
}

// DistributionRecord is the write-once audit row for units granted to one
// recipient. Corrections happen through new contributions or distributions,
// never by editing existing rows.
type DistributionRecord struct {
	ID               string
	PoolID           string
	ItemID           string
	RecipientID      string
	UnitsDistributed int64
	Title            string
	Description      string
	DistributedBy    string
	CreatedAt        time.Time
}

// AllocationEntry is one recipient's computed share within a plan. Entries
// with zero units stay in the plan so preview and commit diff cleanly.
type AllocationEntry struct {
	RecipientID    string
	UnitsAllocated int64
}

// AllocationPlan is the pure output of the allocation algorithm. It is never
// persisted; the committer consumes it immediately or a preview caller
// discards it. Available records the ledger balance the plan was computed
// against.
type AllocationPlan struct {
	Strategy       FulfillmentStrategy
	Available      int64
	Entries        []AllocationEntry
	TotalAllocated int64
	UnitsRemaining int64
}
