package services

import (
	"strings"

	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	domainerrors "commonweal/contexts/resource-sharing/pool-service/domain/errors"
)

// Allocate computes a distribution plan for the given ledger balance. It is
// the single allocation implementation: preview and commit both call it, so
// their plans are identical for identical inputs.
//
// Recipient order is caller-significant. Under full and partial the walk is a
// greedy left-to-right fill, so earlier recipients are favored when the
// balance runs out. Under equal, the integer-division remainder goes one unit
// each to the first recipients in order. Recipients whose share computes to
// zero stay in the plan with zero units.
func Allocate(
	available int64,
	recipients []string,
	perUserCap *int64,
	strategy entities.FulfillmentStrategy,
) (entities.AllocationPlan, error) {
	if available < 0 {
		return entities.AllocationPlan{}, domainerrors.ErrInvalidDistributionInput
	}
	if perUserCap != nil && *perUserCap <= 0 {
		return entities.AllocationPlan{}, domainerrors.ErrInvalidDistributionInput
	}
	seen := make(map[string]struct{}, len(recipients))
	for _, recipientID := range recipients {
		if strings.TrimSpace(recipientID) == "" {
			return entities.AllocationPlan{}, domainerrors.ErrInvalidDistributionInput
		}
		if _, dup := seen[recipientID]; dup {
			return entities.AllocationPlan{}, domainerrors.ErrInvalidDistributionInput
		}
		seen[recipientID] = struct{}{}
	}

	plan := entities.AllocationPlan{
		Strategy:  strategy,
		Available: available,
		Entries:   make([]entities.AllocationEntry, 0, len(recipients)),
	}

	switch strategy {
	case entities.StrategyFull, entities.StrategyPartial:
		// Full and partial share the same greedy fill; the distinction is
		// caller policy over how the recipient list was assembled.
		remaining := available
		for _, recipientID := range recipients {
			grant := remaining
			if perUserCap != nil && grant > *perUserCap {
				grant = *perUserCap
			}
			plan.Entries = append(plan.Entries, entities.AllocationEntry{
				RecipientID:    recipientID,
				UnitsAllocated: grant,
			})
			remaining -= grant
		}
	case entities.StrategyEqual:
		if count := int64(len(recipients)); count > 0 {
			base := available / count
			remainder := available % count
			for idx, recipientID := range recipients {
				grant := base
				if int64(idx) < remainder {
					grant++
				}
				// Capped leftovers are not redistributed in this pass.
				if perUserCap != nil && grant > *perUserCap {
					grant = *perUserCap
				}
				plan.Entries = append(plan.Entries, entities.AllocationEntry{
					RecipientID:    recipientID,
					UnitsAllocated: grant,
				})
			}
		}
	default:
		return entities.AllocationPlan{}, domainerrors.ErrUnsupportedStrategy
	}

	for _, entry := range plan.Entries {
		plan.TotalAllocated += entry.UnitsAllocated
	}
	plan.UnitsRemaining = available - plan.TotalAllocated

	if err := CheckPlanInvariants(plan, perUserCap); err != nil {
		return entities.AllocationPlan{}, err
	}
	return plan, nil
}

// CheckPlanInvariants asserts the allocation postconditions: no entry over
// the cap, no negative entry, and total within the available balance. A
// failure here is a bug in the allocator, not a user-facing condition.
func CheckPlanInvariants(plan entities.AllocationPlan, perUserCap *int64) error {
	var total int64
	for _, entry := range plan.Entries {
		if entry.UnitsAllocated < 0 {
			return domainerrors.ErrCapExceeded
		}
		if perUserCap != nil && entry.UnitsAllocated > *perUserCap {
			return domainerrors.ErrCapExceeded
		}
		total += entry.UnitsAllocated
	}
	if total != plan.TotalAllocated || total > plan.Available {
		return domainerrors.ErrCapExceeded
	}
	return nil
}

// DistributionInput is a normalized, validated allocation request. Preview
// and commit both resolve through ResolveDistributionInput so the allocator
// always sees identical inputs for identical requests.
type DistributionInput struct {
	ItemID     string
	Recipients []string
	PerUserCap *int64
	Strategy   entities.FulfillmentStrategy
}

func ResolveDistributionInput(
	pool entities.Pool,
	itemID string,
	recipientIDs []string,
	capOverride *int64,
	strategy string,
) (DistributionInput, error) {
	if !pool.IsOpen() {
		return DistributionInput{}, domainerrors.ErrPoolClosed
	}
	normalizedItemID := strings.TrimSpace(itemID)
	if normalizedItemID == "" {
		return DistributionInput{}, domainerrors.ErrInvalidDistributionInput
	}
	if !pool.AllowsItem(normalizedItemID) {
		return DistributionInput{}, domainerrors.ErrItemNotAllowed
	}
	parsedStrategy, ok := entities.ParseFulfillmentStrategy(strategy)
	if !ok {
		return DistributionInput{}, domainerrors.ErrUnsupportedStrategy
	}
	recipients := NormalizeRecipients(recipientIDs)
	if len(recipients) == 0 {
		return DistributionInput{}, domainerrors.ErrInvalidDistributionInput
	}
	effectiveCap := pool.EffectiveCap(capOverride)
	if effectiveCap != nil && *effectiveCap <= 0 {
		return DistributionInput{}, domainerrors.ErrInvalidDistributionInput
	}
	return DistributionInput{
		ItemID:     normalizedItemID,
		Recipients: recipients,
		PerUserCap: effectiveCap,
		Strategy:   parsedStrategy,
	}, nil
}

// NormalizeRecipients trims blanks and removes duplicates while preserving
// the caller's order, which encodes priority.
func NormalizeRecipients(recipients []string) []string {
	normalized := make([]string, 0, len(recipients))
	seen := make(map[string]struct{}, len(recipients))
	for _, recipientID := range recipients {
		value := strings.TrimSpace(recipientID)
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		normalized = append(normalized, value)
	}
	return normalized
}
