package queries

import (
	"context"
	"log/slog"
	"strings"

	application "commonweal/contexts/resource-sharing/pool-service/application"
	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	"commonweal/contexts/resource-sharing/pool-service/domain/services"
	"commonweal/contexts/resource-sharing/pool-service/ports"
)

type PreviewMassDistributionQuery struct {
	PoolID       string
	ItemID       string
	RecipientIDs []string
	PerUserCap   *int64
	Strategy     string
}

// PoolDetail pairs a pool with its current ledger snapshot.
type PoolDetail struct {
	Pool      entities.Pool
	Inventory []entities.InventoryEntry
}

// CouncilPoolSummary is the list-view projection for a council's pools.
type CouncilPoolSummary struct {
	Pool       entities.Pool
	ItemCount  int
	TotalUnits int64
}

type UseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc UseCase) GetPool(ctx context.Context, poolID string) (PoolDetail, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalizedPoolID := strings.TrimSpace(poolID)
	pool, err := uc.Repository.GetPool(ctx, normalizedPoolID)
	if err != nil {
		logger.Warn("pool query get failed",
			"event", "pool_query_get_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", normalizedPoolID,
			"error", err.Error(),
		)
		return PoolDetail{}, err
	}
	inventory, err := uc.Repository.ListInventory(ctx, pool.ID)
	if err != nil {
		logger.Error("pool query inventory list failed",
			"event", "pool_query_inventory_list_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"error", err.Error(),
		)
		return PoolDetail{}, err
	}
	return PoolDetail{Pool: pool, Inventory: inventory}, nil
}

func (uc UseCase) ListCouncilPools(ctx context.Context, councilID string) ([]CouncilPoolSummary, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalizedCouncilID := strings.TrimSpace(councilID)
	pools, err := uc.Repository.ListPoolsByCouncil(ctx, normalizedCouncilID)
	if err != nil {
		logger.Warn("pool query council list failed",
			"event", "pool_query_council_list_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"council_id", normalizedCouncilID,
			"error", err.Error(),
		)
		return nil, err
	}
	summaries := make([]CouncilPoolSummary, 0, len(pools))
	for _, pool := range pools {
		inventory, err := uc.Repository.ListInventory(ctx, pool.ID)
		if err != nil {
			return nil, err
		}
		summary := CouncilPoolSummary{Pool: pool, ItemCount: len(inventory)}
		for _, entry := range inventory {
			summary.TotalUnits += entry.UnitsAvailable
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (uc UseCase) GetAvailable(ctx context.Context, poolID string, itemID string) (int64, error) {
	return uc.Repository.GetAvailable(ctx, strings.TrimSpace(poolID), strings.TrimSpace(itemID))
}

func (uc UseCase) ListInventory(ctx context.Context, poolID string) ([]entities.InventoryEntry, error) {
	return uc.Repository.ListInventory(ctx, strings.TrimSpace(poolID))
}

func (uc UseCase) ListPendingContributions(ctx context.Context, poolID string) ([]entities.Contribution, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalizedPoolID := strings.TrimSpace(poolID)
	if _, err := uc.Repository.GetPool(ctx, normalizedPoolID); err != nil {
		return nil, err
	}
	contributions, err := uc.Repository.ListPendingContributions(ctx, normalizedPoolID)
	if err != nil {
		logger.Error("pool query pending contributions failed",
			"event", "pool_query_pending_contributions_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", normalizedPoolID,
			"error", err.Error(),
		)
		return nil, err
	}
	return contributions, nil
}

func (uc UseCase) ListDistributions(ctx context.Context, poolID string) ([]entities.DistributionRecord, error) {
	logger := application.ResolveLogger(uc.Logger)
	normalizedPoolID := strings.TrimSpace(poolID)
	if _, err := uc.Repository.GetPool(ctx, normalizedPoolID); err != nil {
		return nil, err
	}
	records, err := uc.Repository.ListDistributions(ctx, normalizedPoolID)
	if err != nil {
		logger.Error("pool query distributions failed",
			"event", "pool_query_distributions_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", normalizedPoolID,
			"error", err.Error(),
		)
		return nil, err
	}
	return records, nil
}

// PreviewMassDistribution computes the plan a commit would apply, without
// mutating anything. It reads the live balance and calls the same allocator
// the committer re-runs, so an unchanged ledger yields an identical plan.
func (uc UseCase) PreviewMassDistribution(ctx context.Context, query PreviewMassDistributionQuery) (entities.AllocationPlan, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Repository.GetPool(ctx, strings.TrimSpace(query.PoolID))
	if err != nil {
		logger.Warn("mass distribution preview pool lookup failed",
			"event", "mass_distribution_preview_pool_lookup_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", strings.TrimSpace(query.PoolID),
			"error", err.Error(),
		)
		return entities.AllocationPlan{}, err
	}

	input, err := services.ResolveDistributionInput(pool, query.ItemID, query.RecipientIDs, query.PerUserCap, query.Strategy)
	if err != nil {
		logger.Warn("mass distribution preview invalid input",
			"event", "mass_distribution_preview_invalid_input",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"item_id", strings.TrimSpace(query.ItemID),
			"strategy", strings.TrimSpace(query.Strategy),
			"error", err.Error(),
		)
		return entities.AllocationPlan{}, err
	}

	available, err := uc.Repository.GetAvailable(ctx, pool.ID, input.ItemID)
	if err != nil {
		logger.Error("mass distribution preview balance read failed",
			"event", "mass_distribution_preview_balance_read_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"item_id", input.ItemID,
			"error", err.Error(),
		)
		return entities.AllocationPlan{}, err
	}

	plan, err := services.Allocate(available, input.Recipients, input.PerUserCap, input.Strategy)
	if err != nil {
		logger.Error("mass distribution preview allocation failed",
			"event", "mass_distribution_preview_allocation_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"item_id", input.ItemID,
			"strategy", string(input.Strategy),
			"error", err.Error(),
		)
		return entities.AllocationPlan{}, err
	}
	logger.Info("mass distribution previewed",
		"event", "mass_distribution_previewed",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
		"item_id", input.ItemID,
		"strategy", string(input.Strategy),
		"available", plan.Available,
		"total_allocated", plan.TotalAllocated,
	)
	return plan, nil
}
