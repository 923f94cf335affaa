package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	application "commonweal/contexts/resource-sharing/pool-service/application"
	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	domainerrors "commonweal/contexts/resource-sharing/pool-service/domain/errors"
	"commonweal/contexts/resource-sharing/pool-service/domain/services"
	"commonweal/contexts/resource-sharing/pool-service/ports"
)

type CreatePoolCommand struct {
	CommunityID         string
	CouncilID           string
	Name                string
	Description         string
	MaxUnitsPerUser     *int64
	MinimumContribution *int64
	AllowedItemIDs      []string
	CreatedBy           string
}

type UpdatePoolCommand struct {
	PoolID              string
	Name                *string
	Description         *string
	MaxUnitsPerUser     *int64
	MinimumContribution *int64
	// AllowedItemIDs replaces the whitelist when non-nil; an empty slice
	// clears it (any item allowed).
	AllowedItemIDs []string
	UpdatedBy      string
}

type ClosePoolCommand struct {
	PoolID   string
	ClosedBy string
}

type ContributeCommand struct {
	PoolID        string
	ItemID        string
	ContributorID string
	UnitsOffered  int64
	Title         string
	Message       string
}

type ReviewContributionCommand struct {
	PoolID         string
	ContributionID string
	ReviewerID     string
}

type DistributeCommand struct {
	PoolID        string
	ItemID        string
	RecipientID   string
	Units         int64
	Title         string
	Description   string
	DistributedBy string
}

type MassDistributeCommand struct {
	PoolID        string
	ItemID        string
	RecipientIDs  []string
	PerUserCap    *int64
	Strategy      string
	// ExpectedAvailable is the balance the caller's previewed plan assumed.
	// The committer fails with ErrInventoryChanged when the live balance
	// differs, instead of silently truncating the plan.
	ExpectedAvailable int64
	Title             string
	Description       string
	DistributedBy     string
}

type UseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Outbox     ports.OutboxWriter
	Logger     *slog.Logger
}

func (uc UseCase) CreatePool(ctx context.Context, cmd CreatePoolCommand) (entities.Pool, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool := entities.Pool{
		CommunityID:         strings.TrimSpace(cmd.CommunityID),
		CouncilID:           strings.TrimSpace(cmd.CouncilID),
		Name:                strings.TrimSpace(cmd.Name),
		Description:         strings.TrimSpace(cmd.Description),
		MaxUnitsPerUser:     cmd.MaxUnitsPerUser,
		MinimumContribution: cmd.MinimumContribution,
		AllowedItemIDs:      services.NormalizeRecipients(cmd.AllowedItemIDs),
		CreatedBy:           strings.TrimSpace(cmd.CreatedBy),
	}
	if pool.CommunityID == "" || pool.CouncilID == "" || pool.Name == "" || pool.CreatedBy == "" {
		logger.Warn("pool create invalid input",
			"event", "pool_create_invalid_input",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"council_id", pool.CouncilID,
			"name", pool.Name,
		)
		return entities.Pool{}, domainerrors.ErrInvalidPoolInput
	}
	if err := validatePoolLimits(pool.MaxUnitsPerUser, pool.MinimumContribution); err != nil {
		logger.Warn("pool create invalid limits",
			"event", "pool_create_invalid_limits",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"council_id", pool.CouncilID,
			"error", err.Error(),
		)
		return entities.Pool{}, err
	}

	poolID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("pool create id generation failed",
			"event", "pool_create_id_generation_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Pool{}, err
	}
	now := uc.now()
	pool.ID = poolID
	pool.CreatedAt = now
	pool.UpdatedAt = now

	if err := uc.Repository.CreatePool(ctx, pool); err != nil {
		logger.Error("pool create persistence failed",
			"event", "pool_create_persistence_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"error", err.Error(),
		)
		return entities.Pool{}, err
	}
	logger.Info("pool created",
		"event", "pool_created",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
		"council_id", pool.CouncilID,
	)
	return pool, nil
}

func (uc UseCase) UpdatePool(ctx context.Context, cmd UpdatePoolCommand) (entities.Pool, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Repository.GetPool(ctx, strings.TrimSpace(cmd.PoolID))
	if err != nil {
		logger.Warn("pool update lookup failed",
			"event", "pool_update_lookup_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", strings.TrimSpace(cmd.PoolID),
			"error", err.Error(),
		)
		return entities.Pool{}, err
	}
	if !pool.IsOpen() {
		logger.Warn("pool update rejected for closed pool",
			"event", "pool_update_pool_closed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
		)
		return entities.Pool{}, domainerrors.ErrPoolClosed
	}

	if cmd.Name != nil {
		if strings.TrimSpace(*cmd.Name) == "" {
			return entities.Pool{}, domainerrors.ErrInvalidPoolInput
		}
		pool.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Description != nil {
		pool.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.MaxUnitsPerUser != nil {
		pool.MaxUnitsPerUser = cmd.MaxUnitsPerUser
	}
	if cmd.MinimumContribution != nil {
		pool.MinimumContribution = cmd.MinimumContribution
	}
	if cmd.AllowedItemIDs != nil {
		pool.AllowedItemIDs = services.NormalizeRecipients(cmd.AllowedItemIDs)
	}
	if err := validatePoolLimits(pool.MaxUnitsPerUser, pool.MinimumContribution); err != nil {
		return entities.Pool{}, err
	}
	pool.UpdatedAt = uc.now()

	if err := uc.Repository.UpdatePool(ctx, pool); err != nil {
		logger.Error("pool update persistence failed",
			"event", "pool_update_persistence_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"error", err.Error(),
		)
		return entities.Pool{}, err
	}
	logger.Info("pool updated",
		"event", "pool_updated",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
	)
	return pool, nil
}

// ClosePool soft-closes: pools carrying inventory or an audit trail are never
// hard-deleted.
func (uc UseCase) ClosePool(ctx context.Context, cmd ClosePoolCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Repository.GetPool(ctx, strings.TrimSpace(cmd.PoolID))
	if err != nil {
		logger.Warn("pool close lookup failed",
			"event", "pool_close_lookup_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", strings.TrimSpace(cmd.PoolID),
			"error", err.Error(),
		)
		return err
	}
	if !pool.IsOpen() {
		return domainerrors.ErrPoolClosed
	}
	if err := uc.Repository.ClosePool(ctx, pool.ID, uc.now()); err != nil {
		logger.Error("pool close persistence failed",
			"event", "pool_close_persistence_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("pool closed",
		"event", "pool_closed",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
		"closed_by", strings.TrimSpace(cmd.ClosedBy),
	)
	return nil
}

func (uc UseCase) Contribute(ctx context.Context, cmd ContributeCommand) (entities.Contribution, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Repository.GetPool(ctx, strings.TrimSpace(cmd.PoolID))
	if err != nil {
		logger.Warn("contribution pool lookup failed",
			"event", "contribution_pool_lookup_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", strings.TrimSpace(cmd.PoolID),
			"error", err.Error(),
		)
		return entities.Contribution{}, err
	}
	if !pool.IsOpen() {
		logger.Warn("contribution rejected for closed pool",
			"event", "contribution_pool_closed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
		)
		return entities.Contribution{}, domainerrors.ErrPoolClosed
	}

	contribution := entities.Contribution{
		PoolID:        pool.ID,
		ItemID:        strings.TrimSpace(cmd.ItemID),
		ContributorID: strings.TrimSpace(cmd.ContributorID),
		UnitsOffered:  cmd.UnitsOffered,
		Title:         strings.TrimSpace(cmd.Title),
		Message:       strings.TrimSpace(cmd.Message),
		Status:        entities.ContributionStatusPending,
	}
	if contribution.ItemID == "" || contribution.ContributorID == "" {
		return entities.Contribution{}, domainerrors.ErrInvalidContributionInput
	}
	if contribution.UnitsOffered <= 0 {
		return entities.Contribution{}, domainerrors.ErrInvalidContributionInput
	}
	if pool.MinimumContribution != nil && contribution.UnitsOffered < *pool.MinimumContribution {
		logger.Warn("contribution below pool minimum",
			"event", "contribution_below_minimum",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"units_offered", contribution.UnitsOffered,
			"minimum_contribution", *pool.MinimumContribution,
		)
		return entities.Contribution{}, domainerrors.ErrBelowMinimumContribution
	}
	if !pool.AllowsItem(contribution.ItemID) {
		logger.Warn("contribution item not in pool whitelist",
			"event", "contribution_item_not_allowed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"item_id", contribution.ItemID,
		)
		return entities.Contribution{}, domainerrors.ErrItemNotAllowed
	}

	contributionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		logger.Error("contribution id generation failed",
			"event", "contribution_id_generation_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"error", err.Error(),
		)
		return entities.Contribution{}, err
	}
	now := uc.now()
	contribution.ID = contributionID
	contribution.CreatedAt = now
	contribution.UpdatedAt = now

	if err := uc.Repository.CreateContribution(ctx, contribution); err != nil {
		logger.Error("contribution persistence failed",
			"event", "contribution_persistence_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"contribution_id", contribution.ID,
			"error", err.Error(),
		)
		return entities.Contribution{}, err
	}
	logger.Info("contribution offered",
		"event", "contribution_offered",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
		"contribution_id", contribution.ID,
		"item_id", contribution.ItemID,
		"units_offered", contribution.UnitsOffered,
	)
	return contribution, nil
}

// ConfirmContribution transitions pending -> confirmed and credits the
// ledger. The transition and the credit are a single atomic unit inside the
// repository.
func (uc UseCase) ConfirmContribution(ctx context.Context, cmd ReviewContributionCommand) (entities.Contribution, error) {
	logger := application.ResolveLogger(uc.Logger)
	contribution, pool, err := uc.loadReviewTarget(ctx, cmd)
	if err != nil {
		return entities.Contribution{}, err
	}
	if !pool.IsOpen() {
		logger.Warn("contribution confirm rejected for closed pool",
			"event", "contribution_confirm_pool_closed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"contribution_id", contribution.ID,
		)
		return entities.Contribution{}, domainerrors.ErrPoolClosed
	}

	confirmed, err := uc.Repository.ConfirmContribution(ctx, contribution.ID, strings.TrimSpace(cmd.ReviewerID), uc.now())
	if err != nil {
		logger.Warn("contribution confirm failed",
			"event", "contribution_confirm_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"contribution_id", contribution.ID,
			"error", err.Error(),
		)
		return entities.Contribution{}, err
	}

	if err := uc.appendOutbox(ctx, "pool.contribution_confirmed", pool.ID, map[string]any{
		"pool_id":         pool.ID,
		"contribution_id": confirmed.ID,
		"item_id":         confirmed.ItemID,
		"contributor_id":  confirmed.ContributorID,
		"units_credited":  confirmed.UnitsOffered,
	}); err != nil {
		logger.Error("contribution confirm outbox append failed",
			"event", "contribution_confirm_outbox_append_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"contribution_id", confirmed.ID,
			"error", err.Error(),
		)
		return entities.Contribution{}, err
	}
	logger.Info("contribution confirmed",
		"event", "contribution_confirmed",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
		"contribution_id", confirmed.ID,
		"units_credited", confirmed.UnitsOffered,
		"reviewed_by", confirmed.ReviewedBy,
	)
	return confirmed, nil
}

// RejectContribution is allowed on closed pools so pending offers can still
// be resolved after a soft-close.
func (uc UseCase) RejectContribution(ctx context.Context, cmd ReviewContributionCommand) (entities.Contribution, error) {
	logger := application.ResolveLogger(uc.Logger)
	contribution, pool, err := uc.loadReviewTarget(ctx, cmd)
	if err != nil {
		return entities.Contribution{}, err
	}

	rejected, err := uc.Repository.RejectContribution(ctx, contribution.ID, strings.TrimSpace(cmd.ReviewerID), uc.now())
	if err != nil {
		logger.Warn("contribution reject failed",
			"event", "contribution_reject_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"contribution_id", contribution.ID,
			"error", err.Error(),
		)
		return entities.Contribution{}, err
	}
	logger.Info("contribution rejected",
		"event", "contribution_rejected",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
		"contribution_id", rejected.ID,
		"reviewed_by", rejected.ReviewedBy,
	)
	return rejected, nil
}

// Distribute grants an exact unit count to a single recipient, debiting the
// ledger and writing the audit row atomically.
func (uc UseCase) Distribute(ctx context.Context, cmd DistributeCommand) (entities.DistributionRecord, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Repository.GetPool(ctx, strings.TrimSpace(cmd.PoolID))
	if err != nil {
		logger.Warn("distribution pool lookup failed",
			"event", "distribution_pool_lookup_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", strings.TrimSpace(cmd.PoolID),
			"error", err.Error(),
		)
		return entities.DistributionRecord{}, err
	}
	if !pool.IsOpen() {
		return entities.DistributionRecord{}, domainerrors.ErrPoolClosed
	}
	itemID := strings.TrimSpace(cmd.ItemID)
	recipientID := strings.TrimSpace(cmd.RecipientID)
	if itemID == "" || recipientID == "" || cmd.Units <= 0 {
		return entities.DistributionRecord{}, domainerrors.ErrInvalidDistributionInput
	}
	if !pool.AllowsItem(itemID) {
		logger.Warn("distribution item not in pool whitelist",
			"event", "distribution_item_not_allowed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"item_id", itemID,
		)
		return entities.DistributionRecord{}, domainerrors.ErrItemNotAllowed
	}

	record, err := uc.Repository.CommitDirectDistribution(ctx, ports.DirectDistribution{
		PoolID:        pool.ID,
		ItemID:        itemID,
		RecipientID:   recipientID,
		Units:         cmd.Units,
		Title:         strings.TrimSpace(cmd.Title),
		Description:   strings.TrimSpace(cmd.Description),
		DistributedBy: strings.TrimSpace(cmd.DistributedBy),
		CommittedAt:   uc.now(),
	})
	if err != nil {
		logger.Warn("distribution commit failed",
			"event", "distribution_commit_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"item_id", itemID,
			"recipient_id", recipientID,
			"units", cmd.Units,
			"error", err.Error(),
		)
		return entities.DistributionRecord{}, err
	}

	if err := uc.appendOutbox(ctx, "pool.distribution_committed", pool.ID, map[string]any{
		"pool_id":           pool.ID,
		"item_id":           itemID,
		"recipient_count":   1,
		"units_distributed": record.UnitsDistributed,
	}); err != nil {
		return entities.DistributionRecord{}, err
	}
	logger.Info("distribution committed",
		"event", "distribution_committed",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
		"item_id", itemID,
		"recipient_id", recipientID,
		"units_distributed", record.UnitsDistributed,
	)
	return record, nil
}

// MassDistribute re-runs the allocator against the live ledger balance inside
// the repository's serialization scope and commits the resulting plan. When
// the live balance differs from ExpectedAvailable the commit fails with
// ErrInventoryChanged and the caller must re-preview.
func (uc UseCase) MassDistribute(ctx context.Context, cmd MassDistributeCommand) (ports.MassDistributionResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Repository.GetPool(ctx, strings.TrimSpace(cmd.PoolID))
	if err != nil {
		logger.Warn("mass distribution pool lookup failed",
			"event", "mass_distribution_pool_lookup_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", strings.TrimSpace(cmd.PoolID),
			"error", err.Error(),
		)
		return ports.MassDistributionResult{}, err
	}

	input, err := services.ResolveDistributionInput(pool, cmd.ItemID, cmd.RecipientIDs, cmd.PerUserCap, cmd.Strategy)
	if err != nil {
		logger.Warn("mass distribution invalid input",
			"event", "mass_distribution_invalid_input",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"item_id", strings.TrimSpace(cmd.ItemID),
			"strategy", strings.TrimSpace(cmd.Strategy),
			"error", err.Error(),
		)
		return ports.MassDistributionResult{}, err
	}
	if cmd.ExpectedAvailable < 0 {
		return ports.MassDistributionResult{}, domainerrors.ErrInvalidDistributionInput
	}

	result, err := uc.Repository.CommitMassDistribution(ctx, ports.MassDistribution{
		PoolID:           pool.ID,
		ItemID:           input.ItemID,
		Recipients:       input.Recipients,
		PerUserCap:       input.PerUserCap,
		Strategy:         input.Strategy,
		AssumedAvailable: cmd.ExpectedAvailable,
		Title:            strings.TrimSpace(cmd.Title),
		Description:      strings.TrimSpace(cmd.Description),
		DistributedBy:    strings.TrimSpace(cmd.DistributedBy),
		CommittedAt:      uc.now(),
	})
	if err != nil {
		logger.Warn("mass distribution commit failed",
			"event", "mass_distribution_commit_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"pool_id", pool.ID,
			"item_id", input.ItemID,
			"strategy", string(input.Strategy),
			"expected_available", cmd.ExpectedAvailable,
			"error", err.Error(),
		)
		return ports.MassDistributionResult{}, err
	}

	if err := uc.appendOutbox(ctx, "pool.distribution_committed", pool.ID, map[string]any{
		"pool_id":           pool.ID,
		"item_id":           input.ItemID,
		"strategy":          string(input.Strategy),
		"recipient_count":   len(result.Records),
		"units_distributed": result.Plan.TotalAllocated,
	}); err != nil {
		return ports.MassDistributionResult{}, err
	}
	logger.Info("mass distribution committed",
		"event", "mass_distribution_committed",
		"module", "resource-sharing/pool-service",
		"layer", "application",
		"pool_id", pool.ID,
		"item_id", input.ItemID,
		"strategy", string(input.Strategy),
		"recipient_count", len(result.Records),
		"units_distributed", result.Plan.TotalAllocated,
		"units_remaining", result.Plan.UnitsRemaining,
	)
	return result, nil
}

func (uc UseCase) loadReviewTarget(ctx context.Context, cmd ReviewContributionCommand) (entities.Contribution, entities.Pool, error) {
	logger := application.ResolveLogger(uc.Logger)
	contribution, err := uc.Repository.GetContribution(ctx, strings.TrimSpace(cmd.ContributionID))
	if err != nil {
		logger.Warn("contribution review lookup failed",
			"event", "contribution_review_lookup_failed",
			"module", "resource-sharing/pool-service",
			"layer", "application",
			"contribution_id", strings.TrimSpace(cmd.ContributionID),
			"error", err.Error(),
		)
		return entities.Contribution{}, entities.Pool{}, err
	}
	if contribution.PoolID != strings.TrimSpace(cmd.PoolID) {
		return entities.Contribution{}, entities.Pool{}, domainerrors.ErrContributionNotFound
	}
	if strings.TrimSpace(cmd.ReviewerID) == "" {
		return entities.Contribution{}, entities.Pool{}, domainerrors.ErrInvalidContributionInput
	}
	pool, err := uc.Repository.GetPool(ctx, contribution.PoolID)
	if err != nil {
		return entities.Contribution{}, entities.Pool{}, err
	}
	return contribution, pool, nil
}

func validatePoolLimits(maxUnitsPerUser, minimumContribution *int64) error {
	if maxUnitsPerUser != nil && *maxUnitsPerUser <= 0 {
		return domainerrors.ErrInvalidPoolInput
	}
	if minimumContribution != nil && *minimumContribution <= 0 {
		return domainerrors.ErrInvalidPoolInput
	}
	return nil
}

func (uc UseCase) appendOutbox(
	ctx context.Context,
	eventType string,
	partitionKey string,
	data map[string]any,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       uc.now(),
		SourceService:    "pool-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "pool_id",
		PartitionKey:     partitionKey,
		Data:             payload,
	})
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
