package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"commonweal/contexts/resource-sharing/pool-service/application/commands"
	"commonweal/contexts/resource-sharing/pool-service/application/queries"
	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	httptransport "commonweal/contexts/resource-sharing/pool-service/transport/http"
)

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

// CreatePoolHandler godoc
// @Summary Create a pool
// @Description Creates a council-managed resource pool.
// @Tags pools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param council_id path string true "Council id"
// @Param request body httptransport.CreatePoolRequest true "Pool settings"
// @Success 201 {object} httptransport.CreatePoolResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /councils/{council_id}/pools [post]
func (h Handler) CreatePoolHandler(
	ctx context.Context,
	userID string,
	councilID string,
	req httptransport.CreatePoolRequest,
) (httptransport.CreatePoolResponse, error) {
	pool, err := h.Commands.CreatePool(ctx, commands.CreatePoolCommand{
		CommunityID:         req.CommunityID,
		CouncilID:           councilID,
		Name:                req.Name,
		Description:         req.Description,
		MaxUnitsPerUser:     req.MaxUnitsPerUser,
		MinimumContribution: req.MinimumContribution,
		AllowedItemIDs:      append([]string(nil), req.AllowedItemIDs...),
		CreatedBy:           userID,
	})
	if err != nil {
		return httptransport.CreatePoolResponse{}, err
	}
	return httptransport.CreatePoolResponse{Pool: mapPool(pool)}, nil
}

// ListCouncilPoolsHandler godoc
// @Summary List council pools
// @Description Returns every pool for a council with inventory totals.
// @Tags pools
// @Produce json
// @Security BearerAuth
// @Param council_id path string true "Council id"
// @Success 200 {object} httptransport.ListPoolsResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /councils/{council_id}/pools [get]
func (h Handler) ListCouncilPoolsHandler(ctx context.Context, councilID string) (httptransport.ListPoolsResponse, error) {
	items, err := h.Queries.ListCouncilPools(ctx, councilID)
	if err != nil {
		return httptransport.ListPoolsResponse{}, err
	}
	result := make([]httptransport.CouncilPoolSummaryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.CouncilPoolSummaryDTO{
			Pool:       mapPool(item.Pool),
			ItemCount:  item.ItemCount,
			TotalUnits: item.TotalUnits,
		})
	}
	return httptransport.ListPoolsResponse{Items: result}, nil
}

// GetPoolHandler godoc
// @Summary Get pool detail
// @Description Returns one pool with its current inventory ledger.
// @Tags pools
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Success 200 {object} httptransport.GetPoolResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id} [get]
func (h Handler) GetPoolHandler(ctx context.Context, poolID string) (httptransport.GetPoolResponse, error) {
	detail, err := h.Queries.GetPool(ctx, poolID)
	if err != nil {
		return httptransport.GetPoolResponse{}, err
	}
	return httptransport.GetPoolResponse{
		Pool:      mapPool(detail.Pool),
		Inventory: mapInventory(detail.Inventory),
	}, nil
}

// UpdatePoolHandler godoc
// @Summary Update pool settings
// @Description Partially updates name, description, caps, and item whitelist.
// @Tags pools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Param request body httptransport.UpdatePoolRequest true "Changed fields"
// @Success 200 {object} httptransport.UpdatePoolResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id} [patch]
func (h Handler) UpdatePoolHandler(
	ctx context.Context,
	userID string,
	poolID string,
	req httptransport.UpdatePoolRequest,
) (httptransport.UpdatePoolResponse, error) {
	cmd := commands.UpdatePoolCommand{
		PoolID:              poolID,
		Name:                req.Name,
		Description:         req.Description,
		MaxUnitsPerUser:     req.MaxUnitsPerUser,
		MinimumContribution: req.MinimumContribution,
		UpdatedBy:           userID,
	}
	if req.AllowedItemIDs != nil {
		cmd.AllowedItemIDs = append([]string{}, (*req.AllowedItemIDs)...)
	}
	pool, err := h.Commands.UpdatePool(ctx, cmd)
	if err != nil {
		return httptransport.UpdatePoolResponse{}, err
	}
	return httptransport.UpdatePoolResponse{Pool: mapPool(pool)}, nil
}

// ClosePoolHandler godoc
// @Summary Close a pool
// @Description Soft-closes the pool; history and inventory are retained.
// @Tags pools
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Success 204
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id} [delete]
func (h Handler) ClosePoolHandler(ctx context.Context, userID string, poolID string) error {
	return h.Commands.ClosePool(ctx, commands.ClosePoolCommand{
		PoolID:   poolID,
		ClosedBy: userID,
	})
}

// ListInventoryHandler godoc
// @Summary Get pool inventory
// @Description Returns the per-item available unit balances.
// @Tags pools
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Success 200 {object} httptransport.ListInventoryResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/inventory [get]
func (h Handler) ListInventoryHandler(ctx context.Context, poolID string) (httptransport.ListInventoryResponse, error) {
	items, err := h.Queries.ListInventory(ctx, poolID)
	if err != nil {
		return httptransport.ListInventoryResponse{}, err
	}
	return httptransport.ListInventoryResponse{Items: mapInventory(items)}, nil
}

// ContributeHandler godoc
// @Summary Offer a contribution
// @Description Records a pending contribution of units toward the pool.
// @Tags contributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Param request body httptransport.ContributeRequest true "Offer"
// @Success 201 {object} httptransport.ContributeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/contributions [post]
func (h Handler) ContributeHandler(
	ctx context.Context,
	userID string,
	poolID string,
	req httptransport.ContributeRequest,
) (httptransport.ContributeResponse, error) {
	contribution, err := h.Commands.Contribute(ctx, commands.ContributeCommand{
		PoolID:        poolID,
		ItemID:        req.ItemID,
		ContributorID: userID,
		UnitsOffered:  req.UnitsOffered,
		Title:         req.Title,
		Message:       req.Message,
	})
	if err != nil {
		return httptransport.ContributeResponse{}, err
	}
	return httptransport.ContributeResponse{Contribution: mapContribution(contribution)}, nil
}

// ListPendingContributionsHandler godoc
// @Summary List pending contributions
// @Description Returns the review queue for a pool, oldest first.
// @Tags contributions
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Success 200 {object} httptransport.ListContributionsResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/contributions/pending [get]
func (h Handler) ListPendingContributionsHandler(ctx context.Context, poolID string) (httptransport.ListContributionsResponse, error) {
	items, err := h.Queries.ListPendingContributions(ctx, poolID)
	if err != nil {
		return httptransport.ListContributionsResponse{}, err
	}
	result := make([]httptransport.ContributionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapContribution(item))
	}
	return httptransport.ListContributionsResponse{Items: result}, nil
}

// ConfirmContributionHandler godoc
// @Summary Confirm a contribution
// @Description Confirms a pending contribution and credits pool inventory.
// @Tags contributions
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Param id path string true "Contribution id"
// @Success 200 {object} httptransport.ReviewContributionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/contributions/{id}/confirm [post]
func (h Handler) ConfirmContributionHandler(
	ctx context.Context,
	userID string,
	poolID string,
	contributionID string,
) (httptransport.ReviewContributionResponse, error) {
	contribution, err := h.Commands.ConfirmContribution(ctx, commands.ReviewContributionCommand{
		PoolID:         poolID,
		ContributionID: contributionID,
		ReviewerID:     userID,
	})
	if err != nil {
		return httptransport.ReviewContributionResponse{}, err
	}
	return httptransport.ReviewContributionResponse{Contribution: mapContribution(contribution)}, nil
}

// RejectContributionHandler godoc
// @Summary Reject a contribution
// @Description Rejects a pending contribution without touching inventory.
// @Tags contributions
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Param id path string true "Contribution id"
// @Success 200 {object} httptransport.ReviewContributionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/contributions/{id}/reject [post]
func (h Handler) RejectContributionHandler(
	ctx context.Context,
	userID string,
	poolID string,
	contributionID string,
) (httptransport.ReviewContributionResponse, error) {
	contribution, err := h.Commands.RejectContribution(ctx, commands.ReviewContributionCommand{
		PoolID:         poolID,
		ContributionID: contributionID,
		ReviewerID:     userID,
	})
	if err != nil {
		return httptransport.ReviewContributionResponse{}, err
	}
	return httptransport.ReviewContributionResponse{Contribution: mapContribution(contribution)}, nil
}

// DistributeHandler godoc
// @Summary Distribute to one recipient
// @Description Debits an exact unit count for a single recipient.
// @Tags distributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Param request body httptransport.DistributeRequest true "Grant"
// @Success 201 {object} httptransport.DistributeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/distributions [post]
func (h Handler) DistributeHandler(
	ctx context.Context,
	userID string,
	poolID string,
	req httptransport.DistributeRequest,
) (httptransport.DistributeResponse, error) {
	record, err := h.Commands.Distribute(ctx, commands.DistributeCommand{
		PoolID:        poolID,
		ItemID:        req.ItemID,
		RecipientID:   req.RecipientID,
		Units:         req.Units,
		Title:         req.Title,
		Description:   req.Description,
		DistributedBy: userID,
	})
	if err != nil {
		return httptransport.DistributeResponse{}, err
	}
	return httptransport.DistributeResponse{Record: mapRecord(record)}, nil
}

// ListDistributionsHandler godoc
// @Summary List distribution history
// @Description Returns every distribution record for a pool.
// @Tags distributions
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Success 200 {object} httptransport.ListDistributionsResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/distributions [get]
func (h Handler) ListDistributionsHandler(ctx context.Context, poolID string) (httptransport.ListDistributionsResponse, error) {
	items, err := h.Queries.ListDistributions(ctx, poolID)
	if err != nil {
		return httptransport.ListDistributionsResponse{}, err
	}
	result := make([]httptransport.DistributionRecordDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapRecord(item))
	}
	return httptransport.ListDistributionsResponse{Items: result}, nil
}

// PreviewMassDistributionHandler godoc
// @Summary Preview a mass distribution
// @Description Computes the allocation plan against the live balance without committing.
// @Tags distributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Param request body httptransport.PreviewMassDistributionRequest true "Plan inputs"
// @Success 200 {object} httptransport.PreviewMassDistributionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/distributions/preview [post]
func (h Handler) PreviewMassDistributionHandler(
	ctx context.Context,
	poolID string,
	req httptransport.PreviewMassDistributionRequest,
) (httptransport.PreviewMassDistributionResponse, error) {
	plan, err := h.Queries.PreviewMassDistribution(ctx, queries.PreviewMassDistributionQuery{
		PoolID:       poolID,
		ItemID:       req.ItemID,
		RecipientIDs: append([]string(nil), req.RecipientIDs...),
		PerUserCap:   req.PerUserCap,
		Strategy:     req.Strategy,
	})
	if err != nil {
		return httptransport.PreviewMassDistributionResponse{}, err
	}
	return httptransport.PreviewMassDistributionResponse{Plan: mapPlan(plan)}, nil
}

// MassDistributeHandler godoc
// @Summary Commit a mass distribution
// @Description Re-runs the allocation against the live balance and commits atomically. Fails with 409 when the balance moved since the preview.
// @Tags distributions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pool_id path string true "Pool id"
// @Param request body httptransport.MassDistributeRequest true "Plan inputs plus expected balance"
// @Success 201 {object} httptransport.MassDistributeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /pools/{pool_id}/distributions/mass [post]
func (h Handler) MassDistributeHandler(
	ctx context.Context,
	userID string,
	poolID string,
	req httptransport.MassDistributeRequest,
) (httptransport.MassDistributeResponse, error) {
	result, err := h.Commands.MassDistribute(ctx, commands.MassDistributeCommand{
		PoolID:            poolID,
		ItemID:            req.ItemID,
		RecipientIDs:      append([]string(nil), req.RecipientIDs...),
		PerUserCap:        req.PerUserCap,
		Strategy:          req.Strategy,
		ExpectedAvailable: req.ExpectedAvailable,
		Title:             req.Title,
		Description:       req.Description,
		DistributedBy:     userID,
	})
	if err != nil {
		return httptransport.MassDistributeResponse{}, err
	}
	records := make([]httptransport.DistributionRecordDTO, 0, len(result.Records))
	for _, record := range result.Records {
		records = append(records, mapRecord(record))
	}
	return httptransport.MassDistributeResponse{
		Plan:    mapPlan(result.Plan),
		Records: records,
	}, nil
}

func mapPool(item entities.Pool) httptransport.PoolDTO {
	result := httptransport.PoolDTO{
		PoolID:              item.ID,
		CommunityID:         item.CommunityID,
		CouncilID:           item.CouncilID,
		Name:                item.Name,
		Description:         item.Description,
		MaxUnitsPerUser:     item.MaxUnitsPerUser,
		MinimumContribution: item.MinimumContribution,
		AllowedItemIDs:      append([]string(nil), item.AllowedItemIDs...),
		CreatedBy:           item.CreatedBy,
		CreatedAt:           item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           item.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if item.ClosedAt != nil {
		closed := item.ClosedAt.UTC().Format(time.RFC3339)
		result.ClosedAt = &closed
	}
	return result
}

func mapInventory(items []entities.InventoryEntry) []httptransport.InventoryEntryDTO {
	result := make([]httptransport.InventoryEntryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.InventoryEntryDTO{
			ItemID:         item.ItemID,
			UnitsAvailable: item.UnitsAvailable,
			UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return result
}

func mapContribution(item entities.Contribution) httptransport.ContributionDTO {
	result := httptransport.ContributionDTO{
		ContributionID: item.ID,
		PoolID:         item.PoolID,
		ItemID:         item.ItemID,
		ContributorID:  item.ContributorID,
		UnitsOffered:   item.UnitsOffered,
		Title:          item.Title,
		Message:        item.Message,
		Status:         string(item.Status),
		ReviewedBy:     item.ReviewedBy,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if item.ReviewedAt != nil {
		reviewed := item.ReviewedAt.UTC().Format(time.RFC3339)
		result.ReviewedAt = &reviewed
	}
	return result
}

func mapRecord(item entities.DistributionRecord) httptransport.DistributionRecordDTO {
	return httptransport.DistributionRecordDTO{
		DistributionID:   item.ID,
		PoolID:           item.PoolID,
		ItemID:           item.ItemID,
		RecipientID:      item.RecipientID,
		UnitsDistributed: item.UnitsDistributed,
		Title:            item.Title,
		Description:      item.Description,
		DistributedBy:    item.DistributedBy,
		CreatedAt:        item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapPlan(plan entities.AllocationPlan) httptransport.AllocationPlanDTO {
	entries := make([]httptransport.AllocationEntryDTO, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		entries = append(entries, httptransport.AllocationEntryDTO{
			RecipientID:    entry.RecipientID,
			UnitsAllocated: entry.UnitsAllocated,
		})
	}
	return httptransport.AllocationPlanDTO{
		Strategy:       string(plan.Strategy),
		Available:      plan.Available,
		Entries:        entries,
		TotalAllocated: plan.TotalAllocated,
		UnitsRemaining: plan.UnitsRemaining,
	}
}
