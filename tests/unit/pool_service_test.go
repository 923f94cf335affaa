package unit

import (
	"context"
	"errors"
	"testing"

	poolservice "commonweal/contexts/resource-sharing/pool-service"
	domainerrors "commonweal/contexts/resource-sharing/pool-service/domain/errors"
	httptransport "commonweal/contexts/resource-sharing/pool-service/transport/http"
)

func int64Ref(v int64) *int64 { return &v }

func createPool(t *testing.T, module poolservice.Module, req httptransport.CreatePoolRequest) string {
	t.Helper()
	created, err := module.Handler.CreatePoolHandler(context.Background(), "organizer-1", "council-1", req)
	if err != nil {
		t.Fatalf("create pool failed: %v", err)
	}
	return created.Pool.PoolID
}

func TestPoolContributionReviewFlow(t *testing.T) {
	module := poolservice.NewInMemoryModule(nil, nil)
	poolID := createPool(t, module, httptransport.CreatePoolRequest{
		CommunityID:         "community-1",
		Name:                "Winter Supplies",
		MinimumContribution: int64Ref(3),
	})

	_, err := module.Handler.ContributeHandler(context.Background(), "member-1", poolID, httptransport.ContributeRequest{
		ItemID:       "blankets",
		UnitsOffered: 2,
	})
	if !errors.Is(err, domainerrors.ErrBelowMinimumContribution) {
		t.Fatalf("expected below minimum contribution error, got %v", err)
	}

	offer, err := module.Handler.ContributeHandler(context.Background(), "member-1", poolID, httptransport.ContributeRequest{
		ItemID:       "blankets",
		UnitsOffered: 5,
	})
	if err != nil {
		t.Fatalf("contribute failed: %v", err)
	}
	if offer.Contribution.Status != "pending" {
		t.Fatalf("expected pending contribution, got %q", offer.Contribution.Status)
	}

	reviewed, err := module.Handler.ConfirmContributionHandler(context.Background(), "organizer-1", poolID, offer.Contribution.ContributionID)
	if err != nil {
		t.Fatalf("confirm contribution failed: %v", err)
	}
	if reviewed.Contribution.Status != "confirmed" {
		t.Fatalf("expected confirmed contribution, got %q", reviewed.Contribution.Status)
	}

	inventory, err := module.Handler.ListInventoryHandler(context.Background(), poolID)
	if err != nil {
		t.Fatalf("list inventory failed: %v", err)
	}
	if len(inventory.Items) != 1 || inventory.Items[0].UnitsAvailable != 5 {
		t.Fatalf("expected 5 blankets in inventory, got %+v", inventory.Items)
	}

	_, err = module.Handler.ConfirmContributionHandler(context.Background(), "organizer-1", poolID, offer.Contribution.ContributionID)
	if !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on replayed confirm, got %v", err)
	}
}

func TestPoolMassDistributionPreviewMatchesCommit(t *testing.T) {
	module := poolservice.NewInMemoryModule(nil, nil)
	poolID := createPool(t, module, httptransport.CreatePoolRequest{
		CommunityID:     "community-1",
		Name:            "Food Pool",
		MaxUnitsPerUser: int64Ref(4),
	})
	module.Store.SetInventory(poolID, "meals", 10)

	preview, err := module.Handler.PreviewMassDistributionHandler(context.Background(), poolID, httptransport.PreviewMassDistributionRequest{
		ItemID:       "meals",
		RecipientIDs: []string{"member-1", "member-2", "member-3"},
		Strategy:     "equal",
	})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if preview.Plan.TotalAllocated != 10 {
		t.Fatalf("expected preview to allocate all 10 units, got %d", preview.Plan.TotalAllocated)
	}
	if preview.Plan.Entries[0].UnitsAllocated != 4 {
		t.Fatalf("expected remainder to favor first recipient, got %+v", preview.Plan.Entries)
	}

	committed, err := module.Handler.MassDistributeHandler(context.Background(), "organizer-1", poolID, httptransport.MassDistributeRequest{
		ItemID:            "meals",
		RecipientIDs:      []string{"member-1", "member-2", "member-3"},
		Strategy:          "equal",
		ExpectedAvailable: preview.Plan.Available,
	})
	if err != nil {
		t.Fatalf("mass distribute failed: %v", err)
	}
	if committed.Plan.TotalAllocated != preview.Plan.TotalAllocated {
		t.Fatalf("commit plan diverged from preview: %d vs %d", committed.Plan.TotalAllocated, preview.Plan.TotalAllocated)
	}
	if len(committed.Records) != 3 {
		t.Fatalf("expected 3 distribution records, got %d", len(committed.Records))
	}

	_, err = module.Handler.MassDistributeHandler(context.Background(), "organizer-1", poolID, httptransport.MassDistributeRequest{
		ItemID:            "meals",
		RecipientIDs:      []string{"member-1"},
		Strategy:          "full",
		ExpectedAvailable: preview.Plan.Available,
	})
	if !errors.Is(err, domainerrors.ErrInventoryChanged) {
		t.Fatalf("expected inventory changed error on stale expectation, got %v", err)
	}
}

func TestPoolDirectDistributionGuardsWhitelistAndBalance(t *testing.T) {
	module := poolservice.NewInMemoryModule(nil, nil)
	poolID := createPool(t, module, httptransport.CreatePoolRequest{
		CommunityID:    "community-1",
		Name:           "Tool Library",
		AllowedItemIDs: []string{"drill"},
	})
	module.Store.SetInventory(poolID, "drill", 2)

	_, err := module.Handler.DistributeHandler(context.Background(), "organizer-1", poolID, httptransport.DistributeRequest{
		ItemID:      "hammer",
		RecipientID: "member-1",
		Units:       1,
	})
	if !errors.Is(err, domainerrors.ErrItemNotAllowed) {
		t.Fatalf("expected item not allowed error, got %v", err)
	}

	_, err = module.Handler.DistributeHandler(context.Background(), "organizer-1", poolID, httptransport.DistributeRequest{
		ItemID:      "drill",
		RecipientID: "member-1",
		Units:       3,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientInventory) {
		t.Fatalf("expected insufficient inventory error, got %v", err)
	}

	granted, err := module.Handler.DistributeHandler(context.Background(), "organizer-1", poolID, httptransport.DistributeRequest{
		ItemID:      "drill",
		RecipientID: "member-1",
		Units:       2,
	})
	if err != nil {
		t.Fatalf("direct distribute failed: %v", err)
	}
	if granted.Record.UnitsDistributed != 2 {
		t.Fatalf("expected 2 units distributed, got %d", granted.Record.UnitsDistributed)
	}
}

func TestPoolCloseStopsContributionsAndDistributions(t *testing.T) {
	module := poolservice.NewInMemoryModule(nil, nil)
	poolID := createPool(t, module, httptransport.CreatePoolRequest{
		CommunityID: "community-1",
		Name:        "Seasonal Pool",
	})
	module.Store.SetInventory(poolID, "coats", 4)

	if err := module.Handler.ClosePoolHandler(context.Background(), "organizer-1", poolID); err != nil {
		t.Fatalf("close pool failed: %v", err)
	}
	if err := module.Handler.ClosePoolHandler(context.Background(), "organizer-1", poolID); !errors.Is(err, domainerrors.ErrPoolClosed) {
		t.Fatalf("expected pool closed error on second close, got %v", err)
	}

	_, err := module.Handler.ContributeHandler(context.Background(), "member-1", poolID, httptransport.ContributeRequest{
		ItemID:       "coats",
		UnitsOffered: 1,
	})
	if !errors.Is(err, domainerrors.ErrPoolClosed) {
		t.Fatalf("expected pool closed error on contribute, got %v", err)
	}

	_, err = module.Handler.DistributeHandler(context.Background(), "organizer-1", poolID, httptransport.DistributeRequest{
		ItemID:      "coats",
		RecipientID: "member-1",
		Units:       1,
	})
	if !errors.Is(err, domainerrors.ErrPoolClosed) {
		t.Fatalf("expected pool closed error on distribute, got %v", err)
	}
}

func TestPoolUpdateReplacesWhitelist(t *testing.T) {
	module := poolservice.NewInMemoryModule(nil, nil)
	poolID := createPool(t, module, httptransport.CreatePoolRequest{
		CommunityID:    "community-1",
		Name:           "Garden Pool",
		AllowedItemIDs: []string{"seeds"},
	})

	newItems := []string{"seeds", "compost"}
	newName := "Garden & Compost Pool"
	updated, err := module.Handler.UpdatePoolHandler(context.Background(), "organizer-1", poolID, httptransport.UpdatePoolRequest{
		Name:           &newName,
		AllowedItemIDs: &newItems,
	})
	if err != nil {
		t.Fatalf("update pool failed: %v", err)
	}
	if updated.Pool.Name != newName {
		t.Fatalf("expected renamed pool, got %q", updated.Pool.Name)
	}
	if len(updated.Pool.AllowedItemIDs) != 2 {
		t.Fatalf("expected replaced whitelist, got %+v", updated.Pool.AllowedItemIDs)
	}

	_, err = module.Handler.ContributeHandler(context.Background(), "member-1", poolID, httptransport.ContributeRequest{
		ItemID:       "mulch",
		UnitsOffered: 1,
	})
	if !errors.Is(err, domainerrors.ErrItemNotAllowed) {
		t.Fatalf("expected item not allowed after whitelist update, got %v", err)
	}
}
