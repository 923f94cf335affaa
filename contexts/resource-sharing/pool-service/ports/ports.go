package ports

import (
	"context"
	"time"

	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	contractsv1 "commonweal/contracts/gen/events/v1"
)

// MassDistribution carries everything the committer needs to re-run the
// allocator inside the ledger's serialization scope. AssumedAvailable is the
// balance the caller's plan was computed against; the committer fails with
// ErrInventoryChanged when the live balance differs.
type MassDistribution struct {
	PoolID           string
	ItemID           string
	Recipients       []string
	PerUserCap       *int64
	Strategy         entities.FulfillmentStrategy
	AssumedAvailable int64
	Title            string
	Description      string
	DistributedBy    string
	CommittedAt      time.Time
}

// MassDistributionResult is the committed plan plus the audit rows written
// for every recipient with a positive allocation.
type MassDistributionResult struct {
	Plan    entities.AllocationPlan
	Records []entities.DistributionRecord
}

// DirectDistribution grants an exact unit count to a single recipient.
type DirectDistribution struct {
	PoolID        string
	ItemID        string
	RecipientID   string
	Units         int64
	Title         string
	Description   string
	DistributedBy string
	CommittedAt   time.Time
}

// Repository owns pool, ledger, contribution, and distribution persistence.
//
// ConfirmContribution, CommitMassDistribution, and CommitDirectDistribution
// are transaction boundaries: each must hold exclusive access to the
// (pool, item) inventory row for its whole read-modify-write, so concurrent
// credits and debits against the same item serialize and the balance never
// goes negative.
type Repository interface {
	CreatePool(ctx context.Context, pool entities.Pool) error
	UpdatePool(ctx context.Context, pool entities.Pool) error
	GetPool(ctx context.Context, poolID string) (entities.Pool, error)
	ListPoolsByCouncil(ctx context.Context, councilID string) ([]entities.Pool, error)
	ClosePool(ctx context.Context, poolID string, closedAt time.Time) error

	GetAvailable(ctx context.Context, poolID string, itemID string) (int64, error)
	ListInventory(ctx context.Context, poolID string) ([]entities.InventoryEntry, error)

	CreateContribution(ctx context.Context, contribution entities.Contribution) error
	GetContribution(ctx context.Context, contributionID string) (entities.Contribution, error)
	ListPendingContributions(ctx context.Context, poolID string) ([]entities.Contribution, error)
	// ConfirmContribution must atomically transition pending -> confirmed and
	// credit the pool inventory; a non-pending row fails with ErrInvalidState.
	ConfirmContribution(ctx context.Context, contributionID string, reviewerID string, reviewedAt time.Time) (entities.Contribution, error)
	RejectContribution(ctx context.Context, contributionID string, reviewerID string, reviewedAt time.Time) (entities.Contribution, error)

	// CommitMassDistribution re-runs the allocator against the live balance,
	// debits the total, and writes all records as one atomic unit.
	CommitMassDistribution(ctx context.Context, params MassDistribution) (MassDistributionResult, error)
	// CommitDirectDistribution debits exact units for one recipient, failing
	// with ErrInsufficientInventory when the balance is short.
	CommitDirectDistribution(ctx context.Context, params DirectDistribution) (entities.DistributionRecord, error)
	ListDistributions(ctx context.Context, poolID string) ([]entities.DistributionRecord, error)
}

// Authorizer is the external permission collaborator. The engine itself holds
// no authorization logic; the HTTP layer consults this before dispatching.
type Authorizer interface {
	Check(ctx context.Context, actorID string, action string, poolID string) (bool, error)
}

// Clock allows deterministic testing of timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts pool/contribution/record identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxWriter appends integration events for async relay.
type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
