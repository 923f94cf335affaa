package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"commonweal/contexts/resource-sharing/pool-service/domain/entities"
	domainerrors "commonweal/contexts/resource-sharing/pool-service/domain/errors"
	"commonweal/contexts/resource-sharing/pool-service/domain/services"
	"commonweal/contexts/resource-sharing/pool-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)

func (r *Repository) CreatePool(ctx context.Context, pool entities.Pool) error {
	row := poolModelFromEntity(pool)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrPoolExists
		}
		return err
	}
	return nil
}

func (r *Repository) UpdatePool(ctx context.Context, pool entities.Pool) error {
	result := r.db.WithContext(ctx).
		Model(&poolModel{}).
		Where("pool_id = ?", strings.TrimSpace(pool.ID)).
		Updates(poolUpdatesFromEntity(pool))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPoolNotFound
	}
	return nil
}

func (r *Repository) GetPool(ctx context.Context, poolID string) (entities.Pool, error) {
	var row poolModel
	err := r.db.WithContext(ctx).
		Where("pool_id = ?", strings.TrimSpace(poolID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Pool{}, domainerrors.ErrPoolNotFound
		}
		return entities.Pool{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPoolsByCouncil(ctx context.Context, councilID string) ([]entities.Pool, error) {
	var rows []poolModel
	err := r.db.WithContext(ctx).
		Where("council_id = ?", strings.TrimSpace(councilID)).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Pool, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ClosePool(ctx context.Context, poolID string, closedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row poolModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pool_id = ?", strings.TrimSpace(poolID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrPoolNotFound
			}
			return err
		}
		if row.ClosedAt != nil {
			return domainerrors.ErrPoolClosed
		}

		closed := closedAt.UTC()
		return tx.Model(&poolModel{}).
			Where("pool_id = ?", row.PoolID).
			Updates(map[string]any{
				"closed_at":  closed,
				"updated_at": closed,
			}).
			Error
	})
}

func (r *Repository) GetAvailable(ctx context.Context, poolID string, itemID string) (int64, error) {
	var row inventoryModel
	err := r.db.WithContext(ctx).
		Where("pool_id = ? AND item_id = ?", strings.TrimSpace(poolID), strings.TrimSpace(itemID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.UnitsAvailable, nil
}

func (r *Repository) ListInventory(ctx context.Context, poolID string) ([]entities.InventoryEntry, error) {
	var rows []inventoryModel
	err := r.db.WithContext(ctx).
		Where("pool_id = ?", strings.TrimSpace(poolID)).
		Order("item_id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.InventoryEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateContribution(ctx context.Context, contribution entities.Contribution) error {
	row := contributionModelFromEntity(contribution)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidContributionInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetContribution(ctx context.Context, contributionID string) (entities.Contribution, error) {
	var row contributionModel
	err := r.db.WithContext(ctx).
		Where("contribution_id = ?", strings.TrimSpace(contributionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contribution{}, domainerrors.ErrContributionNotFound
		}
		return entities.Contribution{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPendingContributions(ctx context.Context, poolID string) ([]entities.Contribution, error) {
	var rows []contributionModel
	err := r.db.WithContext(ctx).
		Where("pool_id = ? AND status = ?", strings.TrimSpace(poolID), string(entities.ContributionStatusPending)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Contribution, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ConfirmContribution transitions pending -> confirmed and credits the ledger
// row in one transaction. The inventory row lock serializes concurrent
// reviews and distributions against the same (pool, item).
func (r *Repository) ConfirmContribution(
	ctx context.Context,
	contributionID string,
	reviewerID string,
	reviewedAt time.Time,
) (entities.Contribution, error) {
	var confirmed entities.Contribution
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row contributionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("contribution_id = ?", strings.TrimSpace(contributionID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrContributionNotFound
			}
			return err
		}
		if row.Status != string(entities.ContributionStatusPending) {
			return domainerrors.ErrInvalidState
		}

		reviewed := reviewedAt.UTC()
		row.Status = string(entities.ContributionStatusConfirmed)
		row.ReviewedBy = strings.TrimSpace(reviewerID)
		row.ReviewedAt = &reviewed
		row.UpdatedAt = reviewed
		if err := tx.Model(&contributionModel{}).
			Where("contribution_id = ?", row.ContributionID).
			Updates(map[string]any{
				"status":      row.Status,
				"reviewed_by": row.ReviewedBy,
				"reviewed_at": reviewed,
				"updated_at":  reviewed,
			}).
			Error; err != nil {
			return err
		}

		if err := creditInventoryTx(tx, row.PoolID, row.ItemID, row.UnitsOffered, reviewed); err != nil {
			return err
		}
		confirmed = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Contribution{}, err
	}
	return confirmed, nil
}

func (r *Repository) RejectContribution(
	ctx context.Context,
	contributionID string,
	reviewerID string,
	reviewedAt time.Time,
) (entities.Contribution, error) {
	var rejected entities.Contribution
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row contributionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("contribution_id = ?", strings.TrimSpace(contributionID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrContributionNotFound
			}
			return err
		}
		if row.Status != string(entities.ContributionStatusPending) {
			return domainerrors.ErrInvalidState
		}

		reviewed := reviewedAt.UTC()
		row.Status = string(entities.ContributionStatusRejected)
		row.ReviewedBy = strings.TrimSpace(reviewerID)
		row.ReviewedAt = &reviewed
		row.UpdatedAt = reviewed
		if err := tx.Model(&contributionModel{}).
			Where("contribution_id = ?", row.ContributionID).
			Updates(map[string]any{
				"status":      row.Status,
				"reviewed_by": row.ReviewedBy,
				"reviewed_at": reviewed,
				"updated_at":  reviewed,
			}).
			Error; err != nil {
			return err
		}
		rejected = row.toEntity()
		return nil
	})
	if err != nil {
		return entities.Contribution{}, err
	}
	return rejected, nil
}

// CommitMassDistribution locks the inventory row, re-runs the allocator
// against the live balance, and writes the debit plus every audit row in the
// same transaction. A live balance different from the caller's assumed one
// aborts with ErrInventoryChanged so the caller can re-preview.
func (r *Repository) CommitMassDistribution(
	ctx context.Context,
	params ports.MassDistribution,
) (ports.MassDistributionResult, error) {
	var result ports.MassDistributionResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		live, err := lockInventoryTx(tx, params.PoolID, params.ItemID)
		if err != nil {
			return err
		}
		if live != params.AssumedAvailable {
			return domainerrors.ErrInventoryChanged
		}

		plan, err := services.Allocate(live, params.Recipients, params.PerUserCap, params.Strategy)
		if err != nil {
			return err
		}

		committedAt := params.CommittedAt.UTC()
		records := make([]entities.DistributionRecord, 0, len(plan.Entries))
		for _, entry := range plan.Entries {
			if entry.UnitsAllocated <= 0 {
				continue
			}
			record := entities.DistributionRecord{
				ID:               uuid.NewString(),
				PoolID:           params.PoolID,
				ItemID:           params.ItemID,
				RecipientID:      entry.RecipientID,
				UnitsDistributed: entry.UnitsAllocated,
				Title:            params.Title,
				Description:      params.Description,
				DistributedBy:    params.DistributedBy,
				CreatedAt:        committedAt,
			}
			row := distributionModelFromEntity(record)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			records = append(records, record)
		}

		if plan.TotalAllocated > 0 {
			if err := debitInventoryTx(tx, params.PoolID, params.ItemID, plan.TotalAllocated, committedAt); err != nil {
				return err
			}
		}
		result = ports.MassDistributionResult{Plan: plan, Records: records}
		return nil
	})
	if err != nil {
		return ports.MassDistributionResult{}, err
	}
	return result, nil
}

func (r *Repository) CommitDirectDistribution(
	ctx context.Context,
	params ports.DirectDistribution,
) (entities.DistributionRecord, error) {
	var record entities.DistributionRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		live, err := lockInventoryTx(tx, params.PoolID, params.ItemID)
		if err != nil {
			return err
		}
		if live < params.Units {
			return domainerrors.ErrInsufficientInventory
		}

		committedAt := params.CommittedAt.UTC()
		record = entities.DistributionRecord{
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
		row := distributionModelFromEntity(record)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return debitInventoryTx(tx, params.PoolID, params.ItemID, params.Units, committedAt)
	})
	if err != nil {
		return entities.DistributionRecord{}, err
	}
	return record, nil
}

func (r *Repository) ListDistributions(ctx context.Context, poolID string) ([]entities.DistributionRecord, error) {
	var rows []distributionModel
	err := r.db.WithContext(ctx).
		Where("pool_id = ?", strings.TrimSpace(poolID)).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.DistributionRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "outbox_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return nil
	}

	var existing outboxModel
	if err := r.db.WithContext(ctx).
		Select("payload").
		Where("outbox_id = ?", row.OutboxID).
		First(&existing).
		Error; err != nil {
		return err
	}
	if !bytes.Equal(existing.Payload, payload) {
		return domainerrors.ErrInvalidState
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidState
	}
	return nil
}

// lockInventoryTx takes the row lock that serializes every ledger mutation
// for one (pool, item). A missing row means a zero balance; the row is
// created on first credit.
func lockInventoryTx(tx *gorm.DB, poolID string, itemID string) (int64, error) {
	var row inventoryModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pool_id = ? AND item_id = ?", strings.TrimSpace(poolID), strings.TrimSpace(itemID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.UnitsAvailable, nil
}

func creditInventoryTx(tx *gorm.DB, poolID string, itemID string, units int64, at time.Time) error {
	row := inventoryModel{
		PoolID:         strings.TrimSpace(poolID),
		ItemID:         strings.TrimSpace(itemID),
		UnitsAvailable: units,
		UpdatedAt:      at.UTC(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pool_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"units_available": gorm.Expr("pool_inventory.units_available + ?", units),
			"updated_at":      at.UTC(),
		}),
	}).Create(&row).Error
}

func debitInventoryTx(tx *gorm.DB, poolID string, itemID string, units int64, at time.Time) error {
	result := tx.Model(&inventoryModel{}).
		Where("pool_id = ? AND item_id = ? AND units_available >= ?",
			strings.TrimSpace(poolID), strings.TrimSpace(itemID), units).
		Updates(map[string]any{
			"units_available": gorm.Expr("units_available - ?", units),
			"updated_at":      at.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInsufficientInventory
	}
	return nil
}

type poolModel struct {
	PoolID              string     `gorm:"column:pool_id;primaryKey"`
	CommunityID         string     `gorm:"column:community_id"`
	CouncilID           string     `gorm:"column:council_id"`
	Name                string     `gorm:"column:name"`
	Description         string     `gorm:"column:description"`
	MaxUnitsPerUser     *int64     `gorm:"column:max_units_per_user"`
	MinimumContribution *int64     `gorm:"column:minimum_contribution"`
	AllowedItemIDs      []string   `gorm:"column:allowed_item_ids;type:text[]"`
	CreatedBy           string     `gorm:"column:created_by"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
	ClosedAt            *time.Time `gorm:"column:closed_at"`
}

func (poolModel) TableName() string {
	return "pools"
}

func poolModelFromEntity(item entities.Pool) poolModel {
	return poolModel{
		PoolID:              strings.TrimSpace(item.ID),
		CommunityID:         strings.TrimSpace(item.CommunityID),
		CouncilID:           strings.TrimSpace(item.CouncilID),
		Name:                strings.TrimSpace(item.Name),
		Description:         item.Description,
		MaxUnitsPerUser:     item.MaxUnitsPerUser,
		MinimumContribution: item.MinimumContribution,
		AllowedItemIDs:      item.AllowedItemIDs,
		CreatedBy:           strings.TrimSpace(item.CreatedBy),
		CreatedAt:           item.CreatedAt.UTC(),
		UpdatedAt:           item.UpdatedAt.UTC(),
		ClosedAt:            item.ClosedAt,
	}
}

func poolUpdatesFromEntity(item entities.Pool) map[string]any {
	return map[string]any{
		"name":                 strings.TrimSpace(item.Name),
		"description":          item.Description,
		"max_units_per_user":   item.MaxUnitsPerUser,
		"minimum_contribution": item.MinimumContribution,
		"allowed_item_ids":     item.AllowedItemIDs,
		"updated_at":           item.UpdatedAt.UTC(),
	}
}

func (m poolModel) toEntity() entities.Pool {
	return entities.Pool{
		ID:                  m.PoolID,
		CommunityID:         m.CommunityID,
		CouncilID:           m.CouncilID,
		Name:                m.Name,
		Description:         m.Description,
		MaxUnitsPerUser:     m.MaxUnitsPerUser,
		MinimumContribution: m.MinimumContribution,
		AllowedItemIDs:      m.AllowedItemIDs,
		CreatedBy:           m.CreatedBy,
		CreatedAt:           m.CreatedAt.UTC(),
		UpdatedAt:           m.UpdatedAt.UTC(),
		ClosedAt:            m.ClosedAt,
	}
}

type inventoryModel struct {
	PoolID         string    `gorm:"column:pool_id;primaryKey"`
	ItemID         string    `gorm:"column:item_id;primaryKey"`
	UnitsAvailable int64     `gorm:"column:units_available"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (inventoryModel) TableName() string {
	return "pool_inventory"
}

func (m inventoryModel) toEntity() entities.InventoryEntry {
	return entities.InventoryEntry{
		PoolID:         m.PoolID,
		ItemID:         m.ItemID,
		UnitsAvailable: m.UnitsAvailable,
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type contributionModel struct {
	ContributionID string     `gorm:"column:contribution_id;primaryKey"`
	PoolID         string     `gorm:"column:pool_id"`
	ItemID         string     `gorm:"column:item_id"`
	ContributorID  string     `gorm:"column:contributor_id"`
	UnitsOffered   int64      `gorm:"column:units_offered"`
	Title          string     `gorm:"column:title"`
	Message        string     `gorm:"column:message"`
	Status         string     `gorm:"column:status"`
	ReviewedBy     string     `gorm:"column:reviewed_by"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (contributionModel) TableName() string {
	return "pool_contributions"
}

func contributionModelFromEntity(item entities.Contribution) contributionModel {
	return contributionModel{
		ContributionID: strings.TrimSpace(item.ID),
		PoolID:         strings.TrimSpace(item.PoolID),
		ItemID:         strings.TrimSpace(item.ItemID),
		ContributorID:  strings.TrimSpace(item.ContributorID),
		UnitsOffered:   item.UnitsOffered,
		Title:          strings.TrimSpace(item.Title),
		Message:        item.Message,
		Status:         string(item.Status),
		ReviewedBy:     strings.TrimSpace(item.ReviewedBy),
		ReviewedAt:     item.ReviewedAt,
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
}

func (m contributionModel) toEntity() entities.Contribution {
	return entities.Contribution{
		ID:            m.ContributionID,
		PoolID:        m.PoolID,
		ItemID:        m.ItemID,
		ContributorID: m.ContributorID,
		UnitsOffered:  m.UnitsOffered,
		Title:         m.Title,
		Message:       m.Message,
		Status:        entities.ContributionStatus(m.Status),
		ReviewedBy:    m.ReviewedBy,
		ReviewedAt:    m.ReviewedAt,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type distributionModel struct {
	DistributionID   string    `gorm:"column:distribution_id;primaryKey"`
	PoolID           string    `gorm:"column:pool_id"`
	ItemID           string    `gorm:"column:item_id"`
	RecipientID      string    `gorm:"column:recipient_id"`
	UnitsDistributed int64     `gorm:"column:units_distributed"`
	Title            string    `gorm:"column:title"`
	Description      string    `gorm:"column:description"`
	DistributedBy    string    `gorm:"column:distributed_by"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (distributionModel) TableName() string {
	return "pool_distributions"
}

func distributionModelFromEntity(item entities.DistributionRecord) distributionModel {
	return distributionModel{
		DistributionID:   strings.TrimSpace(item.ID),
		PoolID:           strings.TrimSpace(item.PoolID),
		ItemID:           strings.TrimSpace(item.ItemID),
		RecipientID:      strings.TrimSpace(item.RecipientID),
		UnitsDistributed: item.UnitsDistributed,
		Title:            strings.TrimSpace(item.Title),
		Description:      item.Description,
		DistributedBy:    strings.TrimSpace(item.DistributedBy),
		CreatedAt:        item.CreatedAt.UTC(),
	}
}

func (m distributionModel) toEntity() entities.DistributionRecord {
	return entities.DistributionRecord{
		ID:               m.DistributionID,
		PoolID:           m.PoolID,
		ItemID:           m.ItemID,
		RecipientID:      m.RecipientID,
		UnitsDistributed: m.UnitsDistributed,
		Title:            m.Title,
		Description:      m.Description,
		DistributedBy:    m.DistributedBy,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "pool_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
