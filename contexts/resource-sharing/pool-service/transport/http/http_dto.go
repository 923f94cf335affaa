package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePoolRequest struct {
	CommunityID         string   `json:"community_id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	MaxUnitsPerUser     *int64   `json:"max_units_per_user"`
	MinimumContribution *int64   `json:"minimum_contribution"`
	AllowedItemIDs      []string `json:"allowed_item_ids"`
}

type UpdatePoolRequest struct {
	Name                *string   `json:"name"`
	Description         *string   `json:"description"`
	MaxUnitsPerUser     *int64    `json:"max_units_per_user"`
	MinimumContribution *int64    `json:"minimum_contribution"`
	AllowedItemIDs      *[]string `json:"allowed_item_ids"`
}

type ContributeRequest struct {
	ItemID       string `json:"item_id"`
	UnitsOffered int64  `json:"units_offered"`
	Title        string `json:"title"`
	Message      string `json:"message"`
}

type DistributeRequest struct {
	ItemID      string `json:"item_id"`
	RecipientID string `json:"recipient_id"`
	Units       int64  `json:"units"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type MassDistributeRequest struct {
	ItemID            string   `json:"item_id"`
	RecipientIDs      []string `json:"recipient_ids"`
	PerUserCap        *int64   `json:"per_user_cap"`
	Strategy          string   `json:"strategy"`
	ExpectedAvailable int64    `json:"expected_available"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
}

type PreviewMassDistributionRequest struct {
	ItemID       string   `json:"item_id"`
	RecipientIDs []string `json:"recipient_ids"`
	PerUserCap   *int64   `json:"per_user_cap"`
	Strategy     string   `json:"strategy"`
}

type PoolDTO struct {
	PoolID              string   `json:"pool_id"`
	CommunityID         string   `json:"community_id"`
	CouncilID           string   `json:"council_id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	MaxUnitsPerUser     *int64   `json:"max_units_per_user"`
	MinimumContribution *int64   `json:"minimum_contribution"`
	AllowedItemIDs      []string `json:"allowed_item_ids"`
	CreatedBy           string   `json:"created_by"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
	ClosedAt            *string  `json:"closed_at"`
}

type InventoryEntryDTO struct {
	ItemID         string `json:"item_id"`
	UnitsAvailable int64  `json:"units_available"`
	UpdatedAt      string `json:"updated_at"`
}

type ContributionDTO struct {
	ContributionID string  `json:"contribution_id"`
	PoolID         string  `json:"pool_id"`
	ItemID         string  `json:"item_id"`
	ContributorID  string  `json:"contributor_id"`
	UnitsOffered   int64   `json:"units_offered"`
	Title          string  `json:"title"`
	Message        string  `json:"message"`
	Status         string  `json:"status"`
	ReviewedBy     string  `json:"reviewed_by,omitempty"`
	ReviewedAt     *string `json:"reviewed_at"`
	CreatedAt      string  `json:"created_at"`
}

type DistributionRecordDTO struct {
	DistributionID   string `json:"distribution_id"`
	PoolID           string `json:"pool_id"`
	ItemID           string `json:"item_id"`
	RecipientID      string `json:"recipient_id"`
	UnitsDistributed int64  `json:"units_distributed"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	DistributedBy    string `json:"distributed_by"`
	CreatedAt        string `json:"created_at"`
}

type AllocationEntryDTO struct {
	RecipientID    string `json:"recipient_id"`
	UnitsAllocated int64  `json:"units_allocated"`
}

type AllocationPlanDTO struct {
	Strategy       string               `json:"strategy"`
	Available      int64                `json:"available"`
	Entries        []AllocationEntryDTO `json:"entries"`
	TotalAllocated int64                `json:"total_allocated"`
	UnitsRemaining int64                `json:"units_remaining"`
}

type CreatePoolResponse struct {
	Pool PoolDTO `json:"pool"`
}

type UpdatePoolResponse struct {
	Pool PoolDTO `json:"pool"`
}

type GetPoolResponse struct {
	Pool      PoolDTO             `json:"pool"`
	Inventory []InventoryEntryDTO `json:"inventory"`
}

type CouncilPoolSummaryDTO struct {
	Pool       PoolDTO `json:"pool"`
	ItemCount  int     `json:"item_count"`
	TotalUnits int64   `json:"total_units"`
}

type ListPoolsResponse struct {
	Items []CouncilPoolSummaryDTO `json:"items"`
}

type ListInventoryResponse struct {
	Items []InventoryEntryDTO `json:"items"`
}

type ContributeResponse struct {
	Contribution ContributionDTO `json:"contribution"`
}

type ReviewContributionResponse struct {
	Contribution ContributionDTO `json:"contribution"`
}

type ListContributionsResponse struct {
	Items []ContributionDTO `json:"items"`
}

type DistributeResponse struct {
	Record DistributionRecordDTO `json:"record"`
}

type MassDistributeResponse struct {
	Plan    AllocationPlanDTO       `json:"plan"`
	Records []DistributionRecordDTO `json:"records"`
}

type PreviewMassDistributionResponse struct {
	Plan AllocationPlanDTO `json:"plan"`
}

type ListDistributionsResponse struct {
	Items []DistributionRecordDTO `json:"items"`
}
