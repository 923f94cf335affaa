package entities

import "time"

type ContributionStatus string

const (
	ContributionStatusPending   ContributionStatus = "pending"
	ContributionStatusConfirmed ContributionStatus = "confirmed"
	ContributionStatusRejected  ContributionStatus = "rejected"
)

// Contribution is a member's offer of units into a pool, pending reviewer
// confirmation. Confirmation is the only path that credits pool inventory.
type Contribution struct {
	ID            string
	PoolID        string
	ItemID        string
	ContributorID string
	UnitsOffered  int64
	Title         string
	Message       string
	Status        ContributionStatus
	ReviewedBy    string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPending reports whether the contribution can still be confirmed or rejected.
func (c Contribution) IsPending() bool {
	return c.Status == ContributionStatusPending
}
