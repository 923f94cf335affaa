package entities

import "time"

// Pool is a council-managed container of contributed item inventory.
// A pool is never hard-deleted; ClosedAt marks it soft-closed once set.
type Pool struct {
	ID                  string
	CommunityID         string
	CouncilID           string
	Name                string
	Description         string
	MaxUnitsPerUser     *int64
	MinimumContribution *int64
	AllowedItemIDs      []string
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ClosedAt            *time.Time
}

// IsOpen reports whether the pool still accepts contributions and distributions.
func (p Pool) IsOpen() bool {
	return p.ClosedAt == nil
}

// AllowsItem checks the pool whitelist. An empty whitelist allows any item.
func (p Pool) AllowsItem(itemID string) bool {
	if len(p.AllowedItemIDs) == 0 {
		return true
	}
	for _, allowed := range p.AllowedItemIDs {
		if allowed == itemID {
			return true
		}
	}
	return false
}

// EffectiveCap resolves the per-user cap for a distribution: an explicit
// override wins over the pool default; nil means uncapped.
func (p Pool) EffectiveCap(override *int64) *int64 {
	if override != nil {
		return override
	}
	return p.MaxUnitsPerUser
}

// InventoryEntry is the authoritative running balance of available units for
// one item in one pool. UnitsAvailable is never negative.
type InventoryEntry struct {
	PoolID         string
	ItemID         string
	UnitsAvailable int64
	UpdatedAt      time.Time
}
