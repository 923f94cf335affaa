package errors

import "errors"

var (
	ErrPoolNotFound             = errors.New("pool not found")
	ErrPoolExists               = errors.New("pool already exists")
	ErrPoolClosed               = errors.New("pool is closed")
	ErrInvalidPoolInput         = errors.New("invalid pool input")
	ErrContributionNotFound     = errors.New("contribution not found for this pool")
	ErrBelowMinimumContribution = errors.New("offered units are below the pool minimum contribution")
	ErrItemNotAllowed           = errors.New("item is not allowed in this pool")
	ErrInvalidState             = errors.New("contribution has already been processed")
	ErrInvalidContributionInput = errors.New("invalid contribution input")
	ErrInsufficientInventory    = errors.New("not enough units remain in pool inventory")
	ErrInventoryChanged         = errors.New("pool inventory changed since the plan was computed")
	ErrUnsupportedStrategy      = errors.New("unsupported fulfillment strategy")
	ErrInvalidDistributionInput = errors.New("invalid distribution input")
	// ErrCapExceeded signals an allocation plan violating the per-user cap.
	// Unreachable when the allocator is correct; treated as an internal fault.
	ErrCapExceeded = errors.New("allocation plan exceeds per-user cap")
)
