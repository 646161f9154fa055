package inventory

import "errors"

// Business-rule failures surfaced by the inventory services. Callers
// match with errors.Is; messages wrap these with the offending item
// and quantities so the caller can correct the request.
var (
	ErrInsufficientStock        = errors.New("insufficient stock")
	ErrInvalidQuantity          = errors.New("invalid quantity")
	ErrDuplicateBatchItem       = errors.New("duplicate batch item")
	ErrOutboundNotFound         = errors.New("outbound ticket not found")
	ErrItemNotInOutbound        = errors.New("item not in outbound ticket")
	ErrQuantityExceedsAvailable = errors.New("quantity exceeds available")
	ErrInvalidState             = errors.New("invalid state for requested operation")
	ErrInvalidStorageLocation   = errors.New("invalid storage location format")
)
