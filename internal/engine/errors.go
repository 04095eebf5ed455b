package engine

import "errors"

var (
	// ErrOrderNotFound is returned by CancelOrder when no order exists
	// with the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrCantCancel is returned by CancelOrder when the order's current
	// status is not Queued or Pending.
	ErrCantCancel = errors.New("order cannot be cancelled from its current status")
)
