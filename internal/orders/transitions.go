package orders

import (
	"github.com/trendora-io/storefront-backend/pkg/enums"
	pkgerrors "github.com/trendora-io/storefront-backend/pkg/errors"
)

// allowedTransitions is the directed status graph. Cancellation is only
// reachable before the parcel leaves the warehouse.
var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:    {enums.OrderStatusProcessing, enums.OrderStatusCancelled},
	enums.OrderStatusProcessing: {enums.OrderStatusShipped, enums.OrderStatusCancelled},
	enums.OrderStatusShipped:    {enums.OrderStatusDelivered},
	enums.OrderStatusDelivered:  {enums.OrderStatusCompleted},
}

// ValidateTransition checks the status change against the graph and returns a
// typed error naming the legal next statuses when it is not allowed.
func ValidateTransition(from, to enums.OrderStatus) error {
	if !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]string{"status": to.String()})
	}
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return nil
		}
	}

	allowed := make([]string, 0, len(allowedTransitions[from]))
	for _, candidate := range allowedTransitions[from] {
		allowed = append(allowed, candidate.String())
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "order status transition not allowed").
		WithDetails(map[string]any{
			"from":    from.String(),
			"to":      to.String(),
			"allowed": allowed,
		})
}
