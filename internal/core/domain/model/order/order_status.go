package order

import (
	"fmt"

	"rental/internal/pkg/errs"
)

// OrderStatus is the commercial lifecycle dimension of an order, from
// placement through fulfillment. Which transitions between statuses are
// legal is decided by the status machine's injected policy; this type only
// defines the value set and terminal states.
type OrderStatus int

const (
	// OrderStatusUnknown represents an invalid or undefined order status.
	OrderStatusUnknown OrderStatus = iota

	// OrderPending is the initial status of a freshly placed order.
	OrderPending

	// OrderConfirmed means an administrator accepted the order.
	OrderConfirmed

	// OrderProcessing means the order is being prepared for shipment.
	OrderProcessing

	// OrderShipped means the order left for the customer.
	OrderShipped

	// OrderDelivered means the order reached the customer. Terminal.
	OrderDelivered

	// OrderCancelled means the order was withdrawn. Terminal.
	OrderCancelled

	// OrderRejected means an administrator declined the order. Terminal.
	OrderRejected
)

func getOrderStatusStrings() map[OrderStatus]string {
	return map[OrderStatus]string{
		OrderStatusUnknown: "Unknown",
		OrderPending:       "pending",
		OrderConfirmed:     "confirmed",
		OrderProcessing:    "processing",
		OrderShipped:       "shipped",
		OrderDelivered:     "delivered",
		OrderCancelled:     "cancelled",
		OrderRejected:      "rejected",
	}
}

func getValidOrderStatusStrings() map[OrderStatus]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[OrderStatus]string{
		OrderPending:    "pending",
		OrderConfirmed:  "confirmed",
		OrderProcessing: "processing",
		OrderShipped:    "shipped",
		OrderDelivered:  "delivered",
		OrderCancelled:  "cancelled",
		OrderRejected:   "rejected",
	}
}

// Validate checks if the OrderStatus is one of the valid values.
func (s OrderStatus) Validate() error {
	if _, ok := getValidOrderStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderStatus",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the storage/display name of the status.
func (s OrderStatus) String() string {
	if str, ok := getOrderStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further order-status transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderRejected
}

// OrderStatusFromString parses a stored order status name.
func OrderStatusFromString(s string) (OrderStatus, error) {
	for status, str := range getValidOrderStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return OrderStatusUnknown, errs.NewValueIsInvalidErrorWithCause("orderStatus",
		fmt.Errorf("%q is not a valid order status", s))
}
