package order

import (
	"fmt"

	"rental/internal/pkg/errs"
)

// DeliveryStatus is the physical-handling dimension of an order.
// Unlike the other status dimensions, the zero value DeliveryNotSet is legal:
// orders placed before any delivery handling have no delivery status, and an
// absent status is treated as pending throughout the domain.
type DeliveryStatus int

const (
	// DeliveryNotSet means no delivery status has been recorded yet.
	// Treated as DeliveryPending everywhere a status is evaluated.
	DeliveryNotSet DeliveryStatus = iota

	// DeliveryPending means the order awaits handling by a delivery worker.
	DeliveryPending

	// DeliveryPickedUp means the worker collected the order for drop-off.
	DeliveryPickedUp

	// DeliveryDelivered means the order was dropped off at the customer.
	DeliveryDelivered

	// DeliveryReturned means the rented items were collected back. Terminal.
	DeliveryReturned
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryNotSet:    "",
		DeliveryPending:   "pending",
		DeliveryPickedUp:  "picked_up",
		DeliveryDelivered: "delivered",
		DeliveryReturned:  "returned",
	}
}

// Validate checks if the DeliveryStatus is one of the valid values.
// DeliveryNotSet is valid; it is the state of an order never touched by
// delivery handling.
func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the storage/display name of the status. DeliveryNotSet is
// stored as an empty string.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// OrPending resolves an absent status to DeliveryPending.
func (s DeliveryStatus) OrPending() DeliveryStatus {
	if s == DeliveryNotSet {
		return DeliveryPending
	}
	return s
}

// DeliveryStatusFromString parses a stored delivery status name.
// The empty string parses to DeliveryNotSet.
func DeliveryStatusFromString(s string) (DeliveryStatus, error) {
	for status, str := range getDeliveryStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return DeliveryNotSet, errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
		fmt.Errorf("%q is not a valid delivery status", s))
}
