package commands

import (
	"errors"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrNoStatusRequested = errors.New("at least one status field must be requested")
	ErrActorIsRequired   = errors.New("actor is required")
)

// ChangeOrderStatusCommand represents a request to move one, two, or all
// three of an order's status dimensions. Nil fields are left untouched.
//
// Example:
//
//	confirmed := order.OrderConfirmed
//	cmd, err := NewChangeOrderStatusCommand(orderID, &confirmed, nil, nil,
//	    "payment received", "admin:ops")
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	orderStatus    *order.OrderStatus
	paymentStatus  *order.PaymentStatus
	deliveryStatus *order.DeliveryStatus
	notes          string
	actor          string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a status-change command. At least one
// status field must be supplied; legality of the transitions themselves is
// checked by the status machine during handling.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	orderStatus *order.OrderStatus,
	paymentStatus *order.PaymentStatus,
	deliveryStatus *order.DeliveryStatus,
	notes string,
	actor string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatuses(orderStatus, paymentStatus, deliveryStatus),
		cmd.setActor(actor),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderStatus returns the requested commercial status, nil if untouched.
func (c ChangeOrderStatusCommand) OrderStatus() *order.OrderStatus {
	return c.orderStatus
}

// PaymentStatus returns the requested payment status, nil if untouched.
func (c ChangeOrderStatusCommand) PaymentStatus() *order.PaymentStatus {
	return c.paymentStatus
}

// DeliveryStatus returns the requested delivery status, nil if untouched.
func (c ChangeOrderStatusCommand) DeliveryStatus() *order.DeliveryStatus {
	return c.deliveryStatus
}

// Notes returns the free-text notes recorded with the change.
func (c ChangeOrderStatusCommand) Notes() string {
	return c.notes
}

// Actor returns the identity requesting the change.
func (c ChangeOrderStatusCommand) Actor() string {
	return c.actor
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatuses(
	orderStatus *order.OrderStatus,
	paymentStatus *order.PaymentStatus,
	deliveryStatus *order.DeliveryStatus,
) error {
	if orderStatus == nil && paymentStatus == nil && deliveryStatus == nil {
		return ErrNoStatusRequested
	}

	c.orderStatus = orderStatus
	c.paymentStatus = paymentStatus
	c.deliveryStatus = deliveryStatus
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
