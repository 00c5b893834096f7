package commands

import (
	"errors"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrOrderNumberIsRequired   = errors.New("order number is required")
	ErrCustomerEmailIsRequired = errors.New("customer email is required")
	ErrItemsAreRequired        = errors.New("at least one line item is required")
	ErrRentalDatesAreRequired  = errors.New("rental start and end dates are required")
)

// OrderItemInput is one requested line of a new rental order, as supplied by
// the checkout caller. Validation of quantities and prices happens in the
// domain when the line is turned into an order item.
type OrderItemInput struct {
	ProductID   kernel.UUID
	CategoryID  kernel.UUID
	VendorID    kernel.UUID
	ProductName string
	SizeVariant string
	Quantity    int
	UnitPrice   int64
}

// PlaceOrderCommand represents a checkout request: line items, a rental
// window, a delivery charge from pricing policy, and an optional coupon code.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), "RNT-1001", "jo@example.com",
//	    items, start, end, 100, "SUMMER20")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	orderNumber    string
	customerEmail  string
	items          []OrderItemInput
	startDate      time.Time
	endDate        time.Time
	deliveryCharge kernel.Money
	couponCode     string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a checkout command. The coupon code may be
// empty when the customer applied none. Date ordering and line-item contents
// are validated by the domain during handling.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	customerEmail string,
	items []OrderItemInput,
	startDate time.Time,
	endDate time.Time,
	deliveryCharge kernel.Money,
	couponCode string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNumber(orderNumber),
		cmd.setCustomerEmail(customerEmail),
		cmd.setItems(items),
		cmd.setDates(startDate, endDate),
		cmd.setDeliveryCharge(deliveryCharge),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.couponCode = couponCode
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be stored under.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human-facing order number.
func (c PlaceOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// CustomerEmail returns the customer's notification address.
func (c PlaceOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Items returns the requested line items.
func (c PlaceOrderCommand) Items() []OrderItemInput {
	return c.items
}

// StartDate returns the first rental day.
func (c PlaceOrderCommand) StartDate() time.Time {
	return c.startDate
}

// EndDate returns the rental end day.
func (c PlaceOrderCommand) EndDate() time.Time {
	return c.endDate
}

// DeliveryCharge returns the delivery charge supplied by pricing policy.
func (c PlaceOrderCommand) DeliveryCharge() kernel.Money {
	return c.deliveryCharge
}

// CouponCode returns the candidate coupon code, empty if none was applied.
func (c PlaceOrderCommand) CouponCode() string {
	return c.couponCode
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *PlaceOrderCommand) setCustomerEmail(customerEmail string) error {
	if customerEmail == "" {
		return ErrCustomerEmailIsRequired
	}

	c.customerEmail = customerEmail
	return nil
}

func (c *PlaceOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *PlaceOrderCommand) setDates(startDate, endDate time.Time) error {
	if startDate.IsZero() || endDate.IsZero() {
		return ErrRentalDatesAreRequired
	}

	c.startDate = startDate
	c.endDate = endDate
	return nil
}

func (c *PlaceOrderCommand) setDeliveryCharge(deliveryCharge kernel.Money) error {
	if deliveryCharge.IsNegative() {
		return errors.New("delivery charge must not be negative")
	}

	c.deliveryCharge = deliveryCharge
	return nil
}
