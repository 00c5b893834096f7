package order

import (
	"errors"
	"fmt"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrItemsAreRequired is returned when attempting to create an order without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrOrderNotAssignedToWorker is returned when a delivery worker acts on an
	// order whose delivery-partner reference does not match them. This indicates
	// a programming or data-integrity defect, not a business outcome.
	ErrOrderNotAssignedToWorker = errors.New("order is not assigned to this delivery worker")
	// ErrPickupRequiresDrop is returned when a pickup is marked complete on an
	// order that was never dropped off.
	ErrPickupRequiresDrop = errors.New("pickup cannot be completed before the drop")
	// ErrPricingIsInconsistent is returned when the supplied pricing snapshot
	// disagrees with the line items it claims to summarize.
	ErrPricingIsInconsistent = errors.New("pricing snapshot does not match line items")
)

// Order is the aggregate root for one rental booking.
//
// An order is created once at checkout with its items and pricing snapshot;
// afterwards only the three status fields, the notes, the delivery-partner
// assignment, and the delivery/pickup timestamps change. Items and amounts
// are never mutated after placement.
//
// Invariants:
//   - The item list is non-empty and every item is valid
//   - subtotal equals the sum of the line totals
//   - totalAmount equals subtotal + deliveryCharge - discountAmount,
//     clamped at zero
//   - deliveryTime and pickupTime are each recorded at most once
//
// Transition legality between status values is enforced by the status
// machine service; the aggregate's Apply methods only guard value validity
// and the once-only timestamps.
type Order struct {
	id            kernel.UUID
	orderNumber   string
	customerEmail string

	items  []Item
	window RentalWindow

	subtotal          kernel.Money
	deliveryCharge    kernel.Money
	discountAmount    kernel.Money
	totalAmount       kernel.Money
	appliedCouponCode *string

	orderStatus    OrderStatus
	paymentStatus  PaymentStatus
	deliveryStatus DeliveryStatus

	// deliveryPartnerID is the assigned delivery worker (nil if unassigned)
	deliveryPartnerID *kernel.UUID
	deliveryTime      *time.Time
	pickupTime        *time.Time

	notes     string
	createdAt time.Time
	updatedAt time.Time
	// version is the optimistic-concurrency token checked by the storage layer
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates a freshly placed order with pending order and payment
// statuses and no delivery status. The pricing snapshot must be internally
// consistent with the items; it is computed by the pricing calculator, and
// the constructor re-checks it to guard against callers assembling amounts
// by hand.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerEmail string,
	items []Item,
	window RentalWindow,
	subtotal kernel.Money,
	deliveryCharge kernel.Money,
	discountAmount kernel.Money,
	totalAmount kernel.Money,
	appliedCouponCode *string,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		orderStatus:    OrderPending,
		paymentStatus:  PaymentPending,
		deliveryStatus: DeliveryNotSet,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerEmail(customerEmail),
		o.setItems(items),
		o.setWindow(window),
		o.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	if err := o.setPricing(subtotal, deliveryCharge, discountAmount, totalAmount); err != nil {
		return nil, err
	}

	o.appliedCouponCode = appliedCouponCode
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its status
// fields, timestamps, and optimistic-concurrency version.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerEmail string,
	items []Item,
	window RentalWindow,
	subtotal kernel.Money,
	deliveryCharge kernel.Money,
	discountAmount kernel.Money,
	totalAmount kernel.Money,
	appliedCouponCode *string,
	orderStatus OrderStatus,
	paymentStatus PaymentStatus,
	deliveryStatus DeliveryStatus,
	deliveryPartnerID *kernel.UUID,
	deliveryTime *time.Time,
	pickupTime *time.Time,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Order, error) {
	o, err := NewOrder(id, orderNumber, customerEmail, items, window,
		subtotal, deliveryCharge, discountAmount, totalAmount, appliedCouponCode, createdAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		orderStatus.Validate(),
		paymentStatus.Validate(),
		deliveryStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if deliveryPartnerID != nil {
		if err = deliveryPartnerID.Validate(); err != nil {
			return nil, err
		}
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("order")
	}

	o.orderStatus = orderStatus
	o.paymentStatus = paymentStatus
	o.deliveryStatus = deliveryStatus
	o.deliveryPartnerID = deliveryPartnerID
	o.deliveryTime = deliveryTime
	o.pickupTime = pickupTime
	o.notes = notes
	o.updatedAt = updatedAt
	o.version = version
	return o, nil
}

// Validate ensures the Order was created through a factory function.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerEmail returns the customer's notification address.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Items returns the order's line items.
func (o *Order) Items() []Item {
	return o.items
}

// ItemSummaries renders every line for notification payloads.
func (o *Order) ItemSummaries() []string {
	summaries := make([]string, 0, len(o.items))
	for _, item := range o.items {
		summaries = append(summaries, item.Summary())
	}
	return summaries
}

// Window returns the rental window.
func (o *Order) Window() RentalWindow {
	return o.window
}

// Subtotal returns the sum of the line totals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryCharge returns the delivery charge supplied by pricing policy.
func (o *Order) DeliveryCharge() kernel.Money {
	return o.deliveryCharge
}

// DiscountAmount returns the coupon discount, zero if none was applied.
func (o *Order) DiscountAmount() kernel.Money {
	return o.discountAmount
}

// TotalAmount returns the amount the customer pays; never negative.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// AppliedCouponCode returns the coupon code applied at checkout, nil if none.
func (o *Order) AppliedCouponCode() *string {
	return o.appliedCouponCode
}

// OrderStatus returns the commercial lifecycle status.
func (o *Order) OrderStatus() OrderStatus {
	return o.orderStatus
}

// PaymentStatus returns the payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// DeliveryStatus returns the delivery status; DeliveryNotSet if never handled.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// DeliveryPartner returns the assigned delivery worker's ID, nil if unassigned.
func (o *Order) DeliveryPartner() *kernel.UUID {
	return o.deliveryPartnerID
}

// DeliveryTime returns when the drop was completed, nil if it wasn't.
func (o *Order) DeliveryTime() *time.Time {
	return o.deliveryTime
}

// PickupTime returns when the pickup was completed, nil if it wasn't.
func (o *Order) PickupTime() *time.Time {
	return o.pickupTime
}

// Notes returns the order's free-text notes.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last modified.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic-concurrency token.
func (o *Order) Version() int {
	return o.version
}

// AssignDeliveryPartner assigns (or reassigns) the delivery worker
// responsible for this order's drop and pickup.
func (o *Order) AssignDeliveryPartner(partnerID kernel.UUID, at time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	o.deliveryPartnerID = &partnerID
	o.touch(at)
	return nil
}

// IsAssignedTo reports whether the given delivery worker owns this order.
func (o *Order) IsAssignedTo(partnerID kernel.UUID) bool {
	return o.deliveryPartnerID != nil && o.deliveryPartnerID.IsEqual(partnerID)
}

// UpdateNotes replaces the order's free-text notes.
func (o *Order) UpdateNotes(notes string, at time.Time) {
	o.notes = notes
	o.touch(at)
}

// ApplyOrderStatus sets the commercial status. Legality of the transition
// must have been checked by the status machine.
func (o *Order) ApplyOrderStatus(newStatus OrderStatus, at time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	o.orderStatus = newStatus
	o.touch(at)
	return nil
}

// ApplyPaymentStatus sets the payment status. Legality of the transition
// must have been checked by the status machine.
func (o *Order) ApplyPaymentStatus(newStatus PaymentStatus, at time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	o.paymentStatus = newStatus
	o.touch(at)
	return nil
}

// ApplyDeliveryStatus sets the delivery status. Entering DeliveryDelivered
// records the delivery timestamp and entering DeliveryReturned records the
// pickup timestamp; each is set only on the first transition into that state
// and never overwritten by repeated calls.
func (o *Order) ApplyDeliveryStatus(newStatus DeliveryStatus, at time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if newStatus == DeliveryNotSet {
		return errs.NewValueIsInvalidError("deliveryStatus cannot be cleared")
	}

	o.deliveryStatus = newStatus
	if newStatus == DeliveryDelivered && o.deliveryTime == nil {
		t := at
		o.deliveryTime = &t
	}
	if newStatus == DeliveryReturned && o.pickupTime == nil {
		t := at
		o.pickupTime = &t
	}
	o.touch(at)
	return nil
}

// MarkDropCompleted records that the assigned worker dropped the order off.
// Repeating the call after the drop is already recorded is a no-op: the first
// timestamp wins. Returns whether the order actually changed.
func (o *Order) MarkDropCompleted(partnerID kernel.UUID, at time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if !o.IsAssignedTo(partnerID) {
		return false, ErrOrderNotAssignedToWorker
	}
	if o.deliveryStatus == DeliveryDelivered || o.deliveryStatus == DeliveryReturned {
		return false, nil
	}
	if err := o.ApplyDeliveryStatus(DeliveryDelivered, at); err != nil {
		return false, err
	}
	return true, nil
}

// MarkPickupCompleted records that the assigned worker collected the rented
// items back. The drop must have been completed first. Repeating the call is
// a no-op: the first timestamp wins. Returns whether the order actually changed.
func (o *Order) MarkPickupCompleted(partnerID kernel.UUID, at time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if !o.IsAssignedTo(partnerID) {
		return false, ErrOrderNotAssignedToWorker
	}
	if o.deliveryStatus == DeliveryReturned {
		return false, nil
	}
	if o.deliveryStatus != DeliveryDelivered {
		return false, ErrPickupRequiresDrop
	}
	if err := o.ApplyDeliveryStatus(DeliveryReturned, at); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerEmail(customerEmail string) error {
	if customerEmail == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	o.customerEmail = customerEmail
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setWindow(window RentalWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	o.window = window
	return nil
}

func (o *Order) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("placedAt")
	}
	o.createdAt = placedAt
	o.updatedAt = placedAt
	return nil
}

func (o *Order) setPricing(subtotal, deliveryCharge, discountAmount, totalAmount kernel.Money) error {
	if subtotal.IsNegative() || deliveryCharge.IsNegative() || discountAmount.IsNegative() {
		return errs.NewValueIsInvalidError("pricing amounts must not be negative")
	}

	lineSum := kernel.Money(0)
	for _, item := range o.items {
		lineSum = lineSum.Add(item.LineTotal())
	}
	if subtotal != lineSum {
		return fmt.Errorf("%w: subtotal %d != line sum %d",
			ErrPricingIsInconsistent, subtotal.Int64(), lineSum.Int64())
	}

	expectedTotal := subtotal.Add(deliveryCharge).Sub(discountAmount).ClampNonNegative()
	if totalAmount != expectedTotal {
		return fmt.Errorf("%w: total %d != expected %d",
			ErrPricingIsInconsistent, totalAmount.Int64(), expectedTotal.Int64())
	}

	o.subtotal = subtotal
	o.deliveryCharge = deliveryCharge
	o.discountAmount = discountAmount
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) touch(at time.Time) {
	if at.After(o.updatedAt) {
		o.updatedAt = at
	}
}
