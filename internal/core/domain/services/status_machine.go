package services

import (
	"errors"
	"fmt"
	"time"

	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"
)

// ErrIllegalStatusTransition is the sentinel wrapped by every
// IllegalTransitionError. Transition attempts outside the policy table are
// expected, user-facing outcomes rather than defects, so callers match on
// this sentinel and render the details.
var ErrIllegalStatusTransition = errors.New("illegal status transition")

// IllegalTransitionError reports one rejected status change with the field
// and the from/to values, for rendering to the requesting actor.
type IllegalTransitionError struct {
	Field order.StatusField
	From  string
	To    string
}

func NewIllegalTransitionError(field order.StatusField, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{Field: field, From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%v: %s cannot go from %q to %q",
		ErrIllegalStatusTransition, e.Field, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalStatusTransition
}

// TransitionPolicy is the legality table for the three status dimensions,
// injected into the status machine as configuration. Each map entry lists the
// states reachable from a given state; a missing entry means the state is
// terminal for that dimension.
type TransitionPolicy struct {
	orderRules    map[order.OrderStatus]map[order.OrderStatus]bool
	paymentRules  map[order.PaymentStatus]map[order.PaymentStatus]bool
	deliveryRules map[order.DeliveryStatus]map[order.DeliveryStatus]bool
}

func orderRuleSet(statuses ...order.OrderStatus) map[order.OrderStatus]bool {
	set := make(map[order.OrderStatus]bool, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return set
}

// StrictPolicy returns the policy that enforces the full lifecycle graphs.
//
// Order status walks pending, confirmed, processing, shipped, delivered in
// order, with cancelled and rejected reachable from any non-terminal state.
// Payment can fail, cancel, or refund from pending or paid, retry after a
// failure, and never leaves refunded. Delivery walks pending, picked_up,
// delivered, returned; a drop may be recorded directly from pending when the
// worker never logged the intermediate pickup.
func StrictPolicy() TransitionPolicy {
	return TransitionPolicy{
		orderRules: map[order.OrderStatus]map[order.OrderStatus]bool{
			order.OrderPending:    orderRuleSet(order.OrderConfirmed, order.OrderCancelled, order.OrderRejected),
			order.OrderConfirmed:  orderRuleSet(order.OrderProcessing, order.OrderCancelled, order.OrderRejected),
			order.OrderProcessing: orderRuleSet(order.OrderShipped, order.OrderCancelled, order.OrderRejected),
			order.OrderShipped:    orderRuleSet(order.OrderDelivered, order.OrderCancelled, order.OrderRejected),
		},
		paymentRules: map[order.PaymentStatus]map[order.PaymentStatus]bool{
			order.PaymentPending: {
				order.PaymentPaid: true, order.PaymentFailed: true,
				order.PaymentCancelled: true, order.PaymentRefunded: true,
			},
			order.PaymentPaid: {
				order.PaymentFailed: true, order.PaymentCancelled: true,
				order.PaymentRefunded: true,
			},
			order.PaymentFailed: {
				order.PaymentPaid: true, order.PaymentCancelled: true,
			},
		},
		deliveryRules: map[order.DeliveryStatus]map[order.DeliveryStatus]bool{
			order.DeliveryPending: {
				order.DeliveryPickedUp: true, order.DeliveryDelivered: true,
			},
			order.DeliveryPickedUp: {order.DeliveryDelivered: true},
			order.DeliveryDelivered: {order.DeliveryReturned: true},
		},
	}
}

// PermissivePolicy returns the policy that allows any order-status change,
// matching the historical admin behavior of setting statuses ad hoc. Payment
// and delivery rules stay strict; only the commercial status was ever
// freely editable.
func PermissivePolicy() TransitionPolicy {
	strict := StrictPolicy()
	return TransitionPolicy{
		orderRules:    nil, // nil order table means everything is allowed
		paymentRules:  strict.paymentRules,
		deliveryRules: strict.deliveryRules,
	}
}

func (p TransitionPolicy) allowsOrder(from, to order.OrderStatus) bool {
	if p.orderRules == nil {
		return true
	}
	return p.orderRules[from][to]
}

func (p TransitionPolicy) allowsPayment(from, to order.PaymentStatus) bool {
	return p.paymentRules[from][to]
}

func (p TransitionPolicy) allowsDelivery(from, to order.DeliveryStatus) bool {
	return p.deliveryRules[from.OrPending()][to]
}

// StatusNotification is the payload handed to the notification collaborator
// after a commercial status change. Delivery is fire-and-forget: a failed
// notification is logged and never rolls back the transition.
type StatusNotification struct {
	CustomerEmail     string    `json:"customerEmail"`
	OrderNumber       string    `json:"orderNumber"`
	PreviousStatus    string    `json:"previousStatus"`
	NewStatus         string    `json:"newStatus"`
	RentalStart       time.Time `json:"rentalStart"`
	RentalEnd         time.Time `json:"rentalEnd"`
	TotalAmount       int64     `json:"totalAmount"`
	LineItemSummaries []string  `json:"lineItemSummaries"`
}

// TransitionRequest names the status values an actor wants to set. Nil fields
// are left untouched; a request may change one, two, or all three dimensions
// in a single call.
type TransitionRequest struct {
	OrderStatus    *order.OrderStatus
	PaymentStatus  *order.PaymentStatus
	DeliveryStatus *order.DeliveryStatus
	Notes          string
	Actor          string
	At             time.Time
}

// TransitionResult carries the audit records for every field that actually
// changed and, when the commercial status moved, the notification payload for
// the customer. The caller persists the records and the mutated order as one
// write.
type TransitionResult struct {
	Changes      []order.StatusChange
	Notification *StatusNotification
}

// Changed reports whether the transition touched the order at all.
// A request that only restates current values changes nothing and is
// not an error.
func (r *TransitionResult) Changed() bool {
	return len(r.Changes) > 0
}

// StatusMachine applies status transitions to an order under an injected
// legality policy.
//
// The three status dimensions are independent parallel machines sharing one
// order. Each requested field is checked against the policy and applied on
// the aggregate; one StatusChange audit record is appended per field that
// actually changed. Requesting the value a field already holds is a silent
// no-op for that field. Any illegal field rejects the whole request before
// the order is mutated.
type StatusMachine struct {
	policy TransitionPolicy
}

// NewStatusMachine creates a StatusMachine with the given policy.
func NewStatusMachine(policy TransitionPolicy) StatusMachine {
	return StatusMachine{policy: policy}
}

// Transition validates and applies the requested status changes.
func (m StatusMachine) Transition(o *order.Order, req TransitionRequest) (*TransitionResult, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if req.Actor == "" {
		return nil, errs.NewValueIsRequiredError("actor")
	}
	if req.At.IsZero() {
		return nil, errs.NewValueIsRequiredError("at")
	}

	plan, err := m.plan(o, req)
	if err != nil {
		return nil, err
	}

	result := &TransitionResult{}
	previousOrderStatus := o.OrderStatus()

	for _, step := range plan {
		if err = step.apply(o, req.At); err != nil {
			return nil, err
		}

		record, recordErr := order.NewStatusChange(
			o.ID(), step.field, step.value, req.Notes, req.Actor, req.At)
		if recordErr != nil {
			return nil, recordErr
		}
		result.Changes = append(result.Changes, record)

		if step.field == order.FieldOrderStatus {
			result.Notification = buildNotification(o, previousOrderStatus)
		}
	}

	return result, nil
}

type transitionStep struct {
	field order.StatusField
	value string
	apply func(o *order.Order, at time.Time) error
}

// plan checks every requested field against the policy before anything is
// applied, so an illegal request leaves the order untouched.
func (m StatusMachine) plan(o *order.Order, req TransitionRequest) ([]transitionStep, error) {
	var steps []transitionStep

	if req.OrderStatus != nil && *req.OrderStatus != o.OrderStatus() {
		requested := *req.OrderStatus
		if err := requested.Validate(); err != nil {
			return nil, err
		}
		if !m.policy.allowsOrder(o.OrderStatus(), requested) {
			return nil, NewIllegalTransitionError(
				order.FieldOrderStatus, o.OrderStatus().String(), requested.String())
		}
		steps = append(steps, transitionStep{
			field: order.FieldOrderStatus,
			value: requested.String(),
			apply: func(o *order.Order, at time.Time) error {
				return o.ApplyOrderStatus(requested, at)
			},
		})
	}

	if req.PaymentStatus != nil && *req.PaymentStatus != o.PaymentStatus() {
		requested := *req.PaymentStatus
		if err := requested.Validate(); err != nil {
			return nil, err
		}
		if !m.policy.allowsPayment(o.PaymentStatus(), requested) {
			return nil, NewIllegalTransitionError(
				order.FieldPaymentStatus, o.PaymentStatus().String(), requested.String())
		}
		steps = append(steps, transitionStep{
			field: order.FieldPaymentStatus,
			value: requested.String(),
			apply: func(o *order.Order, at time.Time) error {
				return o.ApplyPaymentStatus(requested, at)
			},
		})
	}

	if req.DeliveryStatus != nil && *req.DeliveryStatus != o.DeliveryStatus() {
		requested := *req.DeliveryStatus
		if err := requested.Validate(); err != nil {
			return nil, err
		}
		if requested == order.DeliveryNotSet {
			return nil, errs.NewValueIsInvalidError("deliveryStatus cannot be cleared")
		}
		if !m.policy.allowsDelivery(o.DeliveryStatus(), requested) {
			return nil, NewIllegalTransitionError(
				order.FieldDeliveryStatus, o.DeliveryStatus().OrPending().String(), requested.String())
		}
		steps = append(steps, transitionStep{
			field: order.FieldDeliveryStatus,
			value: requested.String(),
			apply: func(o *order.Order, at time.Time) error {
				return o.ApplyDeliveryStatus(requested, at)
			},
		})
	}

	return steps, nil
}

func buildNotification(o *order.Order, previous order.OrderStatus) *StatusNotification {
	return &StatusNotification{
		CustomerEmail:     o.CustomerEmail(),
		OrderNumber:       o.OrderNumber(),
		PreviousStatus:    previous.String(),
		NewStatus:         o.OrderStatus().String(),
		RentalStart:       o.Window().StartDate(),
		RentalEnd:         o.Window().EndDate(),
		TotalAmount:       o.TotalAmount().Int64(),
		LineItemSummaries: o.ItemSummaries(),
	}
}
