package order

import (
	"fmt"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

// ErrStatusChangeIsNotConstructed is returned when using an improperly
// initialized StatusChange.
var ErrStatusChangeIsNotConstructed = fmt.Errorf("StatusChange must be created via NewStatusChange constructor")

// StatusField names which of the order's three status dimensions a
// StatusChange record refers to.
type StatusField int

const (
	// StatusFieldUnknown represents an invalid or undefined field.
	StatusFieldUnknown StatusField = iota

	// FieldOrderStatus marks a change of the commercial order status.
	FieldOrderStatus

	// FieldPaymentStatus marks a change of the payment status.
	FieldPaymentStatus

	// FieldDeliveryStatus marks a change of the delivery status.
	FieldDeliveryStatus
)

func getStatusFieldStrings() map[StatusField]string {
	return map[StatusField]string{
		StatusFieldUnknown:  "Unknown",
		FieldOrderStatus:    "order_status",
		FieldPaymentStatus:  "payment_status",
		FieldDeliveryStatus: "delivery_status",
	}
}

// Validate checks if the StatusField is one of the valid values.
func (f StatusField) Validate() error {
	if f != FieldOrderStatus && f != FieldPaymentStatus && f != FieldDeliveryStatus {
		return errs.NewValueIsInvalidErrorWithCause("statusField",
			fmt.Errorf("%d is not a valid status field", f))
	}
	return nil
}

// String returns the storage name of the field.
func (f StatusField) String() string {
	if str, ok := getStatusFieldStrings()[f]; ok {
		return str
	}
	return "Unknown"
}

// StatusFieldFromString parses a stored status field name.
func StatusFieldFromString(s string) (StatusField, error) {
	for f, str := range getStatusFieldStrings() {
		if f != StatusFieldUnknown && str == s {
			return f, nil
		}
	}
	return StatusFieldUnknown, errs.NewValueIsInvalidErrorWithCause("statusField",
		fmt.Errorf("%q is not a valid status field", s))
}

// StatusChange is an append-only audit record: one per successful status
// transition, never mutated or deleted afterwards.
type StatusChange struct {
	id      kernel.UUID
	orderID kernel.UUID
	field   StatusField
	// value is the new status name in its storage form
	value string
	notes string
	actor string
	at    time.Time

	guard guard.ConstructorGuard
}

// NewStatusChange creates an audit record for one changed status field.
func NewStatusChange(
	orderID kernel.UUID,
	field StatusField,
	value string,
	notes string,
	actor string,
	at time.Time,
) (StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := field.Validate(); err != nil {
		return StatusChange{}, err
	}
	if value == "" {
		return StatusChange{}, errs.NewValueIsRequiredError("value")
	}
	if actor == "" {
		return StatusChange{}, errs.NewValueIsRequiredError("actor")
	}
	if at.IsZero() {
		return StatusChange{}, errs.NewValueIsRequiredError("at")
	}

	return StatusChange{
		id:      kernel.NewUUID(),
		orderID: orderID,
		field:   field,
		value:   value,
		notes:   notes,
		actor:   actor,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreStatusChange reconstructs a record from persistence.
func RestoreStatusChange(
	id kernel.UUID,
	orderID kernel.UUID,
	field StatusField,
	value string,
	notes string,
	actor string,
	at time.Time,
) (StatusChange, error) {
	record, err := NewStatusChange(orderID, field, value, notes, actor, at)
	if err != nil {
		return StatusChange{}, err
	}
	if err = id.Validate(); err != nil {
		return StatusChange{}, err
	}
	record.id = id
	return record, nil
}

// Validate ensures the record was created through a factory function.
func (c StatusChange) Validate() error {
	return c.guard.Validate(ErrStatusChangeIsNotConstructed)
}

// ID returns the record's unique identifier.
func (c StatusChange) ID() kernel.UUID {
	return c.id
}

// OrderID returns the order the record belongs to.
func (c StatusChange) OrderID() kernel.UUID {
	return c.orderID
}

// Field returns which status dimension changed.
func (c StatusChange) Field() StatusField {
	return c.field
}

// Value returns the new status name.
func (c StatusChange) Value() string {
	return c.value
}

// Notes returns the free-text notes supplied with the change.
func (c StatusChange) Notes() string {
	return c.notes
}

// Actor returns the identity that requested the change.
func (c StatusChange) Actor() string {
	return c.actor
}

// At returns when the change happened.
func (c StatusChange) At() time.Time {
	return c.at
}
