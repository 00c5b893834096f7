package commands

import (
	"errors"
	"fmt"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompletionKind names which half of a delivery job is being completed.
type CompletionKind int

const (
	// CompletionKindUnknown represents an invalid or undefined kind.
	CompletionKindUnknown CompletionKind = iota

	// CompletionKindDrop marks delivering the order to the customer.
	CompletionKindDrop

	// CompletionKindPickup marks collecting the rented items back.
	CompletionKindPickup
)

func getCompletionKindStrings() map[CompletionKind]string {
	return map[CompletionKind]string{
		CompletionKindUnknown: "Unknown",
		CompletionKindDrop:    "drop",
		CompletionKindPickup:  "pickup",
	}
}

// Validate checks if the CompletionKind is one of the valid values.
func (k CompletionKind) Validate() error {
	if k != CompletionKindDrop && k != CompletionKindPickup {
		return fmt.Errorf("%d is not a valid completion kind", k)
	}
	return nil
}

// String returns the wire name of the kind.
func (k CompletionKind) String() string {
	if str, ok := getCompletionKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// CompletionKindFromString parses a completion kind name.
func CompletionKindFromString(s string) (CompletionKind, error) {
	for kind, str := range getCompletionKindStrings() {
		if kind != CompletionKindUnknown && str == s {
			return kind, nil
		}
	}
	return CompletionKindUnknown, fmt.Errorf("%q is not a valid completion kind", s)
}

// CompleteDeliveryCommand represents a delivery worker marking one of their
// assigned orders as dropped off or picked back up.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	orderID  kernel.UUID
	kind     CompletionKind

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a completion command for a worker's
// assigned order.
func NewCompleteDeliveryCommand(
	workerID kernel.UUID,
	orderID kernel.UUID,
	kind CompletionKind,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		workerID.Validate(),
		orderID.Validate(),
		kind.Validate(),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	cmd.workerID = workerID
	cmd.orderID = orderID
	cmd.kind = kind
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// WorkerID returns the delivery worker completing the job.
func (c CompleteDeliveryCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// OrderID returns the order being completed.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Kind returns whether this is a drop or a pickup completion.
func (c CompleteDeliveryCommand) Kind() CompletionKind {
	return c.kind
}
