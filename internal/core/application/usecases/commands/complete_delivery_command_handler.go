package commands

import (
	"context"
	"fmt"
	"time"

	"rental/internal/core/domain/model/order"
)

// CompleteDeliveryCommandHandler handles a worker completing a drop or a
// pickup. Repeating a completion is an idempotent no-op: the first recorded
// timestamp wins and no duplicate audit record is written.
type CompleteDeliveryCommandHandler struct {
	uowFactory StatusUoWFactory
	now        func() time.Time
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completions.
func NewCompleteDeliveryCommandHandler(uowFactory StatusUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the completion command. Fails when the order is not
// assigned to the calling worker, or when a pickup is attempted before the
// drop was recorded.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	at := h.now()

	var changed bool
	switch cmd.Kind() {
	case CompletionKindDrop:
		changed, err = aggregate.MarkDropCompleted(cmd.WorkerID(), at)
	case CompletionKindPickup:
		changed, err = aggregate.MarkPickupCompleted(cmd.WorkerID(), at)
	default:
		err = cmd.Kind().Validate()
	}
	if err != nil {
		return err
	}

	if !changed {
		return uow.Commit(ctx)
	}

	record, err := order.NewStatusChange(
		aggregate.ID(), order.FieldDeliveryStatus, aggregate.DeliveryStatus().String(),
		"", fmt.Sprintf("worker:%s", cmd.WorkerID()), at)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.StatusChangeRepository().Add(ctx, []order.StatusChange{record}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
