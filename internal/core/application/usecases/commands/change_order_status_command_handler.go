package commands

import (
	"context"
	"time"

	"rental/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler handles status transitions requested by
// admins or system actors. Applies the requested fields through the status
// machine, persists the order and its audit records atomically, then hands
// any customer notification to the outbound dispatcher.
type ChangeOrderStatusCommandHandler struct {
	uowFactory    StatusUoWFactory
	machine       services.StatusMachine
	notifications NotificationEnqueuer
	now           func() time.Time
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
// The machine's policy decides which transitions are legal for this caller.
func NewChangeOrderStatusCommandHandler(
	uowFactory StatusUoWFactory,
	machine services.StatusMachine,
	notifications NotificationEnqueuer,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory:    uowFactory,
		machine:       machine,
		notifications: notifications,
		now:           time.Now,
	}
}

// Handle processes the status-change command.
//
// The order update and the audit records commit as one write; the order
// repository's optimistic-concurrency check rejects the commit when another
// writer changed the order since it was loaded. The notification is enqueued
// only after a successful commit, so a rolled-back transition never reaches
// the customer.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	result, err := h.machine.Transition(aggregate, services.TransitionRequest{
		OrderStatus:    cmd.OrderStatus(),
		PaymentStatus:  cmd.PaymentStatus(),
		DeliveryStatus: cmd.DeliveryStatus(),
		Notes:          cmd.Notes(),
		Actor:          cmd.Actor(),
		At:             h.now(),
	})
	if err != nil {
		return err
	}

	if !result.Changed() {
		return uow.Commit(ctx)
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.StatusChangeRepository().Add(ctx, result.Changes); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if result.Notification != nil && h.notifications != nil {
		h.notifications.Enqueue(*result.Notification)
	}

	return nil
}
