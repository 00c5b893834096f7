package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	items := []order.Item{newTestItem(t, "Tundra Tent", 2, 500)}
	window := newTestWindow(t, day(2024, 3, 10), day(2024, 3, 13))

	o, err := order.NewOrder(
		kernel.NewUUID(), "RNT-3001", "customer@example.com",
		items, window,
		kernel.Money(1000), kernel.Money(100), kernel.Money(0), kernel.Money(1100),
		nil, day(2024, 3, 1))
	require.NoError(t, err)
	return o
}

func orderStatusPtr(s order.OrderStatus) *order.OrderStatus          { return &s }
func paymentStatusPtr(s order.PaymentStatus) *order.PaymentStatus    { return &s }
func deliveryStatusPtr(s order.DeliveryStatus) *order.DeliveryStatus { return &s }

func Test_StatusMachine_Transition(t *testing.T) {
	machine := services.NewStatusMachine(services.StrictPolicy())

	t.Run("should apply a legal order status change with audit record", func(t *testing.T) {
		o := newPendingOrder(t)

		result, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderConfirmed),
			Notes:       "payment received",
			Actor:       "admin:ops",
			At:          day(2024, 3, 2),
		})

		require.NoError(t, err)
		assert.True(t, result.Changed())
		assert.Equal(t, order.OrderConfirmed, o.OrderStatus())
		require.Len(t, result.Changes, 1)
		assert.Equal(t, order.FieldOrderStatus, result.Changes[0].Field())
		assert.Equal(t, "confirmed", result.Changes[0].Value())
		assert.Equal(t, "admin:ops", result.Changes[0].Actor())
	})

	t.Run("should emit notification when the commercial status changes", func(t *testing.T) {
		o := newPendingOrder(t)

		result, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderConfirmed),
			Actor:       "admin:ops",
			At:          day(2024, 3, 2),
		})

		require.NoError(t, err)
		require.NotNil(t, result.Notification)
		assert.Equal(t, "customer@example.com", result.Notification.CustomerEmail)
		assert.Equal(t, "RNT-3001", result.Notification.OrderNumber)
		assert.Equal(t, "pending", result.Notification.PreviousStatus)
		assert.Equal(t, "confirmed", result.Notification.NewStatus)
		assert.Equal(t, int64(1100), result.Notification.TotalAmount)
		assert.Equal(t, []string{"2x Tundra Tent"}, result.Notification.LineItemSummaries)
	})

	t.Run("should not emit notification for payment-only change", func(t *testing.T) {
		o := newPendingOrder(t)

		result, err := machine.Transition(o, services.TransitionRequest{
			PaymentStatus: paymentStatusPtr(order.PaymentPaid),
			Actor:         "system:payments",
			At:            day(2024, 3, 2),
		})

		require.NoError(t, err)
		assert.Nil(t, result.Notification)
		require.Len(t, result.Changes, 1)
		assert.Equal(t, order.FieldPaymentStatus, result.Changes[0].Field())
	})

	t.Run("should apply multiple fields in one call", func(t *testing.T) {
		o := newPendingOrder(t)

		result, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus:    orderStatusPtr(order.OrderConfirmed),
			PaymentStatus:  paymentStatusPtr(order.PaymentPaid),
			DeliveryStatus: deliveryStatusPtr(order.DeliveryPickedUp),
			Actor:          "admin:ops",
			At:             day(2024, 3, 2),
		})

		require.NoError(t, err)
		assert.Len(t, result.Changes, 3)
		assert.Equal(t, order.OrderConfirmed, o.OrderStatus())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, order.DeliveryPickedUp, o.DeliveryStatus())
	})

	t.Run("should treat restating the current value as a no-op", func(t *testing.T) {
		o := newPendingOrder(t)

		result, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderPending),
			Actor:       "admin:ops",
			At:          day(2024, 3, 2),
		})

		require.NoError(t, err)
		assert.False(t, result.Changed())
		assert.Nil(t, result.Notification)
	})

	t.Run("should reject skipping ahead in the order lifecycle", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderShipped),
			Actor:       "admin:ops",
			At:          day(2024, 3, 2),
		})

		require.ErrorIs(t, err, services.ErrIllegalStatusTransition)
		assert.Equal(t, order.OrderPending, o.OrderStatus())
	})

	t.Run("should reject leaving a terminal order status", func(t *testing.T) {
		o := newPendingOrder(t)
		for _, s := range []order.OrderStatus{
			order.OrderConfirmed, order.OrderProcessing, order.OrderShipped, order.OrderDelivered,
		} {
			_, err := machine.Transition(o, services.TransitionRequest{
				OrderStatus: orderStatusPtr(s), Actor: "admin:ops", At: day(2024, 3, 2),
			})
			require.NoError(t, err)
		}

		_, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderConfirmed),
			Actor:       "admin:ops",
			At:          day(2024, 3, 3),
		})

		var illegal *services.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, order.FieldOrderStatus, illegal.Field)
		assert.Equal(t, "delivered", illegal.From)
		assert.Equal(t, "confirmed", illegal.To)
	})

	t.Run("should allow cancellation from any non-terminal state", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderConfirmed), Actor: "admin:ops", At: day(2024, 3, 2),
		})
		require.NoError(t, err)

		_, err = machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderCancelled),
			Actor:       "admin:ops",
			At:          day(2024, 3, 3),
		})

		require.NoError(t, err)
		assert.Equal(t, order.OrderCancelled, o.OrderStatus())
	})

	t.Run("should allow payment retry after a failure", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := machine.Transition(o, services.TransitionRequest{
			PaymentStatus: paymentStatusPtr(order.PaymentFailed), Actor: "system:payments", At: day(2024, 3, 2),
		})
		require.NoError(t, err)

		_, err = machine.Transition(o, services.TransitionRequest{
			PaymentStatus: paymentStatusPtr(order.PaymentPaid),
			Actor:         "system:payments",
			At:            day(2024, 3, 3),
		})

		require.NoError(t, err)
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("should allow cancelling a failed payment but not refunding it", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := machine.Transition(o, services.TransitionRequest{
			PaymentStatus: paymentStatusPtr(order.PaymentFailed), Actor: "system:payments", At: day(2024, 3, 2),
		})
		require.NoError(t, err)

		_, err = machine.Transition(o, services.TransitionRequest{
			PaymentStatus: paymentStatusPtr(order.PaymentRefunded),
			Actor:         "system:payments",
			At:            day(2024, 3, 3),
		})
		assert.ErrorIs(t, err, services.ErrIllegalStatusTransition)

		_, err = machine.Transition(o, services.TransitionRequest{
			PaymentStatus: paymentStatusPtr(order.PaymentCancelled),
			Actor:         "admin:ops",
			At:            day(2024, 3, 3),
		})
		require.NoError(t, err)
		assert.Equal(t, order.PaymentCancelled, o.PaymentStatus())
	})

	t.Run("should reject transitions out of refunded", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := machine.Transition(o, services.TransitionRequest{
			PaymentStatus: paymentStatusPtr(order.PaymentRefunded), Actor: "system", At: day(2024, 3, 2),
		})
		require.NoError(t, err)

		_, err = machine.Transition(o, services.TransitionRequest{
			PaymentStatus: paymentStatusPtr(order.PaymentPaid),
			Actor:         "system",
			At:            day(2024, 3, 3),
		})

		assert.ErrorIs(t, err, services.ErrIllegalStatusTransition)
	})

	t.Run("should treat an absent delivery status as pending", func(t *testing.T) {
		o := newPendingOrder(t)
		require.Equal(t, order.DeliveryNotSet, o.DeliveryStatus())

		result, err := machine.Transition(o, services.TransitionRequest{
			DeliveryStatus: deliveryStatusPtr(order.DeliveryPickedUp),
			Actor:          "worker:w1",
			At:             day(2024, 3, 10),
		})

		require.NoError(t, err)
		assert.True(t, result.Changed())
	})

	t.Run("should reject a delivery jump from pending to returned", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := machine.Transition(o, services.TransitionRequest{
			DeliveryStatus: deliveryStatusPtr(order.DeliveryReturned),
			Actor:          "worker:w1",
			At:             day(2024, 3, 10),
		})

		assert.ErrorIs(t, err, services.ErrIllegalStatusTransition)
	})

	t.Run("should leave order untouched when any requested field is illegal", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := machine.Transition(o, services.TransitionRequest{
			PaymentStatus:  paymentStatusPtr(order.PaymentPaid),
			DeliveryStatus: deliveryStatusPtr(order.DeliveryReturned),
			Actor:          "admin:ops",
			At:             day(2024, 3, 2),
		})

		require.ErrorIs(t, err, services.ErrIllegalStatusTransition)
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("should require actor and timestamp", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderConfirmed), At: day(2024, 3, 2),
		})
		assert.Error(t, err)

		_, err = machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderConfirmed), Actor: "admin:ops",
		})
		assert.Error(t, err)
	})
}

func Test_StatusMachine_PermissivePolicy(t *testing.T) {
	machine := services.NewStatusMachine(services.PermissivePolicy())

	t.Run("should allow ad hoc order status jumps", func(t *testing.T) {
		o := newPendingOrder(t)

		result, err := machine.Transition(o, services.TransitionRequest{
			OrderStatus: orderStatusPtr(order.OrderDelivered),
			Actor:       "admin:ops",
			At:          day(2024, 3, 2),
		})

		require.NoError(t, err)
		assert.True(t, result.Changed())
		assert.Equal(t, order.OrderDelivered, o.OrderStatus())
	})

	t.Run("should still enforce the delivery lifecycle", func(t *testing.T) {
		o := newPendingOrder(t)

		_, err := machine.Transition(o, services.TransitionRequest{
			DeliveryStatus: deliveryStatusPtr(order.DeliveryReturned),
			Actor:          "admin:ops",
			At:             day(2024, 3, 2),
		})

		assert.ErrorIs(t, err, services.ErrIllegalStatusTransition)
	})
}
