package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

func Test_NewStatusChange(t *testing.T) {
	orderID := kernel.NewUUID()
	at := day(2024, 3, 10)

	t.Run("should create record with generated identifier", func(t *testing.T) {
		record, err := order.NewStatusChange(
			orderID, order.FieldOrderStatus, order.OrderConfirmed.String(),
			"payment received", "admin:ops", at)

		require.NoError(t, err)
		assert.NoError(t, record.Validate())
		assert.NoError(t, record.ID().Validate())
		assert.Equal(t, orderID, record.OrderID())
		assert.Equal(t, order.FieldOrderStatus, record.Field())
		assert.Equal(t, "confirmed", record.Value())
		assert.Equal(t, "payment received", record.Notes())
		assert.Equal(t, "admin:ops", record.Actor())
		assert.Equal(t, at, record.At())
	})

	t.Run("should allow empty notes", func(t *testing.T) {
		_, err := order.NewStatusChange(
			orderID, order.FieldPaymentStatus, order.PaymentPaid.String(),
			"", "system", at)

		assert.NoError(t, err)
	})

	t.Run("should return error for missing required fields", func(t *testing.T) {
		_, err := order.NewStatusChange(kernel.UUID{}, order.FieldOrderStatus, "confirmed", "", "system", at)
		assert.Error(t, err)

		_, err = order.NewStatusChange(orderID, order.StatusFieldUnknown, "confirmed", "", "system", at)
		assert.Error(t, err)

		_, err = order.NewStatusChange(orderID, order.FieldOrderStatus, "", "", "system", at)
		assert.Error(t, err)

		_, err = order.NewStatusChange(orderID, order.FieldOrderStatus, "confirmed", "", "", at)
		assert.Error(t, err)

		_, err = order.NewStatusChange(orderID, order.FieldOrderStatus, "confirmed", "", "system", time.Time{})
		assert.Error(t, err)
	})
}

func Test_RestoreStatusChange(t *testing.T) {
	t.Run("should keep the persisted identifier", func(t *testing.T) {
		id := kernel.NewUUID()

		record, err := order.RestoreStatusChange(
			id, kernel.NewUUID(), order.FieldDeliveryStatus,
			order.DeliveryDelivered.String(), "", "worker", day(2024, 3, 10))

		require.NoError(t, err)
		assert.Equal(t, id, record.ID())
	})
}

func Test_StatusFieldFromString(t *testing.T) {
	t.Run("should round trip every field", func(t *testing.T) {
		for _, f := range []order.StatusField{
			order.FieldOrderStatus, order.FieldPaymentStatus, order.FieldDeliveryStatus,
		} {
			parsed, err := order.StatusFieldFromString(f.String())
			require.NoError(t, err)
			assert.Equal(t, f, parsed)
		}
	})

	t.Run("should reject unknown field name", func(t *testing.T) {
		_, err := order.StatusFieldFromString("mood")
		assert.Error(t, err)
	})
}
