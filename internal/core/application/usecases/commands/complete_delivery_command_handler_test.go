package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

func newAssignedStoredOrder(t *testing.T, worker kernel.UUID) *order.Order {
	t.Helper()

	stored := newStoredOrder(t)
	require.NoError(t, stored.AssignDeliveryPartner(worker, day(2024, 5, 21)))
	return stored
}

func TestCompleteDeliveryCommandHandler_Handle_Drop(t *testing.T) {
	ctx := t.Context()
	worker := kernel.NewUUID()
	stored := newAssignedStoredOrder(t, worker)
	cmd, err := commands.NewCompleteDeliveryCommand(worker, stored.ID(), commands.CompletionKindDrop)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	statusRepo := new(MockStatusChangeRepository)
	uow := new(MockStatusUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("StatusChangeRepository").Return(statusRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	orderRepo.On("Update", mock.Anything, stored).Return(nil).Once()
	statusRepo.On("Add", mock.Anything, mock.AnythingOfType("[]order.StatusChange")).Return(nil).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.DeliveryDelivered, stored.DeliveryStatus())
	assert.NotNil(t, stored.DeliveryTime())
	orderRepo.AssertExpectations(t)
	statusRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_RepeatedDropIsNoOp(t *testing.T) {
	ctx := t.Context()
	worker := kernel.NewUUID()
	stored := newAssignedStoredOrder(t, worker)
	_, err := stored.MarkDropCompleted(worker, day(2024, 6, 1))
	require.NoError(t, err)
	firstRecorded := *stored.DeliveryTime()

	cmd, err := commands.NewCompleteDeliveryCommand(worker, stored.ID(), commands.CompletionKindDrop)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockStatusUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, firstRecorded, *stored.DeliveryTime())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_WrongWorker(t *testing.T) {
	ctx := t.Context()
	stored := newAssignedStoredOrder(t, kernel.NewUUID())
	cmd, err := commands.NewCompleteDeliveryCommand(
		kernel.NewUUID(), stored.ID(), commands.CompletionKindPickup)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockStatusUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteDeliveryCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderNotAssignedToWorker)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompletionKindFromString(t *testing.T) {
	t.Run("should parse drop and pickup", func(t *testing.T) {
		kind, err := commands.CompletionKindFromString("drop")
		require.NoError(t, err)
		assert.Equal(t, commands.CompletionKindDrop, kind)

		kind, err = commands.CompletionKindFromString("pickup")
		require.NoError(t, err)
		assert.Equal(t, commands.CompletionKindPickup, kind)
	})

	t.Run("should reject unknown kind", func(t *testing.T) {
		_, err := commands.CompletionKindFromString("teleport")
		assert.Error(t, err)
	})
}

func TestDeactivateExpiredCouponsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeactivateExpiredCouponsCommand()
	require.NoError(t, err)

	couponRepo := new(MockCouponRepository)
	uow := new(MockCouponUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CouponRepository").Return(couponRepo).Once(),
		couponRepo.On("DeactivateExpired", mock.Anything).Return(int64(3), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCouponUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeactivateExpiredCouponsCommandHandler(factory)
	swept, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(3), swept)
	couponRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
