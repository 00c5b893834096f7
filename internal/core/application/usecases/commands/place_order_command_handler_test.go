package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/domain/model/coupon"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func checkoutItems() []commands.OrderItemInput {
	return []commands.OrderItemInput{
		{
			ProductID:   kernel.NewUUID(),
			CategoryID:  kernel.NewUUID(),
			VendorID:    kernel.NewUUID(),
			ProductName: "Tundra Tent",
			Quantity:    4,
			UnitPrice:   500,
		},
	}
}

func newCheckoutCommand(t *testing.T, couponCode string) commands.PlaceOrderCommand {
	t.Helper()

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), "RNT-1001", "customer@example.com",
		checkoutItems(), day(2024, 6, 1), day(2024, 6, 4),
		kernel.Money(100), couponCode)
	require.NoError(t, err)
	return cmd
}

// evergreenCoupon builds a coupon whose validity window comfortably contains
// the wall clock the handler reads.
func evergreenCoupon(t *testing.T) *coupon.Coupon {
	t.Helper()

	maxDiscount := kernel.Money(300)
	c, err := coupon.NewCoupon(
		kernel.NewUUID(), "SUMMER20",
		coupon.Percentage, 20,
		kernel.Money(500), &maxDiscount, nil,
		day(2024, 1, 1), day(2099, 1, 1), coupon.ScopeAll, nil)
	require.NoError(t, err)
	return c
}

func TestPlaceOrderCommandHandler_Handle_WithoutCoupon(t *testing.T) {
	ctx := t.Context()
	cmd := newCheckoutCommand(t, "")

	orderRepo := new(MockOrderRepository)
	uow := new(MockCheckoutUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), result.OrderID)
	assert.Equal(t, coupon.EligibilityUnknown, result.CouponStatus)
	assert.Equal(t, kernel.Money(2000), result.Breakdown.Subtotal)
	assert.Equal(t, kernel.Money(0), result.Breakdown.DiscountAmount)
	assert.Equal(t, kernel.Money(2100), result.Breakdown.TotalAmount)
	assert.Equal(t, 3, result.Breakdown.RentalDays)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_WithEligibleCoupon(t *testing.T) {
	ctx := t.Context()
	cmd := newCheckoutCommand(t, "summer20")

	couponRepo := new(MockCouponRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CouponRepository").Return(couponRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	couponRepo.On("GetByCode", mock.Anything, "SUMMER20").Return(evergreenCoupon(t), nil).Once()
	couponRepo.On("ConsumeUsage", mock.Anything, "SUMMER20").Return(true, nil).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, coupon.Eligible, result.CouponStatus)
	// 20% of 2000 is 400, capped at 300
	assert.Equal(t, kernel.Money(300), result.Breakdown.DiscountAmount)
	assert.Equal(t, kernel.Money(1800), result.Breakdown.TotalAmount)
	require.NotNil(t, result.Breakdown.AppliedCouponCode)
	assert.Equal(t, "SUMMER20", *result.Breakdown.AppliedCouponCode)
	couponRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_WithCategoryScopedCoupon(t *testing.T) {
	ctx := t.Context()
	categoryID := kernel.NewUUID()
	items := checkoutItems()
	items[0].CategoryID = categoryID

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), "RNT-1003", "customer@example.com",
		items, day(2024, 6, 1), day(2024, 6, 4),
		kernel.Money(100), "TENTS10")
	require.NoError(t, err)

	maxDiscount := kernel.Money(300)
	scoped, err := coupon.NewCoupon(
		kernel.NewUUID(), "TENTS10",
		coupon.Percentage, 10,
		kernel.Money(500), &maxDiscount, nil,
		day(2024, 1, 1), day(2099, 1, 1),
		coupon.ScopeCategory, []kernel.UUID{categoryID})
	require.NoError(t, err)

	couponRepo := new(MockCouponRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CouponRepository").Return(couponRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	couponRepo.On("GetByCode", mock.Anything, "TENTS10").Return(scoped, nil).Once()
	couponRepo.On("ConsumeUsage", mock.Anything, "TENTS10").Return(true, nil).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, coupon.Eligible, result.CouponStatus)
	// 10% of 2000
	assert.Equal(t, kernel.Money(200), result.Breakdown.DiscountAmount)
	couponRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ScopedCouponWithoutMatchingItem(t *testing.T) {
	ctx := t.Context()
	cmd := newCheckoutCommand(t, "TENTS10")

	maxDiscount := kernel.Money(300)
	scoped, err := coupon.NewCoupon(
		kernel.NewUUID(), "TENTS10",
		coupon.Percentage, 10,
		kernel.Money(500), &maxDiscount, nil,
		day(2024, 1, 1), day(2099, 1, 1),
		coupon.ScopeCategory, []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	couponRepo := new(MockCouponRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CouponRepository").Return(couponRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	couponRepo.On("GetByCode", mock.Anything, "TENTS10").Return(scoped, nil).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, coupon.NotApplicable, result.CouponStatus)
	assert.Equal(t, kernel.Money(0), result.Breakdown.DiscountAmount)
	assert.Equal(t, kernel.Money(2100), result.Breakdown.TotalAmount)
	couponRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_CouponNotFound(t *testing.T) {
	ctx := t.Context()
	cmd := newCheckoutCommand(t, "NOSUCH")

	couponRepo := new(MockCouponRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CouponRepository").Return(couponRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	couponRepo.On("GetByCode", mock.Anything, "NOSUCH").
		Return(nil, errs.NewObjectNotFoundError("code", "NOSUCH")).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, coupon.NotFound, result.CouponStatus)
	assert.Equal(t, kernel.Money(0), result.Breakdown.DiscountAmount)
	assert.Equal(t, kernel.Money(2100), result.Breakdown.TotalAmount)
	couponRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_CouponLostToConcurrentCheckout(t *testing.T) {
	ctx := t.Context()
	cmd := newCheckoutCommand(t, "SUMMER20")

	couponRepo := new(MockCouponRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockCheckoutUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CouponRepository").Return(couponRepo).Twice()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	couponRepo.On("GetByCode", mock.Anything, "SUMMER20").Return(evergreenCoupon(t), nil).Once()
	couponRepo.On("ConsumeUsage", mock.Anything, "SUMMER20").Return(false, nil).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, coupon.Exhausted, result.CouponStatus)
	assert.Equal(t, kernel.Money(0), result.Breakdown.DiscountAmount)
	couponRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly
	factory := new(MockCheckoutUoWFactory)

	h := commands.NewPlaceOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestPlaceOrderCommandHandler_Handle_InvertedWindow(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), "RNT-1002", "customer@example.com",
		checkoutItems(), day(2024, 6, 4), day(2024, 6, 1),
		kernel.Money(100), "")
	require.NoError(t, err)

	factory := new(MockCheckoutUoWFactory)

	h := commands.NewPlaceOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
}
