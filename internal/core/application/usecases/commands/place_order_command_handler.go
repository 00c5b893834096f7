package commands

import (
	"context"
	"errors"
	"time"

	"rental/internal/core/domain/model/coupon"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
	"rental/internal/pkg/errs"
)

// PlaceOrderResult reports the outcome of a checkout: the identifier of the
// placed order, the coupon eligibility outcome (zero when no coupon was
// supplied), and the persisted price breakdown. A rejected coupon does not
// block placement; the order is placed without the discount and the rejection
// is reported for the caller to render.
type PlaceOrderResult struct {
	OrderID      kernel.UUID
	CouponStatus coupon.EligibilityStatus
	Shortfall    kernel.Money
	Breakdown    services.PriceBreakdown
}

// PlaceOrderCommandHandler handles the business logic for checkout.
// Validates a candidate coupon against the order contents, computes the
// authoritative price breakdown, spends one coupon usage, and persists the
// new order, all in one transaction.
type PlaceOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	calculator services.PricingCalculator
	now        func() time.Time
}

// NewPlaceOrderCommandHandler creates a handler for checkout operations.
// Requires a CheckoutUoWFactory for transactional persistence.
func NewPlaceOrderCommandHandler(uowFactory CheckoutUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewPricingCalculator(),
		now:        time.Now,
	}
}

// Handle processes the checkout command.
//
// When a coupon code is supplied, the coupon's eligibility is checked against
// the order contents and, if eligible, one usage is spent through the
// repository's conditional increment. Losing that increment to a concurrent
// checkout downgrades the coupon to exhausted instead of over-redeeming it.
// The order is placed either way; only hard validation failures abort.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	window, err := order.NewRentalWindow(cmd.StartDate(), cmd.EndDate())
	if err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.now()

	subtotal := kernel.Money(0)
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	application, err := h.applyCoupon(ctx, uow, cmd.CouponCode(), subtotal, items, now)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	breakdown, err := h.calculator.Price(items, window, cmd.DeliveryCharge(), application)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.OrderNumber(), cmd.CustomerEmail(),
		items, window,
		breakdown.Subtotal, breakdown.DeliveryCharge, breakdown.DiscountAmount, breakdown.TotalAmount,
		breakdown.AppliedCouponCode, now)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	result := PlaceOrderResult{
		OrderID:   cmd.OrderID(),
		Breakdown: breakdown,
	}
	if application != nil {
		result.CouponStatus = application.Result.Status
		result.Shortfall = application.Result.Shortfall
	}
	return result, nil
}

// applyCoupon resolves the candidate code into a coupon application. A code
// that resolves to no coupon is reported as not found rather than failing the
// checkout. The usage is spent inside the open transaction so the increment
// and the order insert commit together.
func (h *PlaceOrderCommandHandler) applyCoupon(
	ctx context.Context,
	uow CheckoutUoW,
	code string,
	subtotal kernel.Money,
	items []order.Item,
	now time.Time,
) (*services.CouponApplication, error) {
	if code == "" {
		return nil, nil
	}

	canonical := coupon.CanonicalCode(code)
	application := &services.CouponApplication{Code: canonical}

	candidate, err := uow.CouponRepository().GetByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			application.Result = coupon.RejectedResult(coupon.NotFound)
			return application, nil
		}
		return nil, err
	}

	result, err := candidate.CheckEligibility(coupon.OrderContext{
		Subtotal: subtotal,
		Items:    itemRefs(items),
		Now:      now,
	})
	if err != nil {
		return nil, err
	}
	application.Result = result
	if !result.IsEligible() {
		return application, nil
	}

	consumed, err := uow.CouponRepository().ConsumeUsage(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if !consumed {
		application.Result = coupon.RejectedResult(coupon.Exhausted)
		return application, nil
	}

	discount, err := candidate.Discount(subtotal)
	if err != nil {
		return nil, err
	}
	application.Discount = discount
	return application, nil
}

func buildItems(inputs []OrderItemInput) ([]order.Item, error) {
	items := make([]order.Item, 0, len(inputs))
	for _, input := range inputs {
		unitPrice, err := kernel.NewMoney(input.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(
			input.ProductID, input.CategoryID, input.VendorID,
			input.ProductName, input.SizeVariant, input.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func itemRefs(items []order.Item) []coupon.ItemRef {
	refs := make([]coupon.ItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, coupon.ItemRef{
			ProductID:  item.ProductID(),
			CategoryID: item.CategoryID(),
			VendorID:   item.VendorID(),
		})
	}
	return refs
}
