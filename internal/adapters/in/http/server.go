// Package http exposes the rental order API over echo. Handlers translate
// between the wire DTOs and the application's commands and queries, and map
// domain failures onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/application/usecases/queries"
	"rental/internal/core/domain/model/coupon"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
	"rental/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        commands.PlaceOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	completeDeliveryHandler  commands.CompleteDeliveryCommandHandler

	// Query handlers
	getDeliveryQueueHandler queries.GetDeliveryQueueQueryHandler
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	getDeliveryQueueHandler queries.GetDeliveryQueueQueryHandler,
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		completeDeliveryHandler:  completeDeliveryHandler,
		getDeliveryQueueHandler:  getDeliveryQueueHandler,
		getStatusHistoryHandler:  getStatusHistoryHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:orderId/status", s.ChangeOrderStatus)
	api.GET("/orders/:orderId/history", s.GetStatusHistory)

	api.GET("/delivery/:workerId/queue", s.GetDeliveryQueue)
	api.POST("/delivery/:workerId/orders/:orderId/complete", s.CompleteDelivery)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID   string `json:"productId"`
	CategoryID  string `json:"categoryId"`
	VendorID    string `json:"vendorId"`
	ProductName string `json:"productName"`
	SizeVariant string `json:"sizeVariant,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// PlaceOrderRequest is the checkout request body. Amounts are in the
// smallest currency unit.
type PlaceOrderRequest struct {
	OrderNumber    string             `json:"orderNumber"`
	CustomerEmail  string             `json:"customerEmail"`
	Items          []OrderItemRequest `json:"items"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	DeliveryCharge int64              `json:"deliveryCharge"`
	CouponCode     string             `json:"couponCode,omitempty"`
}

// PlaceOrderResponse reports the placed order and its price breakdown. The
// coupon fields are present only when a coupon code was supplied; a rejected
// coupon does not fail the request.
type PlaceOrderResponse struct {
	ID                string  `json:"id"`
	RentalDays        int     `json:"rentalDays"`
	Subtotal          int64   `json:"subtotal"`
	DeliveryCharge    int64   `json:"deliveryCharge"`
	DiscountAmount    int64   `json:"discountAmount"`
	TotalAmount       int64   `json:"totalAmount"`
	AppliedCouponCode *string `json:"appliedCouponCode,omitempty"`
	CouponStatus      string  `json:"couponStatus,omitempty"`
	CouponShortfall   int64   `json:"couponShortfall,omitempty"`
}

// PlaceOrder handles POST /api/v1/orders - places a new rental order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.OrderItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return badRequest(ctx, "Invalid product id: "+item.ProductID)
		}
		categoryID, err := kernel.UUIDFromString(item.CategoryID)
		if err != nil {
			return badRequest(ctx, "Invalid category id: "+item.CategoryID)
		}
		vendorID, err := kernel.UUIDFromString(item.VendorID)
		if err != nil {
			return badRequest(ctx, "Invalid vendor id: "+item.VendorID)
		}

		items = append(items, commands.OrderItemInput{
			ProductID:   productID,
			CategoryID:  categoryID,
			VendorID:    vendorID,
			ProductName: item.ProductName,
			SizeVariant: item.SizeVariant,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	deliveryCharge, err := kernel.NewMoney(request.DeliveryCharge)
	if err != nil {
		return badRequest(ctx, "Invalid delivery charge")
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), request.OrderNumber, request.CustomerEmail,
		items, request.StartDate, request.EndDate,
		deliveryCharge, request.CouponCode)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	response := PlaceOrderResponse{
		ID:                result.OrderID.String(),
		RentalDays:        result.Breakdown.RentalDays,
		Subtotal:          result.Breakdown.Subtotal.Int64(),
		DeliveryCharge:    result.Breakdown.DeliveryCharge.Int64(),
		DiscountAmount:    result.Breakdown.DiscountAmount.Int64(),
		TotalAmount:       result.Breakdown.TotalAmount.Int64(),
		AppliedCouponCode: result.Breakdown.AppliedCouponCode,
	}
	if result.CouponStatus != coupon.EligibilityUnknown {
		response.CouponStatus = result.CouponStatus.String()
		response.CouponShortfall = result.Shortfall.Int64()
	}

	return ctx.JSON(http.StatusCreated, response)
}

// ChangeOrderStatusRequest names the status fields to move. Omitted fields
// are left untouched.
type ChangeOrderStatusRequest struct {
	OrderStatus    *string `json:"orderStatus,omitempty"`
	PaymentStatus  *string `json:"paymentStatus,omitempty"`
	DeliveryStatus *string `json:"deliveryStatus,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	Actor          string  `json:"actor"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderId/status - moves one
// or more of an order's status dimensions.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ChangeOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var orderStatus *order.OrderStatus
	if request.OrderStatus != nil {
		parsed, parseErr := order.OrderStatusFromString(*request.OrderStatus)
		if parseErr != nil {
			return badRequest(ctx, "Invalid order status: "+*request.OrderStatus)
		}
		orderStatus = &parsed
	}

	var paymentStatus *order.PaymentStatus
	if request.PaymentStatus != nil {
		parsed, parseErr := order.PaymentStatusFromString(*request.PaymentStatus)
		if parseErr != nil {
			return badRequest(ctx, "Invalid payment status: "+*request.PaymentStatus)
		}
		paymentStatus = &parsed
	}

	var deliveryStatus *order.DeliveryStatus
	if request.DeliveryStatus != nil {
		parsed, parseErr := order.DeliveryStatusFromString(*request.DeliveryStatus)
		if parseErr != nil || parsed == order.DeliveryNotSet {
			return badRequest(ctx, "Invalid delivery status: "+*request.DeliveryStatus)
		}
		deliveryStatus = &parsed
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, orderStatus, paymentStatus, deliveryStatus,
		request.Notes, request.Actor)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStatusHistory handles GET /api/v1/orders/:orderId/history - retrieves
// an order's status audit trail, oldest first.
func (s *Server) GetStatusHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetStatusHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid history request: "+err.Error())
	}

	history, err := s.getStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, history)
}

// GetDeliveryQueue handles GET /api/v1/delivery/:workerId/queue - retrieves
// a delivery worker's classified day view.
func (s *Server) GetDeliveryQueue(ctx echo.Context) error {
	workerID, err := kernel.UUIDFromString(ctx.Param("workerId"))
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	query, err := queries.NewGetDeliveryQueueQuery(workerID, time.Now())
	if err != nil {
		return badRequest(ctx, "Invalid queue request: "+err.Error())
	}

	queue, err := s.getDeliveryQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queue)
}

// CompleteDeliveryRequest names which half of the delivery job is done.
type CompleteDeliveryRequest struct {
	Kind string `json:"kind"`
}

// CompleteDelivery handles POST /api/v1/delivery/:workerId/orders/:orderId/complete -
// records a drop or pickup completion by the assigned worker.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	workerID, err := kernel.UUIDFromString(ctx.Param("workerId"))
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request CompleteDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := commands.CompletionKindFromString(request.Kind)
	if err != nil {
		return badRequest(ctx, "Invalid completion kind: "+request.Kind)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(workerID, orderID, kind)
	if err != nil {
		return badRequest(ctx, "Invalid completion request: "+err.Error())
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapDomainError translates application failures onto HTTP status codes.
func mapDomainError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrOrderNotAssignedToWorker):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrIllegalStatusTransition),
		errors.Is(err, order.ErrPickupRequiresDrop),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
