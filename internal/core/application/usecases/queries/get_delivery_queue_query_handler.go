package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/core/domain/services"
)

// GetDeliveryQueueQueryHandler builds a delivery worker's day view from
// storage. Orders assigned to the worker are read with their items, restored
// into domain aggregates, and classified by the queue partitioner; the
// response carries plain DTOs for rendering.
//
// Example:
//
//	handler := NewGetDeliveryQueueQueryHandler(db)
//	query, _ := NewGetDeliveryQueueQuery(workerID, time.Now())
//
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to build delivery queue: %v", err)
//	    return err
//	}
//	fmt.Printf("%d drops, %d pickups\n", len(queue.Drops), len(queue.Pickups))
type GetDeliveryQueueQueryHandler struct {
	db          *gorm.DB
	partitioner services.QueuePartitioner
}

// NewGetDeliveryQueueQueryHandler creates a handler for delivery queue queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryQueueQueryHandler(db *gorm.DB) GetDeliveryQueueQueryHandler {
	return GetDeliveryQueueQueryHandler{
		db:          db,
		partitioner: services.NewQueuePartitioner(),
	}
}

// Handle executes the query and classifies the worker's assigned orders.
func (h GetDeliveryQueueQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQueueQuery,
) (GetDeliveryQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueueQueryResponse{}, err
	}

	orders, err := h.loadAssignedOrders(ctx, query.WorkerID())
	if err != nil {
		return GetDeliveryQueueQueryResponse{}, err
	}

	queue := h.partitioner.Partition(orders, query.Today())

	response := GetDeliveryQueueQueryResponse{
		Drops:     make([]DeliveryQueueEntry, 0, len(queue.Drops)),
		Pickups:   make([]DeliveryQueueEntry, 0, len(queue.Pickups)),
		Completed: make([]DeliveryQueueEntry, 0, len(queue.Completed)),
	}
	for _, o := range queue.Drops {
		response.Drops = append(response.Drops, toQueueEntry(o, false))
	}
	for _, pickup := range queue.Pickups {
		response.Pickups = append(response.Pickups, toQueueEntry(pickup.Order, pickup.Overdue))
	}
	for _, o := range queue.Completed {
		response.Completed = append(response.Completed, toQueueEntry(o, false))
	}
	return response, nil
}

func (h GetDeliveryQueueQueryHandler) loadAssignedOrders(
	ctx context.Context,
	workerID kernel.UUID,
) ([]*order.Order, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_email,
			start_date,
			end_date,
			subtotal,
			delivery_charge,
			discount_amount,
			total_amount,
			applied_coupon_code,
			order_status,
			payment_status,
			delivery_status,
			delivery_time,
			pickup_time,
			notes,
			created_at,
			updated_at,
			version
		FROM orders
		WHERE delivery_partner_id = ?
		ORDER BY created_at
	`, workerID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type orderRow struct {
		id                kernel.UUID
		orderNumber       string
		customerEmail     string
		startDate         time.Time
		endDate           time.Time
		subtotal          int64
		deliveryCharge    int64
		discountAmount    int64
		totalAmount       int64
		appliedCouponCode *string
		orderStatus       order.OrderStatus
		paymentStatus     order.PaymentStatus
		deliveryStatus    order.DeliveryStatus
		deliveryTime      *time.Time
		pickupTime        *time.Time
		notes             string
		createdAt         time.Time
		updatedAt         time.Time
		version           int
	}

	var orderRows []orderRow
	var ids []string

	for rows.Next() {
		var (
			id                               uuid.UUID
			row                              orderRow
			appliedCouponCode                sql.NullString
			orderStatusS, paymentStatusS     string
			deliveryStatusS                  string
			deliveryTime, pickupTime         sql.NullTime
		)

		err = rows.Scan(
			&id, &row.orderNumber, &row.customerEmail,
			&row.startDate, &row.endDate,
			&row.subtotal, &row.deliveryCharge, &row.discountAmount, &row.totalAmount,
			&appliedCouponCode,
			&orderStatusS, &paymentStatusS, &deliveryStatusS,
			&deliveryTime, &pickupTime,
			&row.notes, &row.createdAt, &row.updatedAt, &row.version,
		)
		if err != nil {
			return nil, err
		}

		row.id, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if appliedCouponCode.Valid {
			row.appliedCouponCode = &appliedCouponCode.String
		}
		if row.orderStatus, err = order.OrderStatusFromString(orderStatusS); err != nil {
			return nil, err
		}
		if row.paymentStatus, err = order.PaymentStatusFromString(paymentStatusS); err != nil {
			return nil, err
		}
		if row.deliveryStatus, err = order.DeliveryStatusFromString(deliveryStatusS); err != nil {
			return nil, err
		}
		if deliveryTime.Valid {
			row.deliveryTime = &deliveryTime.Time
		}
		if pickupTime.Valid {
			row.pickupTime = &pickupTime.Time
		}

		orderRows = append(orderRows, row)
		ids = append(ids, row.id.String())
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(orderRows) == 0 {
		return nil, nil
	}

	itemsByOrder, err := h.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(orderRows))
	for _, row := range orderRows {
		window, windowErr := order.NewRentalWindow(row.startDate, row.endDate)
		if windowErr != nil {
			return nil, windowErr
		}

		aggregate, restoreErr := order.RestoreOrder(
			row.id, row.orderNumber, row.customerEmail,
			itemsByOrder[row.id], window,
			kernel.Money(row.subtotal), kernel.Money(row.deliveryCharge),
			kernel.Money(row.discountAmount), kernel.Money(row.totalAmount),
			row.appliedCouponCode,
			row.orderStatus, row.paymentStatus, row.deliveryStatus,
			&workerID, row.deliveryTime, row.pickupTime,
			row.notes, row.createdAt, row.updatedAt, row.version)
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func (h GetDeliveryQueueQueryHandler) loadItems(
	ctx context.Context,
	orderIDs []string,
) (map[kernel.UUID][]order.Item, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			category_id,
			vendor_id,
			product_name,
			size_variant,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY id
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itemsByOrder := make(map[kernel.UUID][]order.Item)
	for rows.Next() {
		var (
			orderID, productID, categoryID, vendorID uuid.UUID
			productName, sizeVariant                 string
			quantity                                 int
			unitPrice                                int64
		)

		err = rows.Scan(&orderID, &productID, &categoryID, &vendorID,
			&productName, &sizeVariant, &quantity, &unitPrice)
		if err != nil {
			return nil, err
		}

		ownerID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := restoreItem(productID, categoryID, vendorID,
			productName, sizeVariant, quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		itemsByOrder[ownerID] = append(itemsByOrder[ownerID], item)
	}
	return itemsByOrder, rows.Err()
}

func restoreItem(
	productID, categoryID, vendorID uuid.UUID,
	productName, sizeVariant string,
	quantity int,
	unitPrice int64,
) (order.Item, error) {
	pid, err := kernel.UUIDFromBytes(productID[:])
	if err != nil {
		return order.Item{}, err
	}
	cid, err := kernel.UUIDFromBytes(categoryID[:])
	if err != nil {
		return order.Item{}, err
	}
	vid, err := kernel.UUIDFromBytes(vendorID[:])
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(pid, cid, vid, productName, sizeVariant, quantity, kernel.Money(unitPrice))
}

func toQueueEntry(o *order.Order, overdue bool) DeliveryQueueEntry {
	return DeliveryQueueEntry{
		ID:             o.ID(),
		OrderNumber:    o.OrderNumber(),
		CustomerEmail:  o.CustomerEmail(),
		OrderStatus:    o.OrderStatus().String(),
		DeliveryStatus: o.DeliveryStatus().OrPending().String(),
		RentalStart:    o.Window().StartDate(),
		RentalEnd:      o.Window().EndDate(),
		TotalAmount:    o.TotalAmount().Int64(),
		ItemSummaries:  o.ItemSummaries(),
		Notes:          o.Notes(),
		Overdue:        overdue,
	}
}
