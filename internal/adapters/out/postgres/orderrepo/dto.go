// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status fields are stored by their string names; an order that has never
// been handled by delivery carries an empty delivery status. The version
// column backs the optimistic-concurrency check on updates.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber       string    `gorm:"size:32;uniqueIndex"`
	CustomerEmail     string    `gorm:"size:255"`
	StartDate         time.Time
	EndDate           time.Time
	Subtotal          int64
	DeliveryCharge    int64
	DiscountAmount    int64
	TotalAmount       int64
	AppliedCouponCode *string `gorm:"size:64"`
	OrderStatus       string  `gorm:"size:16;index"`
	PaymentStatus     string  `gorm:"size:16"`
	DeliveryStatus    string  `gorm:"size:16"`
	DeliveryPartnerID *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryTime      *time.Time
	PickupTime        *time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int
	Items             []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents the database structure for persisting order lines.
// Lines are immutable once the order is placed; they are written on Add and
// never touched by Update.
type OrderItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid"`
	CategoryID  uuid.UUID `gorm:"type:uuid"`
	VendorID    uuid.UUID `gorm:"type:uuid"`
	ProductName string    `gorm:"size:255;not null"`
	SizeVariant string    `gorm:"size:32"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
}

// TableName specifies the database table name for order line entities.
// Overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var partnerID *uuid.UUID
	if id := aggregate.DeliveryPartner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   item.ProductID().Bytes(),
			CategoryID:  item.CategoryID().Bytes(),
			VendorID:    item.VendorID().Bytes(),
			ProductName: item.ProductName(),
			SizeVariant: item.SizeVariant(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Int64(),
		})
	}

	return OrderDTO{
		ID:                orderID,
		OrderNumber:       aggregate.OrderNumber(),
		CustomerEmail:     aggregate.CustomerEmail(),
		StartDate:         aggregate.Window().StartDate(),
		EndDate:           aggregate.Window().EndDate(),
		Subtotal:          aggregate.Subtotal().Int64(),
		DeliveryCharge:    aggregate.DeliveryCharge().Int64(),
		DiscountAmount:    aggregate.DiscountAmount().Int64(),
		TotalAmount:       aggregate.TotalAmount().Int64(),
		AppliedCouponCode: aggregate.AppliedCouponCode(),
		OrderStatus:       aggregate.OrderStatus().String(),
		PaymentStatus:     aggregate.PaymentStatus().String(),
		DeliveryStatus:    aggregate.DeliveryStatus().String(),
		DeliveryPartnerID: partnerID,
		DeliveryTime:      aggregate.DeliveryTime(),
		PickupTime:        aggregate.PickupTime(),
		Notes:             aggregate.Notes(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		Version:           aggregate.Version(),
		Items:             items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.DeliveryPartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	window, err := order.NewRentalWindow(dto.StartDate, dto.EndDate)
	if err != nil {
		return nil, err
	}

	orderStatus, err := order.OrderStatusFromString(dto.OrderStatus)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	deliveryStatus, err := order.DeliveryStatusFromString(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, dto.OrderNumber, dto.CustomerEmail,
		items, window,
		kernel.Money(dto.Subtotal), kernel.Money(dto.DeliveryCharge),
		kernel.Money(dto.DiscountAmount), kernel.Money(dto.TotalAmount),
		dto.AppliedCouponCode,
		orderStatus, paymentStatus, deliveryStatus,
		partnerID, dto.DeliveryTime, dto.PickupTime,
		dto.Notes, dto.CreatedAt, dto.UpdatedAt, dto.Version)
}

// itemToDomain converts an order line DTO to its domain value.
func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return order.Item{}, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, categoryID, vendorID,
		dto.ProductName, dto.SizeVariant, dto.Quantity, kernel.Money(dto.UnitPrice))
}
