package order

import (
	"errors"
	"fmt"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

// Domain errors for order line items.
var (
	// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	// ErrInvalidLineItem is returned for a line item with a quantity below one.
	ErrInvalidLineItem = errs.NewValueIsInvalidError("line item quantity must be at least 1")
)

// Item is one line of a rental order: a product reference, an optional size
// variant, a quantity, and the unit price per rental day. Items are immutable
// once the order is placed.
type Item struct {
	// productID references the rented product
	productID kernel.UUID
	// categoryID and vendorID are carried for coupon scope matching
	categoryID kernel.UUID
	vendorID   kernel.UUID
	// productName is a display name snapshot taken at checkout
	productName string
	// sizeVariant is an optional size label (empty when the product has no sizes)
	sizeVariant string
	// quantity of units rented (at least 1)
	quantity int
	// unitPrice is the price per unit per rental day
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates an order line with validation.
func NewItem(
	productID, categoryID, vendorID kernel.UUID,
	productName, sizeVariant string,
	quantity int,
	unitPrice kernel.Money,
) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductRefs(productID, categoryID, vendorID),
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	item.sizeVariant = sizeVariant
	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the rented product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// CategoryID returns the product's category identifier.
func (i Item) CategoryID() kernel.UUID {
	return i.categoryID
}

// VendorID returns the product's vendor identifier.
func (i Item) VendorID() kernel.UUID {
	return i.vendorID
}

// ProductName returns the display-name snapshot.
func (i Item) ProductName() string {
	return i.productName
}

// SizeVariant returns the optional size label, empty if none.
func (i Item) SizeVariant() string {
	return i.sizeVariant
}

// Quantity returns the number of units rented.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit per rental day.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unit price times quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

// Summary renders the line for notification payloads, e.g. "2x Tundra Tent (XL)".
func (i Item) Summary() string {
	if i.sizeVariant != "" {
		return fmt.Sprintf("%dx %s (%s)", i.quantity, i.productName, i.sizeVariant)
	}
	return fmt.Sprintf("%dx %s", i.quantity, i.productName)
}

func (i *Item) setProductRefs(productID, categoryID, vendorID kernel.UUID) error {
	if err := errors.Join(productID.Validate(), categoryID.Validate(), vendorID.Validate()); err != nil {
		return err
	}

	i.productID = productID
	i.categoryID = categoryID
	i.vendorID = vendorID
	return nil
}

func (i *Item) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidLineItem
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice.Int64()))
	}
	i.unitPrice = unitPrice
	return nil
}
