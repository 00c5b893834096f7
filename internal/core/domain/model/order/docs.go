// Package order provides domain entities and business logic for rental order
// management. It implements the Order aggregate root with its pricing snapshot
// and three independent status dimensions.
//
// The package includes:
//   - Order: The aggregate root; immutable items and pricing once placed,
//     mutable status fields, notes, and delivery/pickup timestamps
//   - Item: One rental line referencing a product with a per-day unit price
//   - RentalWindow: The [startDate, endDate] period driving pricing and
//     delivery scheduling
//   - OrderStatus, PaymentStatus, DeliveryStatus: Three parallel status
//     dimensions of one order
//   - StatusChange: An append-only audit record created once per transition
//
// Key business rules:
//   - An order has a non-empty item list and a rental window with a positive
//     day count
//   - Totals never go negative; a discount cannot make an order negative-priced
//   - Delivery and pickup timestamps are recorded exactly once
//   - Which status transitions are legal is decided by the status machine
//     service, not by this package
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
