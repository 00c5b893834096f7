package services

import (
	"time"

	"rental/internal/core/domain/model/order"
)

// PickupEntry is one order due for collection, flagged when its rental ended
// before the queue's reference day.
type PickupEntry struct {
	Order   *order.Order
	Overdue bool
}

// DeliveryQueue is a delivery worker's day view over their assigned orders:
// drops still to make, pickups due or overdue, and the historical completed
// list. The three buckets are independent views over the same order set, not
// a partition; an order dropped off today legitimately appears under both
// pickups and completed.
type DeliveryQueue struct {
	Drops     []*order.Order
	Pickups   []PickupEntry
	Completed []*order.Order
}

// QueuePartitioner classifies a delivery worker's assigned orders for the
// delivery dashboard. Each bucket is computed by its own predicate so the
// views stay independently testable; the partitioner performs no I/O and
// never mutates the orders.
type QueuePartitioner struct{}

// NewQueuePartitioner creates a new QueuePartitioner instance.
func NewQueuePartitioner() QueuePartitioner {
	return QueuePartitioner{}
}

// IsDrop reports whether the order still needs to be taken to the customer:
// not cancelled or rejected, and its delivery has not happened yet. An order
// without a recorded delivery status counts as pending.
func (QueuePartitioner) IsDrop(o *order.Order) bool {
	if isWithdrawn(o) {
		return false
	}
	ds := o.DeliveryStatus().OrPending()
	return ds == order.DeliveryPending || ds == order.DeliveryPickedUp
}

// IsPickupDue reports whether the order's items are due for collection on the
// given day: dropped off already, not cancelled or rejected, and the rental
// ends on that day or earlier. Day granularity; time of day is ignored.
func (QueuePartitioner) IsPickupDue(o *order.Order, today time.Time) bool {
	if isWithdrawn(o) {
		return false
	}
	return o.DeliveryStatus() == order.DeliveryDelivered && o.Window().EndsOnOrBefore(today)
}

// IsOverdue reports whether a due pickup's rental ended strictly before the
// given day.
func (p QueuePartitioner) IsOverdue(o *order.Order, today time.Time) bool {
	return p.IsPickupDue(o, today) && o.Window().EndsBefore(today)
}

// IsCompleted reports whether the order belongs to the worker's history view:
// dropped off, fully returned, or withdrawn before any handling.
func (QueuePartitioner) IsCompleted(o *order.Order) bool {
	ds := o.DeliveryStatus()
	return ds == order.DeliveryDelivered || ds == order.DeliveryReturned || isWithdrawn(o)
}

// Partition builds the full day view for one worker's assigned orders.
func (p QueuePartitioner) Partition(orders []*order.Order, today time.Time) DeliveryQueue {
	queue := DeliveryQueue{}
	for _, o := range orders {
		if p.IsDrop(o) {
			queue.Drops = append(queue.Drops, o)
		}
		if p.IsPickupDue(o, today) {
			queue.Pickups = append(queue.Pickups, PickupEntry{
				Order:   o,
				Overdue: p.IsOverdue(o, today),
			})
		}
		if p.IsCompleted(o) {
			queue.Completed = append(queue.Completed, o)
		}
	}
	return queue
}

func isWithdrawn(o *order.Order) bool {
	return o.OrderStatus() == order.OrderCancelled || o.OrderStatus() == order.OrderRejected
}
