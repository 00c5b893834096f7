// Package queries contains read-only operations for the rental system.
// Implements the Query side of the CQRS architecture: handlers read storage
// directly and return response DTOs shaped for the caller, bypassing the
// aggregate repositories used by commands.
package queries

import (
	"errors"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/guard"
)

var (
	ErrGetDeliveryQueueQueryIsNotConstructed = errors.New(
		"GetDeliveryQueueQuery must be created via NewGetDeliveryQueueQuery constructor",
	)
	ErrTodayIsRequired = errors.New("today is required")
)

// GetDeliveryQueueQuery retrieves one delivery worker's day view: drops still
// to make, pickups due or overdue, and completed history.
//
// Example:
//
//	query, err := NewGetDeliveryQueueQuery(workerID, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid queue request: %w", err)
//	}
//
//	queue, err := handler.Handle(ctx, query)
type GetDeliveryQueueQuery struct {
	workerID kernel.UUID
	today    time.Time

	guard guard.ConstructorGuard
}

// NewGetDeliveryQueueQuery creates a queue query for one worker. The given
// day anchors the due/overdue pickup classification.
func NewGetDeliveryQueueQuery(workerID kernel.UUID, today time.Time) (GetDeliveryQueueQuery, error) {
	if err := workerID.Validate(); err != nil {
		return GetDeliveryQueueQuery{}, err
	}
	if today.IsZero() {
		return GetDeliveryQueueQuery{}, ErrTodayIsRequired
	}

	return GetDeliveryQueueQuery{
		workerID: workerID,
		today:    today,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueueQueryIsNotConstructed)
}

// WorkerID returns the delivery worker whose queue is requested.
func (q GetDeliveryQueueQuery) WorkerID() kernel.UUID {
	return q.workerID
}

// Today returns the reference day for pickup classification.
func (q GetDeliveryQueueQuery) Today() time.Time {
	return q.today
}

// DeliveryQueueEntry is one order in a worker's queue view.
type DeliveryQueueEntry struct {
	ID             kernel.UUID `json:"id"`
	OrderNumber    string      `json:"orderNumber"`
	CustomerEmail  string      `json:"customerEmail"`
	OrderStatus    string      `json:"orderStatus"`
	DeliveryStatus string      `json:"deliveryStatus"`
	RentalStart    time.Time   `json:"rentalStart"`
	RentalEnd      time.Time   `json:"rentalEnd"`
	TotalAmount    int64       `json:"totalAmount"`
	ItemSummaries  []string    `json:"itemSummaries"`
	Notes          string      `json:"notes,omitempty"`
	// Overdue is meaningful in the pickups bucket only
	Overdue bool `json:"overdue,omitempty"`
}

// GetDeliveryQueueQueryResponse is a worker's classified queue. The buckets
// overlap deliberately: completed is a historical view, not the complement of
// the other two.
type GetDeliveryQueueQueryResponse struct {
	Drops     []DeliveryQueueEntry `json:"drops"`
	Pickups   []DeliveryQueueEntry `json:"pickups"`
	Completed []DeliveryQueueEntry `json:"completed"`
}
