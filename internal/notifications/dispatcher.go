// Package notifications ships status notifications from committed
// transitions to the outbound publisher. Delivery is asynchronous and
// best-effort: a publish failure is logged, never retried into the
// transaction that produced the notification.
package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rental/internal/core/domain/services"
	"rental/internal/core/ports"
)

const publishTimeout = 5 * time.Second

// Dispatcher buffers notifications on a channel and publishes them from a
// single worker goroutine, keeping the enqueueing request path non-blocking.
type Dispatcher struct {
	publisher ports.NotificationPublisher
	logger    *slog.Logger
	queue     chan services.StatusNotification
	done      chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher with the given queue capacity.
func NewDispatcher(publisher ports.NotificationPublisher, logger *slog.Logger, capacity int) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		logger:    logger.With("component", "notification_dispatcher"),
		queue:     make(chan services.StatusNotification, capacity),
		done:      make(chan struct{}),
	}
}

// Start launches the publishing worker.
func (d *Dispatcher) Start() {
	go d.run()
	d.logger.Info("Notification dispatcher started")
}

// Enqueue hands one notification to the worker. Never blocks: when the
// queue is full or the dispatcher is stopped the notification is dropped
// and the drop is logged.
func (d *Dispatcher) Enqueue(notification services.StatusNotification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("Notification dropped, dispatcher is stopped",
			"orderNumber", notification.OrderNumber)
		return
	}

	select {
	case d.queue <- notification:
	default:
		d.logger.Warn("Notification dropped, queue is full",
			"orderNumber", notification.OrderNumber)
	}
}

// Stop drains the queue, stops the worker, and closes the publisher.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done

	if err := d.publisher.Close(); err != nil {
		d.logger.Error("Failed to close notification publisher", "error", err)
	}
	d.logger.Info("Notification dispatcher stopped")
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for notification := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := d.publisher.Publish(ctx, notification)
		cancel()

		if err != nil {
			d.logger.Error("Failed to publish status notification",
				"orderNumber", notification.OrderNumber,
				"newStatus", notification.NewStatus,
				"error", err)
			continue
		}

		d.logger.Debug("Status notification published",
			"orderNumber", notification.OrderNumber,
			"newStatus", notification.NewStatus)
	}
}
