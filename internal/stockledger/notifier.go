package stockledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// Dispatcher is the in-process availability notifier: a buffered queue
// drained by a single worker that patches product status through the
// product client. Notify never blocks the stock write path; when the
// queue is full the change is dropped and logged, matching the
// best-effort contract.
type Dispatcher struct {
	products domain.ProductClient
	log      *zap.Logger
	timeout  time.Duration

	queue     chan domain.AvailabilityChange
	done      chan struct{}
	closeOnce sync.Once
}

func NewDispatcher(products domain.ProductClient, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		products: products,
		log:      log,
		timeout:  5 * time.Second,
		queue:    make(chan domain.AvailabilityChange, 256),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Notify(change domain.AvailabilityChange) {
	select {
	case d.queue <- change:
	default:
		d.log.Error("availability queue full, change dropped",
			zap.String("event_id", change.EventID),
			zap.Int64("product_id", change.ProductID))
	}
}

// Close stops the worker after draining queued changes. Safe to call
// more than once.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.queue) })
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for change := range d.queue {
		d.apply(change)
	}
}

func (d *Dispatcher) apply(change domain.AvailabilityChange) {
	status, flip := domain.StatusAfterChange(change.PreviousQty, change.NewQty)
	if !flip {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.products.UpdateProductStatus(ctx, change.ProductID, status); err != nil {
		// Best effort: the stock change stands regardless.
		d.log.Error("product status update failed",
			zap.String("event_id", change.EventID),
			zap.Int64("product_id", change.ProductID),
			zap.String("status", string(status)),
			zap.Error(err))
		return
	}
	d.log.Info("product status updated",
		zap.Int64("product_id", change.ProductID),
		zap.String("status", string(status)))
}

var _ domain.AvailabilityNotifier = (*Dispatcher)(nil)
