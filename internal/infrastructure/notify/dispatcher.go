package notify

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerhub/dealership-system/internal/core/ports"
	"github.com/dealerhub/dealership-system/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	sendTimeout    = 15 * time.Second
)

// Dispatcher delivers notifications on a fixed set of workers. Notifications
// of one dealer always land on the same worker, so they go out in order.
type Dispatcher struct {
	workers []chan ports.Notification
	sender  Sender
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Close has drained their queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Notify queues n without blocking. When the worker's queue is full, or the
// dispatcher is closed, n is dropped and logged.
func (d *Dispatcher) Notify(n ports.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(n, "dispatcher closed")
		return
	}
	idx := d.shardIndex(n.DealerID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.drop(n, "queue full")
	}
}

// Close stops accepting notifications and waits for queued ones to be sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) drop(n ports.Notification, reason string) {
	metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
	d.log.Warn().Str("dealer_id", n.DealerID).Str("reason", reason).Msg("notification dropped")
}

// shardIndex maps a dealer id deterministically to a worker index.
func (d *Dispatcher) shardIndex(dealerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(dealerID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Dec()
			d.deliver(id, n)
		}
	}
}

func (d *Dispatcher) deliver(worker int, n ports.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	err := d.sender.Send(ctx, n)
	switch {
	case err == nil:
		metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	case errors.Is(err, ErrEmailDisabled):
		metrics.NotificationsTotal.WithLabelValues("skipped").Inc()
		d.log.Debug().Str("dealer_id", n.DealerID).Msg("EMAIL_API_KEY not set, notification skipped")
	default:
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("dealer_id", n.DealerID).
			Int("worker_id", worker).
			Msg("notification delivery failed")
	}
}
