package workers

import (
	"context"
	"log"
	"time"

	"github.com/screenaware/screenaware/internal/core/domain"
)

const (
	defaultQueueSize = 100
	publishTimeout   = 5 * time.Second
)

// PublishWorker ships recorded data points to the event stream off the request path.
type PublishWorker struct {
	publisher domain.EventPublisher
	jobs      chan *domain.DataPoint
	done      chan struct{}
}

func NewPublishWorker(publisher domain.EventPublisher, queueSize int) *PublishWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &PublishWorker{
		publisher: publisher,
		jobs:      make(chan *domain.DataPoint, queueSize),
		done:      make(chan struct{}),
	}
}

// Start runs the worker until ctx is cancelled. Points still queued at that
// moment are flushed before Done is closed.
func (w *PublishWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		log.Println("[WORKER] Publish worker started in background...")
		for {
			select {
			case point := <-w.jobs:
				w.publish(point)
			case <-ctx.Done():
				w.drain()
				log.Println("[WORKER] Publish worker shutting down...")
				return
			}
		}
	}()
}

// Done is closed once the worker has stopped.
func (w *PublishWorker) Done() <-chan struct{} {
	return w.done
}

func (w *PublishWorker) Enqueue(point *domain.DataPoint) {
	select {
	case w.jobs <- point:
	default:
		log.Printf("[WORKER] Publish queue full! Dropping event for data point %s", point.ID)
	}
}

func (w *PublishWorker) drain() {
	for {
		select {
		case point := <-w.jobs:
			w.publish(point)
		default:
			return
		}
	}
}

func (w *PublishWorker) publish(point *domain.DataPoint) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := w.publisher.PublishDataPoint(ctx, point); err != nil {
		log.Printf("[WORKER] Failed to publish data point %s: %v", point.ID, err)
	}
}
