package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gigpulse/gigpulse/internal/domain/model"
)

func fixEvent(lat, lng float64) model.Event {
	return model.Event{Kind: model.EventFix, Fix: model.Fix{Lat: lat, Lng: lng, RecordedAt: time.Now()}}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, fixEvent(36.2, -119.3)) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	events := q.Dequeue(ctx)
	e := <-events
	if e.Kind != model.EventFix || e.Fix.Lat != 36.2 {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestInMemoryQueue_FullQueueRefusesEvents(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, fixEvent(1, 1)) || !q.Enqueue(ctx, fixEvent(2, 2)) {
		t.Fatal("expected enqueues to succeed")
	}
	if q.Enqueue(ctx, fixEvent(3, 3)) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, fixEvent(1, 1)) {
		t.Fatal("expected enqueue to succeed")
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if q.Enqueue(ctx, fixEvent(2, 2)) {
		t.Error("expected enqueue to fail after close")
	}

	// The queued event drains, then the channel closes.
	events := q.Dequeue(ctx)
	if _, ok := <-events; !ok {
		t.Error("expected the buffered event before close")
	}
	if _, ok := <-events; ok {
		t.Error("expected the dequeue channel to close")
	}
}

func TestInMemoryQueue_ConcurrentProducers(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1000))
	ctx := context.Background()

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				e := model.Event{Kind: model.EventNotification, Notification: model.Notification{SourceApp: "com.dd.dasher"}}
				for !q.Enqueue(ctx, e) {
					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}
	wg.Wait()

	if l := q.Len(ctx); l != producers*perProducer {
		t.Errorf("expected %d queued events, got %d", producers*perProducer, l)
	}
}
