package reducer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gigpulse/gigpulse/internal/adapters/mq/queue"
	"github.com/gigpulse/gigpulse/internal/domain/model"
	"github.com/gigpulse/gigpulse/pkg/logger"
)

type recordingApplier struct {
	mu            sync.Mutex
	fixes         []model.Fix
	notifications []model.Notification
}

func (a *recordingApplier) ApplyFix(_ context.Context, fix model.Fix) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fixes = append(a.fixes, fix)
}

func (a *recordingApplier) ApplyNotification(_ context.Context, n model.Notification) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notifications = append(a.notifications, n)
}

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestReducer_AppliesInArrivalOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(16))
	applier := &recordingApplier{}
	r := New(q, applier)

	for i := 0; i < 5; i++ {
		if !q.Enqueue(ctx, model.Event{Kind: model.EventFix, Fix: model.Fix{Lat: float64(i)}}) {
			t.Fatal("enqueue failed")
		}
	}
	q.Enqueue(ctx, model.Event{Kind: model.EventNotification, Notification: model.Notification{SourceApp: "com.dd.dasher"}})
	_ = q.Close()

	r.Run(ctx) // queue closed; Run returns after draining

	if len(applier.fixes) != 5 {
		t.Fatalf("expected 5 fixes, got %d", len(applier.fixes))
	}
	for i, f := range applier.fixes {
		if f.Lat != float64(i) {
			t.Errorf("fix %d out of order: lat=%v", i, f.Lat)
		}
	}
	if len(applier.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(applier.notifications))
	}
}

func TestReducer_Shutdown(t *testing.T) {
	ctx := context.Background()
	q := queue.NewInMemoryQueue(queue.WithCapacity(4))
	r := New(q, &recordingApplier{})

	go r.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}

func TestReducer_UnknownKindIsDropped(t *testing.T) {
	ctx := context.Background()
	q := queue.NewInMemoryQueue(queue.WithCapacity(4))
	applier := &recordingApplier{}
	r := New(q, applier)

	q.Enqueue(ctx, model.Event{Kind: 99})
	_ = q.Close()
	r.Run(ctx)

	if len(applier.fixes) != 0 || len(applier.notifications) != 0 {
		t.Error("expected no applied events")
	}
}
