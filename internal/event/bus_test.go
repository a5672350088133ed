package event

import (
	"sync"
	"testing"
	"time"
)

func TestBus_PublishToSpecificAndWildcard(t *testing.T) {
	bus := NewBus(nil)

	var order []string
	bus.SubscribeAll(func(e Event) {
		order = append(order, "wildcard:"+e.EventType())
	})
	bus.Subscribe(TypeOfficeClosed, func(e Event) {
		order = append(order, "specific:"+e.EventType())
	})

	bus.Publish(NewOfficeClosedEvent(50 * time.Millisecond))

	want := []string{"specific:office.closed", "wildcard:office.closed"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus(nil)

	bus.Subscribe(TypeRunFinished, func(e Event) {
		t.Error("Handler should not be called for non-matching event type")
	})

	bus.Publish(NewQueueChangedEvent([]int{1, 0, 0}, true))
}

func TestBus_NilIsNoop(t *testing.T) {
	var bus *Bus
	bus.Publish(NewRunFinishedEvent(3, time.Second, nil))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)

	called := false
	id := bus.Subscribe(TypeEntryRecorded, func(e Event) {
		called = true
	})

	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return true when subscription exists")
	}
	if bus.Unsubscribe(id) {
		t.Error("second Unsubscribe should return false")
	}
	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after unsubscribe, got %d", bus.SubscriptionCount())
	}

	bus.Publish(NewEntryRecordedEvent(1, "Z", 1, "client.started", 0, "1: Z 1: started"))
	if called {
		t.Error("Handler should not be called after unsubscribing")
	}
}

func TestBus_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(nil)

	delivered := false
	bus.Subscribe(TypeOfficeClosed, func(e Event) {
		panic("boom")
	})
	bus.Subscribe(TypeOfficeClosed, func(e Event) {
		delivered = true
	})

	bus.Publish(NewOfficeClosedEvent(time.Millisecond))

	if !delivered {
		t.Error("second handler should still be called")
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)

	var mu sync.Mutex
	count := 0
	bus.Subscribe(TypeEntryRecorded, func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(line uint64) {
			defer wg.Done()
			bus.Publish(NewEntryRecordedEvent(line, "U", 1, "worker.started", 0, ""))
		}(uint64(i + 1))
	}
	wg.Wait()

	if count != 20 {
		t.Errorf("count = %d, want 20", count)
	}
}

func TestNewQueueChangedEvent_CopiesQueues(t *testing.T) {
	queues := []int{2, 1, 0}
	ev := NewQueueChangedEvent(queues, true)
	queues[0] = 99

	if ev.Queues[0] != 2 {
		t.Errorf("event queues aliased caller slice: %v", ev.Queues)
	}
}
