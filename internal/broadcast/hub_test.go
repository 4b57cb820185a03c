package broadcast

import (
	"testing"
	"time"
)

func TestHub_SubscribePublishUnsubscribe(t *testing.T) {
	h := NewHub()

	ch1, cancel1 := h.Subscribe()
	ch2, cancel2 := h.Subscribe()
	defer cancel2()

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	h.Publish(Event{Name: EventUpdate, Payload: "a"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Name != EventUpdate || ev.Payload != "a" {
				t.Fatalf("subscriber %d got %+v", i, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive event", i)
		}
	}

	cancel1()
	cancel1() // idempotent
	if h.Len() != 1 {
		t.Fatalf("Len() after unsubscribe = %d, want 1", h.Len())
	}

	// Channel is closed after unsubscribe.
	if _, open := <-ch1; open {
		t.Fatalf("expected closed channel after unsubscribe")
	}
}

func TestHub_SlowListenerDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Overfill the buffer; Publish must never block.
		for i := 0; i < subscriberBuffer*3; i++ {
			h.Publish(Event{Name: EventUpdate, Payload: i})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Publish blocked on a slow listener")
	}

	// The buffered prefix is still there.
	n := 0
	for {
		select {
		case <-ch:
			n++
		default:
			if n != subscriberBuffer {
				t.Fatalf("buffered %d events, want %d", n, subscriberBuffer)
			}
			return
		}
	}
}

func TestHub_PublishWithNoSubscribers(t *testing.T) {
	h := NewHub()
	// Must not panic or block.
	h.Publish(Event{Name: EventWelcome})
	if h.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", h.Len())
	}
}
