package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string]()
	ch := bus.Subscribe()
	bus.Publish("hello")
	if v := <-ch; v != "hello" {
		t.Fatalf("expected hello got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestBusSlowSubscriberMissesEvents(t *testing.T) {
	bus := New[int]()
	ch := bus.Subscribe()
	for i := 0; i < subscriberBuffer+5; i++ {
		bus.Publish(i)
	}
	// The buffer held the first events; the overflow was dropped, not queued.
	for i := 0; i < subscriberBuffer; i++ {
		if v := <-ch; v != i {
			t.Fatalf("event %d: got %v", i, v)
		}
	}
	select {
	case v := <-ch:
		t.Fatalf("expected empty buffer, got %v", v)
	default:
	}
}

func TestBusClose(t *testing.T) {
	bus := New[string]()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	if ch := bus.Subscribe(); ch == nil {
		t.Fatalf("subscribe after close must return a channel")
	} else if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel from closed bus")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New[string]()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}
