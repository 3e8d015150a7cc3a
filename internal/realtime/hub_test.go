package realtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWatchDeliversInitialAndChanged(t *testing.T) {
	hub := NewHub()
	var version atomic.Int32
	var mu sync.Mutex
	var got []int32

	sub := Watch(hub, 1, CollectionTickets,
		func(context.Context) (int32, error) { return version.Load(), nil },
		func(v int32) {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		},
	)
	defer sub.Stop()

	count := func() int { mu.Lock(); defer mu.Unlock(); return len(got) }
	waitFor(t, "initial snapshot", func() bool { return count() == 1 })

	version.Store(1)
	hub.Publish(Change{UserID: 2, Collection: CollectionTickets})
	hub.Publish(Change{UserID: 1, Collection: CollectionEntities})
	time.Sleep(20 * time.Millisecond)
	if count() != 1 {
		t.Fatal("unrelated changes must not reload")
	}

	hub.Publish(Change{UserID: 1, Collection: CollectionTickets})
	waitFor(t, "changed snapshot", func() bool { return count() == 2 })
	mu.Lock()
	defer mu.Unlock()
	if got[1] != 1 {
		t.Errorf("got %v", got)
	}
}

func TestWatchCoalescesBursts(t *testing.T) {
	hub := NewHub()
	release := make(chan struct{})
	var loads atomic.Int32

	sub := Watch(hub, 1, CollectionEntities,
		func(context.Context) (int, error) {
			if loads.Add(1) == 2 {
				<-release
			}
			return 0, nil
		},
		func(int) {},
	)
	defer sub.Stop()

	waitFor(t, "initial load", func() bool { return loads.Load() == 1 })
	hub.Publish(Change{UserID: 1, Collection: CollectionEntities})
	waitFor(t, "second load", func() bool { return loads.Load() == 2 })

	// all of these land while the second load is blocked
	for i := 0; i < 10; i++ {
		hub.Publish(Change{UserID: 1, Collection: CollectionEntities})
	}
	close(release)

	waitFor(t, "coalesced reload", func() bool { return loads.Load() == 3 })
	time.Sleep(20 * time.Millisecond)
	if n := loads.Load(); n != 3 {
		t.Errorf("expected 3 loads, got %d", n)
	}
}

func TestStopWaitsForDeliveryAndSilences(t *testing.T) {
	hub := NewHub()
	entered := make(chan struct{})
	release := make(chan struct{})
	var delivered atomic.Int32

	sub := Watch(hub, 1, CollectionTickets,
		func(context.Context) (int, error) { return 0, nil },
		func(int) {
			if delivered.Add(1) == 1 {
				close(entered)
				<-release
			}
		},
	)
	<-entered

	stopped := make(chan struct{})
	go func() {
		sub.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a delivery was running")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	<-stopped

	hub.Publish(Change{UserID: 1, Collection: CollectionTickets})
	time.Sleep(20 * time.Millisecond)
	if n := delivered.Load(); n != 1 {
		t.Errorf("delivered %d times, want 1", n)
	}
	if hub.Subscribers() != 0 {
		t.Error("subscription still registered")
	}
}

func TestWatchSkipsFailedLoads(t *testing.T) {
	hub := NewHub()
	var calls atomic.Int32
	var delivered atomic.Int32

	sub := Watch(hub, 1, CollectionTickets,
		func(context.Context) (int, error) {
			if calls.Add(1) == 1 {
				return 0, errors.New("connection reset")
			}
			return 1, nil
		},
		func(int) { delivered.Add(1) },
	)
	defer sub.Stop()

	waitFor(t, "first load", func() bool { return calls.Load() == 1 })
	if delivered.Load() != 0 {
		t.Fatal("failed load was delivered")
	}
	hub.Publish(Change{UserID: 1, Collection: CollectionTickets})
	waitFor(t, "recovery", func() bool { return delivered.Load() == 1 })
}

func TestParseNotification(t *testing.T) {
	tests := []struct {
		payload string
		want    Change
		ok      bool
	}{
		{"12:tickets", Change{12, CollectionTickets}, true},
		{"3:entities", Change{3, CollectionEntities}, true},
		{"3:users", Change{}, false},
		{"x:tickets", Change{}, false},
		{"tickets", Change{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseNotification(tt.payload)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseNotification(%q) = %+v, %v", tt.payload, got, ok)
		}
	}
}
