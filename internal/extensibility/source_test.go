package extensibility

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/comalice/navperf/internal/primitives"
)

func TestChannelEntrySource_Delivers(t *testing.T) {
	ch := make(chan primitives.Entry, 1)
	s := NewChannelEntrySource(ch)
	got := make(chan primitives.Entry, 1)
	stop := s.Observe(func(e primitives.Entry) { got <- e })
	defer stop()

	ch <- primitives.Entry{Name: "bundle.js", EntryType: "resource"}

	select {
	case e := <-got:
		if e.Name != "bundle.js" {
			t.Errorf("entry = %+v", e)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("no entry delivered")
	}
}

func TestChannelEntrySource_Stop(t *testing.T) {
	ch := make(chan primitives.Entry, 1)
	s := NewChannelEntrySource(ch)
	var mu sync.Mutex
	count := 0
	stop := s.Observe(func(primitives.Entry) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	stop()
	stop() // idempotent

	time.Sleep(10 * time.Millisecond)
	select {
	case ch <- primitives.Entry{Name: "late"}:
	default:
	}
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("delivered %d entries after stop", count)
	}
}

type fakeNavigator struct {
	screens []string
}

func (n *fakeNavigator) Go(screen string, extra primitives.Detail) {
	n.screens = append(n.screens, screen)
}

func TestPumpNavigation_UntilClosed(t *testing.T) {
	requests := make(chan primitives.NavState, 2)
	requests <- primitives.NavState{Screen: "gradeOne"}
	requests <- primitives.NavState{Screen: "home"}
	close(requests)

	nav := &fakeNavigator{}
	if err := PumpNavigation(context.Background(), requests, nav); err != nil {
		t.Fatalf("PumpNavigation: %v", err)
	}
	if len(nav.screens) != 2 || nav.screens[0] != "gradeOne" || nav.screens[1] != "home" {
		t.Errorf("screens = %v", nav.screens)
	}
}

func TestPumpNavigation_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := PumpNavigation(ctx, make(chan primitives.NavState), &fakeNavigator{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
