package store

import (
	"testing"

	"p9e.in/obras/models"
)

func TestPushLatestDropsStale(t *testing.T) {
	ch := make(chan []models.Obra, 1)

	first := []models.Obra{{OS: "OS-1"}}
	second := []models.Obra{{OS: "OS-1"}, {OS: "OS-2"}}

	pushLatest(ch, first)
	pushLatest(ch, second) // nobody read first yet; it must be replaced

	got := <-ch
	if len(got) != 2 {
		t.Fatalf("delivered %d obras, want the newer snapshot with 2", len(got))
	}

	select {
	case extra := <-ch:
		t.Fatalf("unexpected second delivery: %v", extra)
	default:
	}
}

func TestPushLatestDoesNotBlock(t *testing.T) {
	ch := make(chan []models.Obra, 1)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			pushLatest(ch, []models.Obra{{OS: "OS-1"}})
		}
		close(done)
	}()
	<-done
}

func TestSubscribeUnsubscribe(t *testing.T) {
	s := New(nil)

	ch1, cancel1 := s.SubscribeObras()
	_, cancel2 := s.SubscribeObras()

	s.mu.Lock()
	n := len(s.obraSubs)
	s.mu.Unlock()
	if n != 2 {
		t.Fatalf("subscribers = %d, want 2", n)
	}

	cancel2()
	s.mu.Lock()
	n = len(s.obraSubs)
	s.mu.Unlock()
	if n != 1 {
		t.Fatalf("after unsubscribe: %d, want 1", n)
	}

	// Remaining channel still receives a manual push.
	s.mu.Lock()
	for _, ch := range s.obraSubs {
		pushLatest(ch, []models.Obra{{OS: "OS-9"}})
	}
	s.mu.Unlock()
	got := <-ch1
	if len(got) != 1 || got[0].OS != "OS-9" {
		t.Errorf("delivery = %v", got)
	}
	cancel1()
}
