package store

import (
	"log"

	"p9e.in/obras/models"
)

// Subscription channels are buffered one deep and carry full result
// sets. A slow consumer never blocks a writer: when the buffer is
// occupied the stale snapshot is replaced by the newer one, which is
// safe because every delivery is a full replace.

// SubscribeObras registers a listener for the obra collection. The
// returned func unsubscribes; forgetting to call it leaks the listener
// for the process lifetime.
func (s *Store) SubscribeObras() (<-chan []models.Obra, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan []models.Obra, 1)
	s.obraSubs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.obraSubs, id)
	}
}

// SubscribeResponsaveis registers a listener for the assignable
// (active) lead set.
func (s *Store) SubscribeResponsaveis() (<-chan []models.ResponsavelTecnico, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan []models.ResponsavelTecnico, 1)
	s.respSubs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.respSubs, id)
	}
}

func (s *Store) notifyObras() {
	obras, err := s.ListObras()
	if err != nil {
		// The write itself succeeded; subscribers just miss one push.
		log.Printf("store: re-query obras for notify failed: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.obraSubs {
		pushLatest(ch, obras)
	}
}

func (s *Store) notifyResponsaveis() {
	responsaveis, err := s.ListResponsaveis(false)
	if err != nil {
		log.Printf("store: re-query responsáveis for notify failed: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.respSubs {
		pushLatest(ch, responsaveis)
	}
}

// pushLatest delivers v without blocking, dropping a stale undelivered
// snapshot if one is sitting in the buffer.
func pushLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
