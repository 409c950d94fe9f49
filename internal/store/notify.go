package store

import "github.com/dshills/pianoroll/internal/note"

// ChangeType identifies what happened to the store.
type ChangeType int

const (
	// ChangeCreate indicates a note was added.
	ChangeCreate ChangeType = iota
	// ChangeResize indicates a note's bounds changed.
	ChangeResize
	// ChangeMove indicates notes were translated.
	ChangeMove
	// ChangeDelete indicates notes were removed.
	ChangeDelete
	// ChangeSelect indicates the selection was replaced.
	ChangeSelect
	// ChangeClick indicates a click-through on selected notes.
	ChangeClick
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreate:
		return "create"
	case ChangeResize:
		return "resize"
	case ChangeMove:
		return "move"
	case ChangeDelete:
		return "delete"
	case ChangeSelect:
		return "select"
	case ChangeClick:
		return "click"
	default:
		return "unknown"
	}
}

// Change describes one store mutation.
type Change struct {
	Type ChangeType
	IDs  []note.ID

	// Generation is the store generation after the change.
	Generation uint64
}

// Observer is called after each change, outside the store lock.
type Observer func(change Change)

type observerEntry struct {
	id  uint64
	obs Observer
}

// Subscription represents an active observer.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes the observer. It is safe to call more than once.
func (sub *Subscription) Unsubscribe() {
	if sub == nil || sub.store == nil {
		return
	}
	s := sub.store
	s.mu.Lock()
	for i, e := range s.observers {
		if e.id == sub.id {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	sub.store = nil
}

// Subscribe registers an observer for every change. Observers are called in
// subscription order.
func (s *Store) Subscribe(obs Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers = append(s.observers, observerEntry{id: id, obs: obs})
	return &Subscription{id: id, store: s}
}

func (s *Store) notify(change Change) {
	s.mu.RLock()
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, e := range observers {
		e.obs(change)
	}
}
