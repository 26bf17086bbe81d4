package usecase

import (
	"github.com/eliteGoblin/govswitch/internal/domain"
)

// GovernorListener is called with the new active governor.
type GovernorListener func(id domain.GovernorID)

// SubscriptionID identifies a listener for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id       SubscriptionID
	listener GovernorListener
}

// GovernorState is the single source of truth for the active governor.
// It is owned by the event loop and not safe for concurrent use.
type GovernorState struct {
	active      domain.GovernorID
	set         bool
	subscribers []subscription
	nextID      SubscriptionID
}

// NewGovernorState creates an unresolved state.
func NewGovernorState() *GovernorState {
	return &GovernorState{}
}

// Active returns the current governor; ok is false until the first
// probe or switch resolves.
func (s *GovernorState) Active() (id domain.GovernorID, ok bool) {
	return s.active, s.set
}

// Subscribe appends a listener. Listeners run in subscription order.
func (s *GovernorState) Subscribe(l GovernorListener) SubscriptionID {
	s.nextID++
	s.subscribers = append(s.subscribers, subscription{id: s.nextID, listener: l})
	return s.nextID
}

// Unsubscribe removes a listener. Unknown IDs are ignored.
func (s *GovernorState) Unsubscribe(id SubscriptionID) {
	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// SetActive overwrites the active governor and notifies every subscriber
// once, synchronously, before returning. Notification iterates a snapshot,
// so a listener that unsubscribes during dispatch cannot skip another.
func (s *GovernorState) SetActive(id domain.GovernorID) {
	s.active = id
	s.set = true

	snapshot := make([]subscription, len(s.subscribers))
	copy(snapshot, s.subscribers)
	for _, sub := range snapshot {
		sub.listener(id)
	}
}
