package events

import (
	"context"
	"sync"
	"time"
)

// Event is one scheduling decision published for live consumers.
type Event struct {
	Type    string      `json:"type"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload"`
}

// Broker fans scheduling decisions out to subscribers. Publish never
// blocks; slow subscribers miss events rather than stalling the
// scheduling path.
type Broker interface {
	Publish(ctx context.Context, evt Event)
	Subscribe() (<-chan Event, func())
	Close() error
}

// MemoryBroker is the in-process Broker used when no Redis URL is
// configured.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[chan Event]struct{})}
}

func (b *MemoryBroker) Publish(_ context.Context, evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
			// subscriber is behind, drop for them
		}
	}
}

func (b *MemoryBroker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	return nil
}
