package events

import (
	"context"
	"sync"
)

// LocalBus is an in-process Publisher/Subscriber used when Redis is not
// configured. Handlers run synchronously on the publishing goroutine.
type LocalBus struct {
	mu       sync.RWMutex
	handlers map[string][]func(Event)
}

func NewLocalBus() *LocalBus {
	return &LocalBus{handlers: make(map[string][]func(Event))}
}

func (b *LocalBus) Publish(_ context.Context, stream string, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.handlers[stream] {
		h(event)
	}
	return nil
}

func (b *LocalBus) Subscribe(_ context.Context, stream string, handler func(Event)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[stream] = append(b.handlers[stream], handler)
	return nil
}
