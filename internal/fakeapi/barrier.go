package fakeapi

import (
	"sync"
	"time"
)

// barrier releases its routes only once every one of them has arrived
type barrier struct {
	timeout time.Duration
	mu      sync.Mutex
	pending map[string]bool
	done    chan struct{}
}

func newBarrier(timeout time.Duration, routes []string) *barrier {
	pending := make(map[string]bool, len(routes))
	for _, r := range routes {
		pending[r] = true
	}
	return &barrier{timeout: timeout, pending: pending, done: make(chan struct{})}
}

func (b *barrier) covers(route string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pending[route]
	return ok
}

// arrive marks route as arrived and waits for the rest. It returns false on timeout.
func (b *barrier) arrive(route string) bool {
	b.mu.Lock()
	if b.pending[route] {
		b.pending[route] = false
		all := true
		for _, waiting := range b.pending {
			if waiting {
				all = false
				break
			}
		}
		if all {
			close(b.done)
		}
	}
	b.mu.Unlock()

	select {
	case <-b.done:
		return true
	case <-time.After(b.timeout):
		return false
	}
}
