package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type client struct {
	id     string
	events chan Event
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func newClient(ctx context.Context, bufferSize int) *client {
	clientCtx, cancel := context.WithCancel(ctx)
	return &client{
		id:     uuid.New().String(),
		events: make(chan Event, bufferSize),
		ctx:    clientCtx,
		cancel: cancel,
	}
}

// send reports false when the subscriber's buffer is full
func (c *client) send(event Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}
	select {
	case c.events <- event:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	close(c.events)
}
