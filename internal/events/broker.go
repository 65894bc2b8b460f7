// Package events fans job and settings updates out to every connected
// observer (popup, page overlays, CLI watchers).
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"osint-pivot/internal/logger"
)

const (
	DefaultEventBufferSize  = 256
	DefaultClientBufferSize = 32
	DefaultShutdownTimeout  = 5 * time.Second
)

// ErrBrokerStopped is returned by Publish once the broker has shut down.
var ErrBrokerStopped = errors.New("event broker stopped")

// Broker is a best-effort publish/subscribe hub. Publish never blocks;
// subscribers whose buffer is full are disconnected and expected to
// re-request a snapshot when they reconnect.
type Broker struct {
	logger  logger.Logger
	clients map[string]*client
	mu      sync.RWMutex

	publish chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	clientBufferSize int
	shutdownTimeout  time.Duration
}

// Option configures a Broker
type Option func(*Broker)

// WithEventBuffer sets the size of the shared publish queue
func WithEventBuffer(n int) Option {
	return func(b *Broker) {
		if n > 0 {
			b.publish = make(chan Event, n)
		}
	}
}

// WithClientBuffer sets the per-subscriber queue size
func WithClientBuffer(n int) Option {
	return func(b *Broker) {
		if n > 0 {
			b.clientBufferSize = n
		}
	}
}

// NewBroker creates a stopped broker. Call Start before publishing.
func NewBroker(log logger.Logger, opts ...Option) *Broker {
	b := &Broker{
		logger:           log,
		clients:          make(map[string]*client),
		publish:          make(chan Event, DefaultEventBufferSize),
		clientBufferSize: DefaultClientBufferSize,
		shutdownTimeout:  DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start launches the broadcast loop
func (b *Broker) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(1)
	go b.broadcastLoop()

	b.logger.Info("Event broker started",
		logger.Int("event_buffer_size", cap(b.publish)),
		logger.Int("client_buffer_size", b.clientBufferSize),
	)
}

// Stop shuts the broker down and disconnects every subscriber
func (b *Broker) Stop() {
	if b.cancel != nil {
		b.cancel()
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("Event broker stopped")
	case <-time.After(b.shutdownTimeout):
		b.logger.Warn("Event broker shutdown timeout exceeded")
	}
}

// Publish queues an event for every subscriber
func (b *Broker) Publish(ctx context.Context, event Event) error {
	if b.ctx != nil && b.ctx.Err() != nil {
		return ErrBrokerStopped
	}
	select {
	case b.publish <- event:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish cancelled: %w", ctx.Err())
	default:
		return fmt.Errorf("publish buffer full (dropped event: %s)", event.Type)
	}
}

// Subscribe registers a subscriber. The channel is closed when ctx ends,
// when cleanup is called, when the subscriber falls behind, or on Stop.
func (b *Broker) Subscribe(ctx context.Context) (<-chan Event, func()) {
	c := newClient(ctx, b.clientBufferSize)

	b.mu.Lock()
	b.clients[c.id] = c
	total := len(b.clients)
	b.mu.Unlock()

	b.logger.Debug("Subscriber connected",
		logger.String("client_id", c.id),
		logger.Int("total_clients", total),
	)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		<-c.ctx.Done()
		b.removeClient(c.id)
	}()

	return c.events, func() { b.removeClient(c.id) }
}

// ClientCount returns the number of connected subscribers
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broker) broadcastLoop() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.publish:
			b.broadcast(event)
		case <-b.ctx.Done():
			b.disconnectAll()
			return
		}
	}
}

func (b *Broker) broadcast(event Event) {
	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	var slow []string
	for _, c := range clients {
		if !c.send(event) {
			slow = append(slow, c.id)
		}
	}

	for _, id := range slow {
		b.logger.Warn("Subscriber buffer full, dropping",
			logger.String("client_id", id),
			logger.String("event_type", event.Type),
		)
		b.removeClient(id)
	}
}

func (b *Broker) removeClient(id string) {
	b.mu.Lock()
	c, ok := b.clients[id]
	delete(b.clients, id)
	b.mu.Unlock()

	if ok {
		c.close()
		b.logger.Debug("Subscriber disconnected", logger.String("client_id", id))
	}
}

func (b *Broker) disconnectAll() {
	b.mu.Lock()
	clients := b.clients
	b.clients = make(map[string]*client)
	b.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	b.logger.Info("All subscribers disconnected", logger.Int("count", len(clients)))
}
