package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// EventHandler is a function that handles a domain event
type EventHandler func(ctx context.Context, event DomainEvent) error

// Dispatcher dispatches domain events to registered handlers
type Dispatcher struct {
	handlers map[string][]EventHandler
	logger   zerolog.Logger
	mu       sync.RWMutex
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]EventHandler),
		logger:   logger,
	}
}

// Register registers an event handler for a specific event type
func (d *Dispatcher) Register(eventType string, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// RegisterAll registers one handler for several event types
func (d *Dispatcher) RegisterAll(eventTypes []string, handler EventHandler) {
	for _, eventType := range eventTypes {
		d.Register(eventType, handler)
	}
}

// Dispatch dispatches an event to all registered handlers
func (d *Dispatcher) Dispatch(ctx context.Context, event DomainEvent) error {
	d.mu.RLock()
	handlers := d.handlers[event.EventType()]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(handlers))

	for _, handler := range handlers {
		wg.Add(1)
		go func(h EventHandler) {
			defer wg.Done()
			if err := h(ctx, event); err != nil {
				d.logger.Warn().
					Err(err).
					Str("event_type", event.EventType()).
					Str("event_id", event.EventID()).
					Msg("Error handling event")
				errChan <- err
			}
		}(handler)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors occurred while dispatching event %s: %w", event.EventType(), errors.Join(errs...))
	}

	return nil
}
