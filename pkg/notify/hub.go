// Package notify fans engine activity events out to the configured sinks:
// the durable bounded log, Discord, the websocket feed and optionally MQTT.
package notify

import (
	"fmt"
	"sync"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
)

// Sink consumes activity events. Sinks must not block for long; the hub
// calls every sink from one long-lived dispatch goroutine, in event order.
type Sink interface {
	Emit(event models.ActivityEvent)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(event models.ActivityEvent)

func (f SinkFunc) Emit(event models.ActivityEvent) { f(event) }

// Hub is the engine's Recorder: it appends every event to the bounded
// durable log and fans it out to all subscribed sinks.
type Hub struct {
	store  *store.Store
	mu     sync.RWMutex
	sinks  []Sink
	events chan models.ActivityEvent
}

// NewHub builds a hub over the given store and starts its dispatcher.
func NewHub(s *store.Store) *Hub {
	h := &Hub{
		store:  s,
		events: make(chan models.ActivityEvent, 256),
	}
	go h.run()
	return h
}

// Subscribe adds a sink. Safe to call at any time.
func (h *Hub) Subscribe(sink Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks = append(h.sinks, sink)
}

// Record persists the event and hands it to the dispatcher. A panicking or
// failing sink never affects the others, and events reach the sinks in the
// order they were recorded.
func (h *Hub) Record(event models.ActivityEvent) {
	if err := h.store.AppendActivity(event); err != nil {
		logger.Error(fmt.Sprintf("No se pudo guardar el evento '%s': %v", event.Action, err), "Notify")
	}
	h.events <- event
}

// run is the dispatch loop. One goroutine for the hub's lifetime keeps the
// sinks' view of the activity feed ordered.
func (h *Hub) run() {
	for event := range h.events {
		h.mu.RLock()
		sinks := make([]Sink, len(h.sinks))
		copy(sinks, h.sinks)
		h.mu.RUnlock()

		for _, sink := range sinks {
			h.dispatch(sink, event)
		}
	}
}

func (h *Hub) dispatch(sink Sink, event models.ActivityEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("Sink falló con el evento '%s': %v", event.Action, r), "Notify")
		}
	}()
	sink.Emit(event)
}

// Recent returns the newest count events from the durable log, newest first.
func (h *Hub) Recent(count int) []models.ActivityEvent {
	events := h.store.Activity.Get()
	if count <= 0 || count > len(events) {
		count = len(events)
	}

	out := make([]models.ActivityEvent, 0, count)
	for i := len(events) - 1; i >= len(events)-count; i-- {
		out = append(out, events[i])
	}
	return out
}
