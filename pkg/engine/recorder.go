package engine

import (
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
)

// Recorder receives a structured event for every state-changing operation.
// The notify package provides the production implementation; tests usually
// pass a NopRecorder.
type Recorder interface {
	Record(event models.ActivityEvent)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) Record(models.ActivityEvent) {}

// record builds and emits an event with the current timestamp.
func record(r Recorder, action, actor, vpsID, details string) {
	if r == nil {
		return
	}
	r.Record(models.ActivityEvent{
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		VPSID:     vpsID,
		Details:   details,
	})
}
