package notify

import (
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/mqtt"
)

// eventsTopic carries every engine activity event for external consumers.
const eventsTopic = "chunkhost/events"

// MQTTSink publishes activity events to the broker. Publish failures are
// already logged by the communicator; events are fire-and-forget here.
type MQTTSink struct {
	comm *mqtt.MqttCommunicator
}

// NewMQTTSink wraps an existing communicator.
func NewMQTTSink(comm *mqtt.MqttCommunicator) *MQTTSink {
	return &MQTTSink{comm: comm}
}

// Emit implements Sink.
func (m *MQTTSink) Emit(event models.ActivityEvent) {
	if m.comm == nil || !m.comm.IsConnected() {
		return
	}
	_ = m.comm.Publish(eventsTopic, event)
}
