// Package events provides a registry for organizing bot events.
// Events are organized by category (ready, member, guild, ...)
package events

import (
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
)

var tracker *engine.InviteTracker

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient, t *engine.InviteTracker) {
	tracker = t

	logger.System("📋 Registrando eventos del bot...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Member events (joins feed the invite tracker)
	RegisterMemberEvents(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
