// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (vps, points, admin, ...)
package commands

import (
	"github.com/ChunkHostStudios/ChunkHostGo/internal/commands/admin"
	"github.com/ChunkHostStudios/ChunkHostGo/internal/commands/giveaway"
	"github.com/ChunkHostStudios/ChunkHostGo/internal/commands/points"
	"github.com/ChunkHostStudios/ChunkHostGo/internal/commands/utils"
	"github.com/ChunkHostStudios/ChunkHostGo/internal/commands/vps"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/config"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/notify"
)

// Deps carries the engine components the commands operate on.
type Deps struct {
	Registry  *engine.Registry
	Ledger    *engine.Ledger
	Access    *engine.AccessPolicy
	Tracker   *engine.InviteTracker
	Giveaways *engine.Giveaways
	Hub       *notify.Hub
	Config    *config.Config
}

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient, deps Deps) {
	// VPS lifecycle (/deploy, /plan, /vps ...)
	vps.RegisterVPSCommands(client, deps.Registry, deps.Access, deps.Config)

	// Points economy (/points ...)
	points.RegisterPointCommands(client, deps.Ledger, deps.Tracker)

	// Giveaways (/giveaway ...)
	giveaway.RegisterGiveawayCommands(client, deps.Giveaways, deps.Config)

	// Operator commands (/admin ...)
	admin.RegisterAdminCommands(client, deps.Registry, deps.Access, deps.Hub, deps.Config)

	// Utility commands (/utils ...)
	utils.RegisterUtilsCommands(client, deps.Registry)
}
