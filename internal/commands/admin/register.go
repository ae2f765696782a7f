// Package admin provides the operator commands under /admin.
// Every subcommand requires hosting-admin rights.
package admin

import (
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/config"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/notify"
	"github.com/bwmarrin/discordgo"
)

var (
	registry *engine.Registry
	access   *engine.AccessPolicy
	hub      *notify.Hub
	cfg      *config.Config
)

// RegisterAdminCommands registers the /admin command group
func RegisterAdminCommands(client *discord.ExtendedClient, reg *engine.Registry, acc *engine.AccessPolicy, h *notify.Hub, c *config.Config) {
	registry = reg
	access = acc
	hub = h
	cfg = c

	// Build the /admin command group with all subcommands
	adminGroup := client.CommandHandler.BuildCommandGroup(
		"admin",
		"Comandos de administración del hosting",
		createAddCommand(),
		createRemoveCommand(),
		createListCommand(),
		createLogChannelCommand(),
		createRenewModeCommand(),
		createSuspendCommand(),
		createUnsuspendCommand(),
		createListAllCommand(),
		createCreateVPSCommand(),
		createMassPortCommand(),
		createLogsCommand(),
	)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(adminGroup)
}

// idOption is the container id option shared by several subcommands
func idOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "id",
		Description: "ID del contenedor",
		Required:    true,
	}
}
