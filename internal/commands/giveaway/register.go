// Package giveaway provides the VPS giveaway commands under /giveaway.
package giveaway

import (
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/config"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
)

var (
	giveaways *engine.Giveaways
	cfg       *config.Config
)

// RegisterGiveawayCommands registers the /giveaway command group
func RegisterGiveawayCommands(client *discord.ExtendedClient, g *engine.Giveaways, c *config.Config) {
	giveaways = g
	cfg = c

	// Build the /giveaway command group with all subcommands
	giveawayGroup := client.CommandHandler.BuildCommandGroup(
		"giveaway",
		"Sorteos de VPS",
		createCreateCommand(),
		createListCommand(),
		createJoinCommand(),
	)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(giveawayGroup)
}
