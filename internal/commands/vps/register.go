// Package vps provides the VPS lifecycle commands: /deploy, /plan and the
// /vps management group. Each subcommand is in its own file.
package vps

import (
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/config"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/bwmarrin/discordgo"
)

var (
	registry *engine.Registry
	access   *engine.AccessPolicy
	cfg      *config.Config
)

// RegisterVPSCommands registers /deploy, /plan and the /vps command group
func RegisterVPSCommands(client *discord.ExtendedClient, reg *engine.Registry, acc *engine.AccessPolicy, c *config.Config) {
	registry = reg
	access = acc
	cfg = c

	client.CommandHandler.RegisterCommand(createDeployCommand())
	client.CommandHandler.RegisterCommand(createPlanCommand())

	// Build the /vps command group with all subcommands
	vpsGroup := client.CommandHandler.BuildCommandGroup(
		"vps",
		"Gestión de tus servidores VPS",
		createListCommand(),
		createStartCommand(),
		createStopCommand(),
		createRestartCommand(),
		createRenewCommand(),
		createReinstallCommand(),
		createTimeLeftCommand(),
		createResetSSHCommand(),
		createRemoveCommand(),
		createPortCommand(),
		createShareCommand(),
		createUnshareCommand(),
	)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(vpsGroup)
}

// idOption is the container id option shared by every management subcommand
func idOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "id",
		Description: "ID del contenedor",
		Required:    true,
	}
}
