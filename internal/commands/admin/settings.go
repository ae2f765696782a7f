// Package admin - /admin logchannel and /admin renewmode subcommands
package admin

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/bwmarrin/discordgo"
)

// createLogChannelCommand creates the /admin logchannel subcommand
func createLogChannelCommand() *discord.Command {
	return discord.NewCommand(
		"logchannel",
		"Define el canal donde se publica la actividad del hosting",
		"admin",
		logChannelHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal",
			Description: "Canal de logs de actividad",
			Required:    true,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
	).AsAdmin()
}

func logChannelHandler(ctx *discord.CommandContext) error {
	channel := ctx.GetChannelOption("canal")
	if channel == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un canal.")
	}

	if err := access.SetLogChannel(channel.ID); err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.Reply(fmt.Sprintf("📝 La actividad del hosting se publicará en <#%s>.", channel.ID))
}

// createRenewModeCommand creates the /admin renewmode subcommand
func createRenewModeCommand() *discord.Command {
	return discord.NewCommand(
		"renewmode",
		"Cambia el modo de renovación global (15 o 30 días)",
		"admin",
		renewModeHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "modo",
			Description: "Duración de cada renovación",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "15 días", Value: "15"},
				{Name: "30 días", Value: "30"},
			},
		},
	).AsAdmin()
}

func renewModeHandler(ctx *discord.CommandContext) error {
	mode := ctx.GetStringOption("modo")

	if err := access.SetRenewMode(mode); err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	cost := cfg.RenewCost15
	if mode == "30" {
		cost = cfg.RenewCost30
	}

	return ctx.Reply(fmt.Sprintf("🔁 Modo de renovación global: **%s días** por **%d puntos**.", mode, cost))
}
