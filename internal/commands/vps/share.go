// Package vps - /vps share and /vps unshare subcommands
package vps

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/bwmarrin/discordgo"
)

// userOption is the grantee option shared by share/unshare
func userOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "usuario",
		Description: "Usuario con quien compartir el acceso",
		Required:    true,
	}
}

// createShareCommand creates the /vps share subcommand
func createShareCommand() *discord.Command {
	return discord.NewCommand(
		"share",
		"Comparte el control de tu VPS con otro usuario",
		"vps",
		shareHandler,
	).WithOptions(idOption(), userOption())
}

func shareHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	if err := registry.Share(id, ctx.User().ID, user.ID); err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.ReplyEphemeral(fmt.Sprintf("🤝 **%s** ahora puede gestionar el VPS `%s`.", user.Username, id))
}

// createUnshareCommand creates the /vps unshare subcommand
func createUnshareCommand() *discord.Command {
	return discord.NewCommand(
		"unshare",
		"Revoca el acceso compartido de un usuario a tu VPS",
		"vps",
		unshareHandler,
	).WithOptions(idOption(), userOption())
}

func unshareHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	if err := registry.Unshare(id, ctx.User().ID, user.ID); err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.ReplyEphemeral(fmt.Sprintf("🚫 **%s** ya no puede gestionar el VPS `%s`.", user.Username, id))
}
