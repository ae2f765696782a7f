// Package admin - /admin add, /admin remove and /admin list subcommands
package admin

import (
	"fmt"
	"strings"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/bwmarrin/discordgo"
)

func adminUserOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "usuario",
		Description: "Usuario objetivo",
		Required:    true,
	}
}

// createAddCommand creates the /admin add subcommand
func createAddCommand() *discord.Command {
	return discord.NewCommand(
		"add",
		"Concede permisos de administrador del hosting",
		"admin",
		addHandler,
	).WithOptions(adminUserOption()).AsAdmin()
}

func addHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	if err := access.Grant(user.ID); err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.Reply(fmt.Sprintf("🛡️ <@%s> ahora es administrador del hosting.", user.ID))
}

// createRemoveCommand creates the /admin remove subcommand
func createRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Revoca permisos de administrador del hosting",
		"admin",
		removeHandler,
	).WithOptions(adminUserOption()).AsAdmin()
}

func removeHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	if err := access.Revoke(user.ID); err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.Reply(fmt.Sprintf("🚫 <@%s> ya no es administrador del hosting.", user.ID))
}

// createListCommand creates the /admin list subcommand
func createListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Lista los administradores del hosting",
		"admin",
		listHandler,
	).AsAdmin()
}

func listHandler(ctx *discord.CommandContext) error {
	admins := access.Admins()
	if len(admins) == 0 {
		return ctx.ReplyEphemeral("📭 No hay administradores configurados.")
	}

	var sb strings.Builder
	for _, id := range admins {
		sb.WriteString("• <@" + id + ">\n")
	}

	return ctx.ReplyEphemeral("🛡️ **Administradores del hosting:**\n" + sb.String())
}
