// Package vps - /vps port subcommand
package vps

import (
	"context"
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createPortCommand creates the /vps port subcommand
func createPortCommand() *discord.Command {
	return discord.NewCommand(
		"port",
		"Reserva un puerto adicional para tu VPS",
		"vps",
		portHandler,
	).WithOptions(
		idOption(),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "puerto",
			Description: "Puerto del host a reservar (3000-3999)",
			Required:    true,
		},
	)
}

func portHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	port := int(ctx.GetIntOption("puerto"))

	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		if err := registry.AddPort(context.Background(), id, ctx.User().ID, port); err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReply(fmt.Sprintf("🔌 Puerto **%d** reservado para el VPS `%s`.", port, id))
	}()
	return nil
}
