// Package admin - /admin massport subcommand
package admin

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createMassPortCommand creates the /admin massport subcommand
func createMassPortCommand() *discord.Command {
	return discord.NewCommand(
		"massport",
		"Agrega un puerto a todos los VPS del sistema",
		"admin",
		massPortHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "puerto",
			Description: "Puerto a registrar en cada VPS",
			Required:    true,
			MinValue: func() *float64 {
				v := 1.0
				return &v
			}(),
			MaxValue: 65535,
		},
	).AsAdmin()
}

func massPortHandler(ctx *discord.CommandContext) error {
	port := int(ctx.GetIntOption("puerto"))
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		updated, skipped, err := registry.MassAddPort(ctx.User().ID, port)
		if err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReply(fmt.Sprintf(
			"🔌 Puerto `%d` agregado a %d VPS (%d ya lo tenían).",
			port, updated, skipped,
		))
	}()
	return nil
}
