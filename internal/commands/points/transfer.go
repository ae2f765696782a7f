// Package points - /points share subcommand
package points

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/bwmarrin/discordgo"
)

// createTransferCommand creates the /points share subcommand
func createTransferCommand() *discord.Command {
	return discord.NewCommand(
		"share",
		"Transfiere puntos a otro usuario",
		"points",
		transferHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Destinatario de los puntos",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "cantidad",
			Description: "Cantidad de puntos a transferir",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
	)
}

func transferHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	amount := int(ctx.GetIntOption("cantidad"))

	if err := ledger.Transfer(ctx.User().ID, user.ID, amount, "transferencia entre usuarios"); err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.Reply(fmt.Sprintf(
		"💸 <@%s> transfirió **%d puntos** a <@%s>.",
		ctx.User().ID, amount, user.ID,
	))
}
