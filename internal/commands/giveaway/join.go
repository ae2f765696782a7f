// Package giveaway - /giveaway join and /giveaway list subcommands
package giveaway

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/bwmarrin/discordgo"
)

// createJoinCommand creates the /giveaway join subcommand
func createJoinCommand() *discord.Command {
	return discord.NewCommand(
		"join",
		"Participa en un sorteo",
		"giveaway",
		joinHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: "ID del sorteo",
			Required:    true,
		},
	)
}

func joinHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")

	if err := giveaways.Join(id, ctx.User().ID); err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.ReplyEphemeral("🎟️ ¡Estás participando en el sorteo! Mucha suerte.")
}

// createListCommand creates the /giveaway list subcommand
func createListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Lista los sorteos activos",
		"giveaway",
		listHandler,
	)
}

func listHandler(ctx *discord.CommandContext) error {
	active := giveaways.Active()
	ended := giveaways.Ended(5)
	if len(active) == 0 && len(ended) == 0 {
		return ctx.ReplyEphemeral("📭 No hay sorteos activos ahora mismo.")
	}

	var sb strings.Builder
	for _, ga := range active {
		sb.WriteString(fmt.Sprintf(
			"🎉 `%s` — %s — %d participantes — termina <t:%d:R>\n",
			ga.ID, ga.Description, len(ga.Participants), ga.EndTime.Unix(),
		))
	}

	if len(ended) > 0 {
		sb.WriteString("\n**Terminados recientemente**\n")
		for _, ga := range ended {
			switch {
			case ga.NoParticipants:
				sb.WriteString(fmt.Sprintf("🏁 `%s` — %s — sin participantes\n", ga.ID, ga.Description))
			case ga.WinnerID != "":
				sb.WriteString(fmt.Sprintf("🏆 `%s` — %s — ganador <@%s>\n", ga.ID, ga.Description, ga.WinnerID))
			default:
				sb.WriteString(fmt.Sprintf("🏆 `%s` — %s — %d VPS entregados\n", ga.ID, ga.Description, ga.SuccessfulCreations))
			}
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎁 Sorteos activos (%d)", len(active)),
		Description: sb.String(),
		Color:       0xe91e63,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ChunkHost VPS",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEmbed(embed)
}
