// Package points - /points top and /points inv subcommands
package points

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createTopCommand creates the /points top subcommand
func createTopCommand() *discord.Command {
	return discord.NewCommand(
		"top",
		"Ranking de usuarios con más puntos",
		"points",
		topHandler,
	)
}

func topHandler(ctx *discord.CommandContext) error {
	top := ledger.Top(10)
	if len(top) == 0 {
		return ctx.ReplyEphemeral("📭 Todavía no hay usuarios con puntos.")
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var sb strings.Builder
	for i, acc := range top {
		marker := fmt.Sprintf("`#%d`", i+1)
		if i < len(medals) {
			marker = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s <@%s> — **%d puntos**\n", marker, acc.UserID, acc.Points))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Top de puntos",
		Description: sb.String(),
		Color:       0xf1c40f,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ChunkHost VPS",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEmbed(embed)
}

// createInvitesCommand creates the /points inv subcommand
func createInvitesCommand() *discord.Command {
	return discord.NewCommand(
		"inv",
		"Muestra tus invitaciones acumuladas",
		"points",
		invitesHandler,
	)
}

func invitesHandler(ctx *discord.CommandContext) error {
	unclaimed, total := tracker.Referrals(ctx.User().ID)
	return ctx.ReplyEphemeral(fmt.Sprintf(
		"📨 Has invitado a **%d** usuarios en total.\nSin reclamar: **%d** (usa `/points claim` para convertirlas en puntos).",
		total, unclaimed,
	))
}
