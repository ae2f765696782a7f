// Package vps - /vps list subcommand
package vps

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createListCommand creates the /vps list subcommand
func createListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Lista tus VPS y los compartidos contigo",
		"vps",
		listHandler,
	)
}

func listHandler(ctx *discord.CommandContext) error {
	records := registry.ListByOwner(ctx.User().ID)
	if len(records) == 0 {
		return ctx.ReplyEphemeral("📭 No tienes ningún VPS. Crea uno con `/deploy`.")
	}

	var sb strings.Builder
	for _, rec := range records {
		state := "🟢"
		if rec.Suspended {
			state = "🔴"
		} else if !rec.Active {
			state = "🟡"
		}

		shared := ""
		if rec.Owner != ctx.User().ID {
			shared = " (compartido)"
		}

		sb.WriteString(fmt.Sprintf(
			"%s `%s`%s — %s:%d — expira <t:%d:R>\n",
			state, rec.ContainerID, shared, cfg.ServerIP, rec.HTTPPort, rec.ExpiresAt.Unix(),
		))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📋 Tus VPS (%d)", len(records)),
		Description: sb.String(),
		Color:       0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ChunkHost VPS",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEphemeralEmbed(embed)
}
