// Package admin - /admin logs subcommand
package admin

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createLogsCommand creates the /admin logs subcommand
func createLogsCommand() *discord.Command {
	return discord.NewCommand(
		"logs",
		"Muestra la actividad reciente del hosting",
		"admin",
		logsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "cantidad",
			Description: "Número de eventos a mostrar (por defecto 10)",
			Required:    false,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    25,
		},
	).AsAdmin()
}

func logsHandler(ctx *discord.CommandContext) error {
	count := int(ctx.GetIntOption("cantidad"))
	if count <= 0 {
		count = 10
	}

	events := hub.Recent(count)
	if len(events) == 0 {
		return ctx.ReplyEphemeral("📭 No hay actividad registrada todavía.")
	}

	var sb strings.Builder
	for _, ev := range events {
		actor := "`" + ev.Actor + "`"
		if ev.Actor != "" && ev.Actor != "sweeper" {
			actor = "<@" + ev.Actor + ">"
		}
		line := fmt.Sprintf("<t:%d:R> **%s** — %s", ev.Timestamp.Unix(), ev.Action, actor)
		if ev.VPSID != "" {
			line += " — `" + ev.VPSID + "`"
		}
		if ev.Details != "" {
			line += " — " + ev.Details
		}
		sb.WriteString(line + "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Actividad reciente",
		Description: sb.String(),
		Color:       0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ChunkHost VPS",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEphemeralEmbed(embed)
}
