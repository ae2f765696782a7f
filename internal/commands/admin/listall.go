// Package admin - /admin listall subcommand
package admin

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createListAllCommand creates the /admin listall subcommand
func createListAllCommand() *discord.Command {
	return discord.NewCommand(
		"listall",
		"Lista todos los VPS del sistema",
		"admin",
		listAllHandler,
	).AsAdmin()
}

func listAllHandler(ctx *discord.CommandContext) error {
	records := registry.ListAll()
	stats := registry.Stats()

	if len(records) == 0 {
		return ctx.ReplyEphemeral("📭 No hay ningún VPS registrado.")
	}

	var sb strings.Builder
	shown := 0
	for _, rec := range records {
		if shown >= 25 {
			sb.WriteString(fmt.Sprintf("… y %d más\n", len(records)-shown))
			break
		}

		state := "🟢"
		if rec.Suspended {
			state = "🔴"
		} else if !rec.Active {
			state = "🟡"
		}

		tag := ""
		if rec.GiveawayGrant {
			tag = " 🎁"
		}

		sb.WriteString(fmt.Sprintf(
			"%s `%s`%s — <@%s> — puerto %d — expira <t:%d:R>\n",
			state, rec.ContainerID, tag, rec.Owner, rec.HTTPPort, rec.ExpiresAt.Unix(),
		))
		shown++
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🗄️ VPS del sistema (%d)", stats.Total),
		Description: sb.String(),
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🟢 Activos",
				Value:  fmt.Sprintf("%d", stats.Active),
				Inline: true,
			},
			{
				Name:   "🔴 Suspendidos",
				Value:  fmt.Sprintf("%d", stats.Suspended),
				Inline: true,
			},
			{
				Name:   "🎁 De sorteos",
				Value:  fmt.Sprintf("%d", stats.Giveaway),
				Inline: true,
			},
			{
				Name:   "📊 Recursos asignados",
				Value:  fmt.Sprintf("%dGB RAM / %d CPU / %dGB disco", stats.TotalRAMGB, stats.TotalCPU, stats.TotalDiskGB),
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ChunkHost VPS",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEphemeralEmbed(embed)
}
