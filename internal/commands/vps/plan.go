// Package vps - /plan command
package vps

import (
	"fmt"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createPlanCommand creates the /plan command
func createPlanCommand() *discord.Command {
	return discord.NewCommand(
		"plan",
		"Muestra el plan estándar y sus precios",
		"vps",
		planHandler,
	)
}

func planHandler(ctx *discord.CommandContext) error {
	embed := &discordgo.MessageEmbed{
		Title: "💾 Plan estándar",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🖥 Recursos",
				Value:  cfg.DefaultSpecString(),
				Inline: false,
			},
			{
				Name:   "💰 Coste de despliegue",
				Value:  fmt.Sprintf("%d puntos", cfg.DeployCost),
				Inline: true,
			},
			{
				Name:   "⏳ Vida inicial",
				Value:  fmt.Sprintf("%d días", cfg.LifetimeDays),
				Inline: true,
			},
			{
				Name: "🔁 Renovación",
				Value: fmt.Sprintf("%d puntos / 15 días o %d puntos / 30 días (según el modo activo: %s días)",
					cfg.RenewCost15, cfg.RenewCost30, access.RenewMode()),
				Inline: false,
			},
			{
				Name:   "🎁 Puntos por invitación",
				Value:  "1 punto por cada usuario nuevo que invites",
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ChunkHost VPS",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEmbed(embed)
}
