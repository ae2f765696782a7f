// Package giveaway - /giveaway create subcommand
package giveaway

import (
	"fmt"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createCreateCommand creates the /giveaway create subcommand (admin)
func createCreateCommand() *discord.Command {
	return discord.NewCommand(
		"create",
		"Crea un sorteo de VPS (admin)",
		"giveaway",
		createHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "descripcion",
			Description: "Descripción del sorteo",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "horas",
			Description: "Duración del sorteo en horas",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "ganadores",
			Description: "Cómo se eligen los ganadores",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Un ganador al azar", Value: string(models.WinnerSingleRandom)},
				{Name: "Todos los participantes", Value: string(models.WinnerAllParticipants)},
			},
		},
	).AsAdmin()
}

func createHandler(ctx *discord.CommandContext) error {
	description := ctx.GetStringOption("descripcion")
	hours := ctx.GetIntOption("horas")
	policy := models.WinnerPolicy(ctx.GetStringOption("ganadores"))

	spec := models.ResourceSpec{
		RAMGB:  cfg.DefaultRAMGB,
		CPU:    cfg.DefaultCPU,
		DiskGB: cfg.DefaultDiskGB,
	}

	ga, err := giveaways.Create(ctx.User().ID, description, spec, policy, time.Duration(hours)*time.Hour)
	if err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎉 ¡Nuevo sorteo de VPS!",
		Description: ga.Description,
		Color:       0xe91e63,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🎁 Premio",
				Value:  fmt.Sprintf("VPS de %dGB RAM, %d CPU, %dGB disco", spec.RAMGB, spec.CPU, spec.DiskGB),
				Inline: false,
			},
			{
				Name:   "⏰ Termina",
				Value:  fmt.Sprintf("<t:%d:R>", ga.EndTime.Unix()),
				Inline: true,
			},
			{
				Name:   "🆔 ID",
				Value:  "`" + ga.ID + "`",
				Inline: true,
			},
			{
				Name:   "✅ Cómo participar",
				Value:  fmt.Sprintf("Usa `/giveaway join id:%s`", ga.ID),
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
