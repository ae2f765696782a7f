// Package vps - /deploy command
package vps

import (
	"context"
	"fmt"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createDeployCommand creates the /deploy command
func createDeployCommand() *discord.Command {
	return discord.NewCommand(
		"deploy",
		"Crea un nuevo VPS con el plan estándar",
		"vps",
		deployHandler,
	)
}

// deployHandler handles the /deploy command. Provisioning takes a while, so
// the response is deferred and the work runs in the background.
func deployHandler(ctx *discord.CommandContext) error {
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		spec := models.ResourceSpec{
			RAMGB:  cfg.DefaultRAMGB,
			CPU:    cfg.DefaultCPU,
			DiskGB: cfg.DefaultDiskGB,
		}

		rec, err := registry.Deploy(context.Background(), ctx.User().ID, spec, engine.DeployOptions{})
		if err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}

		ctx.EditReplyEmbed(vpsEmbed("🚀 VPS creado", rec))
	}()
	return nil
}

// vpsEmbed renders the connection details of a VPS
func vpsEmbed(title string, rec *models.VPSRecord) *discordgo.MessageEmbed {
	ssh := rec.SSH
	if ssh == "" {
		ssh = "No disponible (usa `/vps resetssh`)"
	} else {
		ssh = "```" + ssh + "```"
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Color: 0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "🆔 ID",
				Value:  "`" + rec.ContainerID + "`",
				Inline: true,
			},
			{
				Name:   "💾 Plan",
				Value:  fmt.Sprintf("%dGB RAM, %d CPU, %dGB Disco", rec.Spec.RAMGB, rec.Spec.CPU, rec.Spec.DiskGB),
				Inline: true,
			},
			{
				Name:   "🌐 Dirección",
				Value:  fmt.Sprintf("%s:%d", cfg.ServerIP, rec.HTTPPort),
				Inline: true,
			},
			{
				Name:  "🔑 SSH",
				Value: ssh,
			},
			{
				Name:   "⏳ Expira",
				Value:  fmt.Sprintf("<t:%d:R>", rec.ExpiresAt.Unix()),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ChunkHost VPS",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
