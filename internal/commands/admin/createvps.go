// Package admin - /admin create subcommand
package admin

import (
	"context"
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createCreateVPSCommand creates the /admin create subcommand
func createCreateVPSCommand() *discord.Command {
	return discord.NewCommand(
		"create",
		"Crea un VPS gratuito para un usuario, con plan opcional a medida",
		"admin",
		createVPSHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Dueño del nuevo VPS",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "ram",
			Description: "RAM en GB (por defecto, el plan estándar)",
			Required:    false,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "cpu",
			Description: "Núcleos de CPU",
			Required:    false,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "disco",
			Description: "Disco en GB",
			Required:    false,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
	).AsAdmin()
}

func createVPSHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	spec := models.ResourceSpec{
		RAMGB:  cfg.DefaultRAMGB,
		CPU:    cfg.DefaultCPU,
		DiskGB: cfg.DefaultDiskGB,
	}
	custom := false
	if v := int(ctx.GetIntOption("ram")); v > 0 {
		spec.RAMGB = v
		custom = true
	}
	if v := int(ctx.GetIntOption("cpu")); v > 0 {
		spec.CPU = v
		custom = true
	}
	if v := int(ctx.GetIntOption("disco")); v > 0 {
		spec.DiskGB = v
		custom = true
	}

	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		rec, err := registry.Deploy(context.Background(), user.ID, spec, engine.DeployOptions{
			Free:     true,
			PaidPlan: custom,
		})
		if err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}

		ctx.EditReply(fmt.Sprintf(
			"🚀 VPS `%s` creado para <@%s> (%dGB RAM, %d CPU, %dGB disco, puerto %d).",
			rec.ContainerID, user.ID, rec.Spec.RAMGB, rec.Spec.CPU, rec.Spec.DiskGB, rec.HTTPPort,
		))
	}()
	return nil
}
