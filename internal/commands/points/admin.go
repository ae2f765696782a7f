// Package points - admin subcommands: /points give, /points remove, /points listall
package points

import (
	"fmt"
	"strings"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/bwmarrin/discordgo"
)

func adjustOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario cuyo saldo se ajusta",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "cantidad",
			Description: "Cantidad de puntos",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
		},
	}
}

// createGiveCommand creates the /points give subcommand (admin)
func createGiveCommand() *discord.Command {
	return discord.NewCommand(
		"give",
		"Regala puntos a un usuario (admin)",
		"points",
		giveHandler,
	).WithOptions(adjustOptions()...).AsAdmin()
}

func giveHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	amount := int(ctx.GetIntOption("cantidad"))

	balance, err := ledger.AdminAdjust(user.ID, amount, "ajuste de admin "+ctx.User().ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.Reply(fmt.Sprintf("✅ Se añadieron **%d puntos** a <@%s>. Saldo actual: **%d**.", amount, user.ID, balance))
}

// createRemoveCommand creates the /points remove subcommand (admin)
func createRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Retira puntos a un usuario (admin)",
		"points",
		removeHandler,
	).WithOptions(adjustOptions()...).AsAdmin()
}

func removeHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	amount := int(ctx.GetIntOption("cantidad"))

	balance, err := ledger.AdminAdjust(user.ID, -amount, "ajuste de admin "+ctx.User().ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	return ctx.Reply(fmt.Sprintf("✅ Se retiraron **%d puntos** a <@%s>. Saldo actual: **%d**.", amount, user.ID, balance))
}

// createListAllCommand creates the /points listall subcommand (admin)
func createListAllCommand() *discord.Command {
	return discord.NewCommand(
		"listall",
		"Lista el saldo de todos los usuarios (admin)",
		"points",
		listAllHandler,
	).AsAdmin()
}

func listAllHandler(ctx *discord.CommandContext) error {
	accounts := ledger.AllAccounts()
	if len(accounts) == 0 {
		return ctx.ReplyEphemeral("📭 No hay cuentas registradas.")
	}

	var sb strings.Builder
	shown := 0
	for _, acc := range accounts {
		if shown >= 25 {
			sb.WriteString(fmt.Sprintf("… y %d más\n", len(accounts)-shown))
			break
		}
		sb.WriteString(fmt.Sprintf("<@%s> — %d puntos (%d invitaciones)\n", acc.UserID, acc.Points, acc.TotalReferrals))
		shown++
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📒 Cuentas (%d)", len(accounts)),
		Description: sb.String(),
		Color:       0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ChunkHost VPS",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEphemeralEmbed(embed)
}
