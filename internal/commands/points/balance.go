// Package points - /points bal and /points claim subcommands
package points

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
)

// createBalanceCommand creates the /points bal subcommand
func createBalanceCommand() *discord.Command {
	return discord.NewCommand(
		"bal",
		"Muestra tu saldo de puntos",
		"points",
		balanceHandler,
	)
}

func balanceHandler(ctx *discord.CommandContext) error {
	acc := ledger.Account(ctx.User().ID)
	return ctx.ReplyEphemeral(fmt.Sprintf(
		"💰 Tienes **%d puntos**.\n📨 Invitaciones sin reclamar: **%d** (usa `/points claim`).",
		acc.Points, acc.UnclaimedReferrals,
	))
}

// createClaimCommand creates the /points claim subcommand
func createClaimCommand() *discord.Command {
	return discord.NewCommand(
		"claim",
		"Convierte tus invitaciones pendientes en puntos",
		"points",
		claimHandler,
	)
}

func claimHandler(ctx *discord.CommandContext) error {
	claimed, err := ledger.ClaimPoints(ctx.User().ID)
	if err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	if claimed == 0 {
		return ctx.ReplyEphemeral("📭 No tienes invitaciones pendientes de reclamar.")
	}

	return ctx.ReplyEphemeral(fmt.Sprintf(
		"🎉 Has reclamado **%d puntos** por tus invitaciones. Saldo actual: **%d**.",
		claimed, ledger.Balance(ctx.User().ID),
	))
}
