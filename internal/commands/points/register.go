// Package points provides the points-economy commands under /points.
// Each subcommand is in its own file.
package points

import (
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
)

var (
	ledger  *engine.Ledger
	tracker *engine.InviteTracker
)

// RegisterPointCommands registers the /points command group
func RegisterPointCommands(client *discord.ExtendedClient, l *engine.Ledger, t *engine.InviteTracker) {
	ledger = l
	tracker = t

	// Build the /points command group with all subcommands
	pointsGroup := client.CommandHandler.BuildCommandGroup(
		"points",
		"Economía de puntos del hosting",
		createBalanceCommand(),
		createClaimCommand(),
		createTransferCommand(),
		createTopCommand(),
		createInvitesCommand(),
		createGiveCommand(),
		createRemoveCommand(),
		createListAllCommand(),
	)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(pointsGroup)
}
