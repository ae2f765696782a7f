// Package utils - /utils status subcommand
package utils

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del hosting",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		stats := registry.Stats()

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado de ChunkHost VPS**\n"+
				"• Bot: 🟢 Online\n"+
				"• VPS totales: %d\n"+
				"• VPS activos: %d\n"+
				"• VPS suspendidos: %d\n"+
				"• Recursos asignados: %dGB RAM / %d CPU / %dGB disco\n"+
				"• Servidores: %d",
			stats.Total,
			stats.Active,
			stats.Suspended,
			stats.TotalRAMGB,
			stats.TotalCPU,
			stats.TotalDiskGB,
			ctx.Client.GuildCount(),
		))
	}()
	return nil
}
