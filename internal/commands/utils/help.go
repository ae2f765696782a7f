// Package utils - /utils help subcommand
package utils

import (
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **Ayuda de ChunkHost VPS**\n\n" +
				"**VPS:**\n" +
				"• `/deploy` - Crea un VPS con el plan estándar\n" +
				"• `/plan` - Muestra el plan y sus precios\n" +
				"• `/vps list` - Lista tus VPS\n" +
				"• `/vps start|stop|restart <id>` - Controla tu VPS\n" +
				"• `/vps renew <id>` - Renueva y extiende la vida\n" +
				"• `/vps reinstall <id>` - Reinstala desde cero\n" +
				"• `/vps timeleft <id>` - Tiempo de vida restante\n" +
				"• `/vps resetssh <id>` - Nueva sesión SSH\n" +
				"• `/vps port <id> <puerto>` - Reserva un puerto extra\n" +
				"• `/vps share|unshare <id> <usuario>` - Acceso compartido\n" +
				"• `/vps remove <id>` - Elimina el VPS\n\n" +
				"**Puntos:**\n" +
				"• `/points bal` - Tu saldo\n" +
				"• `/points claim` - Reclama puntos por invitaciones\n" +
				"• `/points share <usuario> <cantidad>` - Transfiere puntos\n" +
				"• `/points top` - Ranking\n" +
				"• `/points inv` - Tus invitaciones\n\n" +
				"**Sorteos:**\n" +
				"• `/giveaway list` - Sorteos activos\n" +
				"• `/giveaway join <id>` - Participa",
		)
	}()
	return nil
}
