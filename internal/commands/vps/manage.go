// Package vps - lifecycle subcommands of the /vps group
package vps

import (
	"context"
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
)

// createStartCommand creates the /vps start subcommand
func createStartCommand() *discord.Command {
	return discord.NewCommand(
		"start",
		"Enciende tu VPS",
		"vps",
		startHandler,
	).WithOptions(idOption())
}

func startHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		if err := registry.Start(context.Background(), id, ctx.User().ID); err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReply("▶️ VPS iniciado correctamente.")
	}()
	return nil
}

// createStopCommand creates the /vps stop subcommand
func createStopCommand() *discord.Command {
	return discord.NewCommand(
		"stop",
		"Apaga tu VPS",
		"vps",
		stopHandler,
	).WithOptions(idOption())
}

func stopHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		if err := registry.Stop(context.Background(), id, ctx.User().ID); err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReply("⏹️ VPS apagado correctamente.")
	}()
	return nil
}

// createRestartCommand creates the /vps restart subcommand
func createRestartCommand() *discord.Command {
	return discord.NewCommand(
		"restart",
		"Reinicia tu VPS",
		"vps",
		restartHandler,
	).WithOptions(idOption())
}

func restartHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		if err := registry.Restart(context.Background(), id, ctx.User().ID); err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReply("🔄 VPS reiniciado correctamente.")
	}()
	return nil
}

// createRenewCommand creates the /vps renew subcommand
func createRenewCommand() *discord.Command {
	return discord.NewCommand(
		"renew",
		"Renueva tu VPS y extiende su vida",
		"vps",
		renewHandler,
	).WithOptions(idOption())
}

func renewHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		if err := registry.Renew(context.Background(), id, ctx.User().ID); err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}

		rec, err := registry.Get(id)
		if err != nil {
			ctx.EditReply("✅ VPS renovado.")
			return
		}
		ctx.EditReply(fmt.Sprintf("✅ VPS renovado. Ahora expira <t:%d:R>.", rec.ExpiresAt.Unix()))
	}()
	return nil
}

// createReinstallCommand creates the /vps reinstall subcommand
func createReinstallCommand() *discord.Command {
	return discord.NewCommand(
		"reinstall",
		"Reinstala tu VPS desde cero (conserva la fecha de expiración)",
		"vps",
		reinstallHandler,
	).WithOptions(idOption())
}

func reinstallHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		rec, err := registry.Reinstall(context.Background(), id, ctx.User().ID)
		if err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReplyEmbed(vpsEmbed("🔧 VPS reinstalado", rec))
	}()
	return nil
}

// createTimeLeftCommand creates the /vps timeleft subcommand
func createTimeLeftCommand() *discord.Command {
	return discord.NewCommand(
		"timeleft",
		"Muestra cuánto le queda de vida a tu VPS",
		"vps",
		timeLeftHandler,
	).WithOptions(idOption())
}

func timeLeftHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")

	rec, err := registry.Authorize(ctx.User().ID, id)
	if err != nil {
		return ctx.ReplyEphemeral("❌ " + engine.UserMessage(err))
	}

	state := "🟢 Activo"
	if rec.Suspended {
		state = "🔴 Suspendido (renuévalo para reactivarlo)"
	} else if !rec.Active {
		state = "🟡 Apagado"
	}

	return ctx.ReplyEphemeral(fmt.Sprintf(
		"⏳ El VPS `%s` expira <t:%d:R> (<t:%d:F>).\nEstado: %s",
		rec.ContainerID, rec.ExpiresAt.Unix(), rec.ExpiresAt.Unix(), state,
	))
}

// createResetSSHCommand creates the /vps resetssh subcommand
func createResetSSHCommand() *discord.Command {
	return discord.NewCommand(
		"resetssh",
		"Genera una nueva sesión SSH para tu VPS",
		"vps",
		resetSSHHandler,
	).WithOptions(idOption())
}

func resetSSHHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		ssh, err := registry.ResetSSH(context.Background(), id, ctx.User().ID)
		if err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReply("🔑 Nueva sesión SSH:\n```" + ssh + "```")
	}()
	return nil
}

// createRemoveCommand creates the /vps remove subcommand
func createRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Elimina tu VPS definitivamente",
		"vps",
		removeHandler,
	).WithOptions(idOption())
}

func removeHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		actor := ctx.User().ID

		// Read the record first to know whether a refund applies
		rec, err := registry.Authorize(actor, id)
		if err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}

		if err := registry.Destroy(context.Background(), id, actor); err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}

		msg := "🗑️ VPS eliminado."
		if !rec.GiveawayGrant && !access.IsAdmin(actor) {
			msg += fmt.Sprintf(" Se reembolsaron **%d puntos** a su dueño.", cfg.DeployCost/2)
		}
		ctx.EditReply(msg)
	}()
	return nil
}
