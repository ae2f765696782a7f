// Package admin - /admin suspend and /admin unsuspend subcommands
package admin

import (
	"context"
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/engine"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/errors"
)

// createSuspendCommand creates the /admin suspend subcommand
func createSuspendCommand() *discord.Command {
	return discord.NewCommand(
		"suspend",
		"Suspende un VPS manualmente",
		"admin",
		suspendHandler,
	).WithOptions(idOption()).AsAdmin()
}

func suspendHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		if err := registry.Suspend(context.Background(), id, ctx.User().ID); err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReply(fmt.Sprintf("⛔ VPS `%s` suspendido.", id))
	}()
	return nil
}

// createUnsuspendCommand creates the /admin unsuspend subcommand
func createUnsuspendCommand() *discord.Command {
	return discord.NewCommand(
		"unsuspend",
		"Levanta la suspensión de un VPS",
		"admin",
		unsuspendHandler,
	).WithOptions(idOption()).AsAdmin()
}

func unsuspendHandler(ctx *discord.CommandContext) error {
	id := ctx.GetStringOption("id")
	if err := ctx.DeferEphemeral(); err != nil {
		return err
	}

	go func() {
		defer errors.RecoverMiddleware()()

		if err := registry.Unsuspend(context.Background(), id, ctx.User().ID); err != nil {
			ctx.EditReply("❌ " + engine.UserMessage(err))
			return
		}
		ctx.EditReply(fmt.Sprintf("✅ VPS `%s` reactivado.", id))
	}()
	return nil
}
