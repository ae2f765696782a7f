// Package events provides event handlers for guild events
package events

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildCreate)
	client.Session.AddHandler(onGuildDelete)
	client.Session.AddHandler(onInviteCreate)
	client.Session.AddHandler(onInviteDelete)
}

// onGuildCreate is called when the bot joins a guild (or on startup)
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	logger.Info(fmt.Sprintf("🏠 Guild disponible: %s (%s)", g.Name, g.ID), "Guild")

	// Seed the invite baseline for guilds that appear after startup
	syncGuildInvites(s, g.ID)
}

// onGuildDelete is called when the bot leaves a guild
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	logger.Info("👋 El bot salió del servidor "+g.ID, "Guild")
}

// onInviteCreate keeps the baseline fresh when someone creates an invite
func onInviteCreate(s *discordgo.Session, i *discordgo.InviteCreate) {
	syncGuildInvites(s, i.GuildID)
}

// onInviteDelete keeps the baseline fresh when an invite is revoked
func onInviteDelete(s *discordgo.Session, i *discordgo.InviteDelete) {
	syncGuildInvites(s, i.GuildID)
}
