// Package events provides event handlers for member events.
// Joins feed the invite tracker, which credits referral points.
package events

import (
	"fmt"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/discord"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberAdd)
	client.Session.AddHandler(onGuildMemberRemove)
}

// fetchInvites reads the guild's current invite usage into a snapshot
func fetchInvites(s *discordgo.Session, guildID string) (models.InviteSnapshot, error) {
	invites, err := s.GuildInvites(guildID)
	if err != nil {
		return nil, err
	}

	snap := make(models.InviteSnapshot, len(invites))
	for _, inv := range invites {
		inviterID := ""
		if inv.Inviter != nil {
			inviterID = inv.Inviter.ID
		}
		snap[inv.Code] = models.InviteUse{
			Uses:      inv.Uses,
			InviterID: inviterID,
		}
	}
	return snap, nil
}

// syncGuildInvites overwrites the stored invite baseline for the guild
func syncGuildInvites(s *discordgo.Session, guildID string) {
	snap, err := fetchInvites(s, guildID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudieron leer las invitaciones del servidor %s: %v", guildID, err), "Member")
		return
	}
	if err := tracker.SyncSnapshot(guildID, snap); err != nil {
		logger.Error(fmt.Sprintf("Error guardando snapshot de invitaciones: %v", err), "Member")
	}
}

// onGuildMemberAdd is called when a new member joins the server
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Info(fmt.Sprintf("👋 Nuevo miembro: %s en servidor %s", m.User.Username, m.GuildID), "Member")

	if m.User.Bot {
		return
	}

	current, err := fetchInvites(s, m.GuildID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudieron leer las invitaciones del servidor %s: %v", m.GuildID, err), "Member")
		return
	}

	inviterID, credited, err := tracker.ProcessJoin(m.GuildID, m.User.ID, current)
	if err != nil {
		logger.Error(fmt.Sprintf("Error procesando la invitación de %s: %v", m.User.ID, err), "Member")
		return
	}

	if inviterID == "" {
		logger.Debug("No se pudo determinar quién invitó a "+m.User.Username, "Member")
		return
	}

	if credited {
		logger.Info(fmt.Sprintf("📨 %s invitó a %s (+1 invitación)", inviterID, m.User.Username), "Member")
	} else {
		logger.Debug(fmt.Sprintf("Reingreso de %s, invitación ya contada a %s", m.User.Username, inviterID), "Member")
	}
}

// onGuildMemberRemove is called when a member leaves the server
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Info(fmt.Sprintf("👋 Adiós: %s salió del servidor %s", m.User.Username, m.GuildID), "Member")
}
