package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
)

// actionColors maps event actions to embed colors.
var actionColors = map[string]int{
	"deploy":    0x00FF00,
	"renew":     0x00FF00,
	"unsuspend": 0x00FF00,
	"destroy":   0xFF0000,
	"suspend":   0xFF0000,
	"stop":      0xFFFF00,
	"start":     0x00FFFF,
	"restart":   0x00FFFF,
}

// DiscordSink posts activity events to the configured log channel and sends
// the actor a DM for lifecycle events on their VPS.
type DiscordSink struct {
	session *discordgo.Session

	// channelID returns the current log channel, empty to skip.
	channelID func() string
}

// NewDiscordSink builds the sink. channelID is consulted per event so
// runtime changes to the log channel take effect immediately.
func NewDiscordSink(session *discordgo.Session, channelID func() string) *DiscordSink {
	return &DiscordSink{session: session, channelID: channelID}
}

// Emit implements Sink.
func (d *DiscordSink) Emit(event models.ActivityEvent) {
	embed := d.buildEmbed(event)

	if chanID := d.channelID(); chanID != "" {
		if _, err := d.session.ChannelMessageSendEmbed(chanID, embed); err != nil {
			logger.Warn(fmt.Sprintf("No se pudo publicar en el canal de logs: %v", err), "Notify")
		}
	}

	// DM the actor for their own lifecycle events
	if event.VPSID != "" && event.Actor != "" && event.Actor != "sweeper" {
		d.dm(event.Actor, embed)
	}
}

// NotifyUser sends a direct message embed to a user, used by the sweepers
// for suspension and giveaway notices.
func (d *DiscordSink) NotifyUser(userID string, embed *discordgo.MessageEmbed) {
	d.dm(userID, embed)
}

func (d *DiscordSink) dm(userID string, embed *discordgo.MessageEmbed) {
	channel, err := d.session.UserChannelCreate(userID)
	if err != nil {
		logger.Debug(fmt.Sprintf("No se pudo abrir DM con %s: %v", userID, err), "Notify")
		return
	}
	if _, err := d.session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo enviar DM a %s: %v", userID, err), "Notify")
	}
}

func (d *DiscordSink) buildEmbed(event models.ActivityEvent) *discordgo.MessageEmbed {
	color, ok := actionColors[event.Action]
	if !ok {
		color = 0x808080
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Usuario", Value: fmt.Sprintf("<@%s>", event.Actor), Inline: true},
	}
	if event.VPSID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "VPS", Value: fmt.Sprintf("`%s`", shortID(event.VPSID)), Inline: true,
		})
	}
	if event.Details != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Detalles", Value: event.Details,
		})
	}

	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📋 %s", event.Action),
		Color:     color,
		Fields:    fields,
		Timestamp: event.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Footer:    &discordgo.MessageEmbedFooter{Text: "ChunkHost VPS"},
	}
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
