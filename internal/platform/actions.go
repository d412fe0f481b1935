// Package platform implementa los colaboradores del núcleo de moderación
// sobre discordgo: mutaciones, auditoría, jerarquía de roles y el log de
// actividad del servidor.
package platform

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// DiscordActions es la superficie de mutación real del bot.
type DiscordActions struct {
	session *discordgo.Session
}

// NewDiscordActions crea el adaptador sobre una sesión abierta.
func NewDiscordActions(session *discordgo.Session) *DiscordActions {
	return &DiscordActions{session: session}
}

func (a *DiscordActions) Ban(guildID, userID, reason string, deleteDays int) error {
	return a.session.GuildBanCreateWithReason(guildID, userID, reason, deleteDays)
}

func (a *DiscordActions) Unban(guildID, userID string) error {
	return a.session.GuildBanDelete(guildID, userID)
}

func (a *DiscordActions) Kick(guildID, userID, reason string) error {
	return a.session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (a *DiscordActions) Timeout(guildID, userID string, until *time.Time) error {
	return a.session.GuildMemberTimeout(guildID, userID, until)
}

func (a *DiscordActions) SendDirect(userID, content string) error {
	ch, err := a.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = a.session.ChannelMessageSend(ch.ID, content)
	return err
}

func (a *DiscordActions) SendChannel(channelID, content string) error {
	_, err := a.session.ChannelMessageSend(channelID, content)
	return err
}

// GuildName resuelve el nombre desde el state local; si el guild no está
// cacheado devuelve el ID, que al menos identifica el servidor.
func (a *DiscordActions) GuildName(guildID string) string {
	if g, err := a.session.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name
	}
	if g, err := a.session.Guild(guildID); err == nil {
		return g.Name
	}
	return guildID
}
