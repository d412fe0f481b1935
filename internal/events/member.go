// Package events provides event handlers for member events
package events

import (
	"fmt"
	"time"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/internal/platform"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/errors"
	"github.com/CastorStudios/CentinelaGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberAdd)
	client.Session.AddHandler(onGuildMemberRemove)
	client.Session.AddHandler(onGuildMemberUpdate)
}

// onGuildMemberAdd is called when a new member joins the server. The engine
// re-applies any live mute so rejoining does not clear the sanction.
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Debug(fmt.Sprintf("👋 Nuevo miembro: %s en servidor %s",
		m.User.Username, m.GuildID), "Member")

	go func() {
		defer errors.RecoverMiddleware()()
		if engine := moderation.Get(); engine != nil {
			_, err := engine.HandleEvent(moderation.ModerationEvent{
				GuildID:    m.GuildID,
				UserID:     m.User.ID,
				Kind:       moderation.EventMemberJoin,
				ObservedAt: time.Now(),
			})
			if err != nil {
				logger.Error(fmt.Sprintf("Error procesando entrada de %s: %v", m.User.ID, err), "Member")
			}
		}
		if sl := platform.GetServerLog(); sl != nil {
			sl.LogGatewayEvent(m.GuildID, moderation.EventMemberJoin, m.User.ID)
		}
	}()
}

// onGuildMemberRemove is called when a member leaves the server, voluntarily
// or not. The engine correlates with the audit log to tell a kick apart from
// a voluntary leave; the server log suppresses removes caused by our own
// actions.
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Debug(fmt.Sprintf("👋 Adiós: %s salió del servidor %s",
		m.User.Username, m.GuildID), "Member")

	go func() {
		defer errors.RecoverMiddleware()()
		if engine := moderation.Get(); engine != nil {
			_, err := engine.HandleEvent(moderation.ModerationEvent{
				GuildID:    m.GuildID,
				UserID:     m.User.ID,
				Kind:       moderation.EventKick,
				ObservedAt: time.Now(),
			})
			if err != nil {
				logger.Error(fmt.Sprintf("Error procesando salida de %s: %v", m.User.ID, err), "Member")
			}
		}
		if sl := platform.GetServerLog(); sl != nil {
			sl.LogGatewayEvent(m.GuildID, moderation.EventMemberLeave, m.User.ID)
		}
	}()
}

// onGuildMemberUpdate is called when a member is updated (roles, nickname, etc.)
func onGuildMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	// Solo loguear si hay cambios significativos
	if m.BeforeUpdate != nil {
		// Detectar cambio de nickname
		oldNick := m.BeforeUpdate.Nick
		newNick := m.Nick

		if oldNick != newNick {
			logger.Debug(fmt.Sprintf("✏️ %s cambió nickname: '%s' → '%s'",
				m.User.Username, oldNick, newNick), "Member")
		}

		// Detectar cambio de roles
		if len(m.BeforeUpdate.Roles) != len(m.Roles) {
			logger.Debug(fmt.Sprintf("🎭 Roles actualizados para %s", m.User.Username), "Member")
		}
	}
}
