// Package events provides event handlers for moderation gateway events
package events

import (
	"fmt"
	"time"

	"github.com/CastorStudios/CentinelaGo/internal/moderation"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/CastorStudios/CentinelaGo/pkg/errors"
	"github.com/CastorStudios/CentinelaGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterModerationEvents registers the ban/unban gateway handlers that feed
// the moderation engine
func RegisterModerationEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildBanAdd)
	client.Session.AddHandler(onGuildBanRemove)
}

// onGuildBanAdd is called when a user is banned in a guild, by the bot or by
// anyone else. The engine decides whether it is an echo of our own action.
func onGuildBanAdd(s *discordgo.Session, b *discordgo.GuildBanAdd) {
	go func() {
		defer errors.RecoverMiddleware()()
		engine := moderation.Get()
		if engine == nil {
			return
		}
		_, err := engine.HandleEvent(moderation.ModerationEvent{
			GuildID:    b.GuildID,
			UserID:     b.User.ID,
			Kind:       moderation.EventBan,
			ObservedAt: time.Now(),
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Error procesando ban de %s: %v", b.User.ID, err), "Moderation")
		}
	}()
}

// onGuildBanRemove is called when a user is unbanned in a guild
func onGuildBanRemove(s *discordgo.Session, b *discordgo.GuildBanRemove) {
	go func() {
		defer errors.RecoverMiddleware()()
		engine := moderation.Get()
		if engine == nil {
			return
		}
		_, err := engine.HandleEvent(moderation.ModerationEvent{
			GuildID:    b.GuildID,
			UserID:     b.User.ID,
			Kind:       moderation.EventUnban,
			ObservedAt: time.Now(),
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Error procesando unban de %s: %v", b.User.ID, err), "Moderation")
		}
	}()
}
