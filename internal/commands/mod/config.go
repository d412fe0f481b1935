// Package mod - /mod config command
package mod

import (
	"fmt"
	"strings"

	"github.com/CastorStudios/CentinelaGo/pkg/database"
	"github.com/CastorStudios/CentinelaGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createConfigCommand creates the /mod config subcommand. Sin opciones
// muestra la configuración actual; con opciones la actualiza.
func createConfigCommand() *discord.Command {
	return discord.NewCommand(
		"config",
		"Consulta o ajusta la configuración de moderación del servidor",
		"mod",
		configHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "notificar_dm",
			Description: "Notificar a los usuarios sancionados por DM",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "notificar_canal",
			Description: "Notificar también en el canal de respaldo",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal_respaldo",
			Description: "Canal donde notificar si el DM falla",
			Required:    false,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "canal_log",
			Description: "Canal del log de moderación",
			Required:    false,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildText,
			},
		},
	).WithUserPermissions(discordgo.PermissionManageGuild).
		RequiresDatabase()
}

// configHandler handles the /mod config command
func configHandler(ctx *discord.CommandContext) error {
	svc := database.NewGuildConfigService()
	cfg := svc.ModConfig(ctx.Interaction.GuildID)

	changed := false
	if opt := ctx.GetOption("notificar_dm"); opt != nil {
		cfg.NotifyDM = opt.BoolValue()
		changed = true
	}
	if opt := ctx.GetOption("notificar_canal"); opt != nil {
		cfg.NotifyChannel = opt.BoolValue()
		changed = true
	}
	if ch := ctx.GetChannelOption("canal_respaldo"); ch != nil {
		cfg.FallbackChannelID = ch.ID
		changed = true
	}
	if ch := ctx.GetChannelOption("canal_log"); ch != nil {
		cfg.LogChannelID = ch.ID
		changed = true
	}

	if changed {
		cfg.GuildID = ctx.Interaction.GuildID
		if err := svc.SaveModConfig(cfg); err != nil {
			return ctx.ReplyEphemeral("❌ No se pudo guardar la configuración.")
		}
	}

	var b strings.Builder
	b.WriteString("⚙️ **Configuración de moderación**\n")
	fmt.Fprintf(&b, "Notificar por DM: %s\n", onOff(cfg.NotifyDM))
	fmt.Fprintf(&b, "Notificar en canal: %s\n", onOff(cfg.NotifyChannel))
	fmt.Fprintf(&b, "Canal de respaldo: %s\n", channelRef(cfg.FallbackChannelID))
	fmt.Fprintf(&b, "Canal de log: %s", channelRef(cfg.LogChannelID))
	return ctx.ReplyEphemeral(b.String())
}

func onOff(v bool) string {
	if v {
		return "✅ activado"
	}
	return "❌ desactivado"
}

func channelRef(id string) string {
	if id == "" {
		return "sin configurar"
	}
	return "<#" + id + ">"
}
